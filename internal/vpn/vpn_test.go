package vpn

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Lucia2467/mibot/internal/backend"
	"github.com/Lucia2467/mibot/internal/session"
)

type fakeChecker struct {
	calls    int
	detected bool
	fail     int // fail this many leading calls
}

func (f *fakeChecker) VPNCheck(ctx context.Context) (backend.VPNCheck, error) {
	f.calls++
	if f.calls <= f.fail {
		return backend.VPNCheck{}, fmt.Errorf("%w: unreachable", backend.ErrConnection)
	}
	return backend.VPNCheck{Success: true, VPNDetected: f.detected}, nil
}

func newGate(c *fakeChecker, store *session.Store) *Gate {
	g := NewGate(c, store)
	g.spacing = time.Millisecond
	return g
}

func TestCheck_CachedDetectionBlocksWithoutNetworkCall(t *testing.T) {
	store := session.NewMemory()
	store.Set("vpn_check_result", "true", 60*time.Second)

	checker := &fakeChecker{}
	res := newGate(checker, store).Check(context.Background())

	assert.True(t, res.Detected)
	assert.True(t, res.FromCache)
	assert.Equal(t, BlockedPath, res.Redirect)
	assert.Zero(t, checker.calls, "a fresh cached result must short-circuit the check")
}

func TestCheck_ResultCachedForSixtySeconds(t *testing.T) {
	store := session.NewMemory()
	checker := &fakeChecker{detected: false}
	g := newGate(checker, store)

	res := g.Check(context.Background())
	assert.False(t, res.Detected)
	assert.Equal(t, 1, checker.calls)

	v, ok := store.Get("vpn_check_result")
	assert.True(t, ok)
	assert.Equal(t, "false", v)
	_, ok = store.Get("vpn_check_time")
	assert.True(t, ok)

	// Second check inside the TTL reuses the cache.
	res = g.Check(context.Background())
	assert.True(t, res.FromCache)
	assert.Equal(t, 1, checker.calls)
}

func TestCheck_RetriesOnceThenSucceeds(t *testing.T) {
	store := session.NewMemory()
	checker := &fakeChecker{detected: true, fail: 1}

	res := newGate(checker, store).Check(context.Background())

	assert.True(t, res.Detected)
	assert.False(t, res.FromCache)
	assert.Equal(t, 2, checker.calls)
}

func TestCheck_FailsOpenAfterBothAttempts(t *testing.T) {
	store := session.NewMemory()
	checker := &fakeChecker{fail: 2}

	res := newGate(checker, store).Check(context.Background())

	assert.False(t, res.Detected)
	assert.Equal(t, 2, checker.calls, "exactly two attempts, never more")
	_, ok := store.Get("vpn_check_result")
	assert.False(t, ok, "failed checks must not poison the cache")
}
