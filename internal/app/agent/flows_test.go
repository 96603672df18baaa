package agent

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lucia2467/mibot/internal/api"
	"github.com/Lucia2467/mibot/internal/backend"
	"github.com/Lucia2467/mibot/internal/cache"
	"github.com/Lucia2467/mibot/internal/config"
	"github.com/Lucia2467/mibot/internal/consent"
	"github.com/Lucia2467/mibot/internal/flow"
	"github.com/Lucia2467/mibot/internal/notify"
)

// countingBackend records how many times each path was hit and serves
// canned JSON responses.
type countingBackend struct {
	mu        sync.Mutex
	hits      map[string]int
	responses map[string]any
}

func newCountingBackend() *countingBackend {
	return &countingBackend{hits: map[string]int{}, responses: map[string]any{}}
}

func (b *countingBackend) respond(path string, v any) { b.responses[path] = v }

func (b *countingBackend) count(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

func (b *countingBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.hits[r.URL.Path]++
	b.mu.Unlock()
	v, ok := b.responses[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func testSetup(t *testing.T, be *countingBackend) (map[string]api.Trigger, api.Snapshots, *notify.Center) {
	t.Helper()
	srv := httptest.NewServer(be)
	t.Cleanup(srv.Close)

	cfg := config.Config{}
	cfg.Agent.UserID = "7258414260"
	cfg.Ads.AdsGramBlockID = 20479
	cfg.Ads.OnClickACodeID = 408797
	cfg.Ads.WatchSeconds = 1

	client := backend.New(backend.Options{
		BaseURL:        srv.URL,
		UserID:         cfg.Agent.UserID,
		RequestsPerSec: 100,
		Burst:          100,
	})
	notes := notify.NewCenter(20)
	controller := flow.NewController(consent.NewGate(consent.Auto{Accept: true}), notes)
	snaps := api.Snapshots{
		Boost: &cache.Snapshot[backend.BoostStatus]{},
		Pts:   &cache.Snapshot[backend.PtsStatus]{},
		DB:    &cache.Snapshot[backend.DBStatus]{},
	}
	return buildTriggers(cfg, client, controller, snaps, notes), snaps, notes
}

func TestBoostTrigger_DailyLimitBlocksWithoutEligibilityCall(t *testing.T) {
	be := newCountingBackend()
	triggers, snaps, _ := testSetup(t, be)

	snaps.Boost.Store(backend.BoostStatus{
		DailyBoostsUsed:  3,
		DailyBoostsLimit: 3,
	})

	report := triggers["boost"](httptest.NewRequest("POST", "/flows/boost", nil))
	assert.Equal(t, flow.StatusIneligible, report.Status)
	assert.Equal(t, "daily limit (3/3)", report.Message)
	assert.Zero(t, be.count("/api/boost/can-activate"))
}

func TestBoostTrigger_IneligibleReasonFromBackend(t *testing.T) {
	be := newCountingBackend()
	be.respond("/api/boost/can-activate", map[string]any{
		"can_activate": false,
		"reason":       "Boost cooldown: wait 4 min",
	})
	triggers, _, _ := testSetup(t, be)

	report := triggers["boost"](httptest.NewRequest("POST", "/flows/boost", nil))
	assert.Equal(t, flow.StatusIneligible, report.Status)
	assert.Equal(t, "Boost cooldown: wait 4 min", report.Message)
	assert.Equal(t, 1, be.count("/api/boost/can-activate"))
	assert.Zero(t, be.count("/api/boost/activate"))
}

func TestCheckinTrigger_Success(t *testing.T) {
	be := newCountingBackend()
	be.respond("/api/checkin", map[string]any{
		"success":    true,
		"message":    "Check-in complete",
		"pts_earned": 10,
	})
	triggers, _, notes := testSetup(t, be)

	report := triggers["checkin"](httptest.NewRequest("POST", "/flows/checkin", nil))
	require.Equal(t, flow.StatusCompleted, report.Status)
	assert.Equal(t, "Check-in complete (+10 PTS)", report.Message)

	last, ok := notes.Last()
	require.True(t, ok)
	assert.Equal(t, notify.ClassSuccess, last.Class)
}

func TestTestAccountGuard(t *testing.T) {
	tests := []struct {
		userID  string
		blocked bool
	}{
		{"7258414260", false},
		{"100000", false},
		{"99999", true},
		{"12", true},
		{"not-a-number", true},
		{"", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.blocked, testAccount(tt.userID), "user_id %q", tt.userID)
	}
}
