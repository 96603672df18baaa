// Package vpn gates the agent on the backend's VPN/proxy detection, with
// the same short-lived cache the browser kept in sessionStorage.
package vpn

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Lucia2467/mibot/internal/backend"
	"github.com/Lucia2467/mibot/internal/session"
)

const (
	cacheResultKey = "vpn_check_result"
	cacheTimeKey   = "vpn_check_time"
	cacheTTL       = 60 * time.Second

	// BlockedPath is where a detected connection gets sent.
	BlockedPath = "/vpn-blocked"
)

type checker interface {
	VPNCheck(ctx context.Context) (backend.VPNCheck, error)
}

// Result of one gate decision.
type Result struct {
	Detected  bool
	FromCache bool
	// Redirect is BlockedPath when Detected.
	Redirect string
}

// Gate performs the check with a bounded retry and a 60s result cache. A
// cached detection blocks without touching the network.
type Gate struct {
	client   checker
	store    *session.Store
	attempts int
	spacing  time.Duration
}

func NewGate(client checker, store *session.Store) *Gate {
	return &Gate{
		client:   client,
		store:    store,
		attempts: 2,
		spacing:  500 * time.Millisecond,
	}
}

// Check decides whether the connection is blocked. Detection failures are
// fail-open: an unreachable or erroring check lets the agent proceed.
func (g *Gate) Check(ctx context.Context) Result {
	if cached, ok := g.store.Get(cacheResultKey); ok {
		detected := cached == "true"
		return result(detected, true)
	}

	detected := false
	for attempt := 1; attempt <= g.attempts; attempt++ {
		res, err := g.client.VPNCheck(ctx)
		if err == nil && res.Error == "" {
			detected = res.VPNDetected
			g.cache(detected)
			return result(detected, false)
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("vpn check failed")
		if attempt < g.attempts {
			select {
			case <-ctx.Done():
				return result(false, false)
			case <-time.After(g.spacing):
			}
		}
	}
	return result(false, false)
}

func (g *Gate) cache(detected bool) {
	g.store.Set(cacheResultKey, strconv.FormatBool(detected), cacheTTL)
	g.store.Set(cacheTimeKey, strconv.FormatInt(time.Now().Unix(), 10), cacheTTL)
}

func result(detected, fromCache bool) Result {
	r := Result{Detected: detected, FromCache: fromCache}
	if detected {
		r.Redirect = BlockedPath
	}
	return r
}
