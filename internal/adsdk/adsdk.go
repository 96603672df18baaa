// Package adsdk wraps the third-party rewarded-ad providers behind one
// contract. Outcome classification lives here, at the boundary where each
// provider's signals are known; nothing downstream inspects error text.
package adsdk

import (
	"context"
	"sync"
)

// Result is the normalized end state of one ad presentation.
type Result int

const (
	ResultCompleted Result = iota
	ResultCancelled
	ResultFailed
)

func (r Result) String() string {
	switch r {
	case ResultCompleted:
		return "completed"
	case ResultCancelled:
		return "cancelled"
	default:
		return "failed"
	}
}

// Outcome is consumed once per presentation. Reason is set for failures.
type Outcome struct {
	Result Result
	Reason string
}

func Completed() Outcome           { return Outcome{Result: ResultCompleted} }
func Cancelled() Outcome           { return Outcome{Result: ResultCancelled} }
func Failed(reason string) Outcome { return Outcome{Result: ResultFailed, Reason: reason} }

// Provider is one rewarded-ad integration. Load is idempotent; a provider
// that fails to load reports Failed from Present rather than panicking.
type Provider interface {
	Name() string
	Load(ctx context.Context) error
	Present(ctx context.Context) Outcome
}

// Registry hands out one provider instance per placement key, constructing
// it on first use. Mirrors the page-level "script injected exactly once"
// rule of the browser integrations.
type Registry struct {
	mu        sync.Mutex
	providers map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Provider returns the instance registered under key, building it with
// construct if this is the first request for that placement.
func (r *Registry) Provider(key string, construct func() Provider) Provider {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.providers[key]; ok {
		return p
	}
	p := construct()
	r.providers[key] = p
	return p
}
