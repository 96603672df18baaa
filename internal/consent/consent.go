// Package consent is the agent's replacement for the mini app's reusable
// consent modal: one gate per agent, asked before every ad presentation.
package consent

import (
	"context"
	"errors"
	"sync"
)

type Decision int

const (
	Accepted Decision = iota
	Cancelled
)

// Request carries the text the modal would show for this invocation.
type Request struct {
	Flow   string
	Title  string
	Reward string
}

// Prompter answers one consent request. Implementations may ask a human,
// follow a script, or auto-accept for unattended runs.
type Prompter interface {
	Prompt(ctx context.Context, req Request) (Decision, error)
}

// Auto answers every request the same way.
type Auto struct{ Accept bool }

func (a Auto) Prompt(_ context.Context, _ Request) (Decision, error) {
	if a.Accept {
		return Accepted, nil
	}
	return Cancelled, nil
}

// Func adapts a function to Prompter. Used in tests.
type Func func(ctx context.Context, req Request) (Decision, error)

func (f Func) Prompt(ctx context.Context, req Request) (Decision, error) { return f(ctx, req) }

// ErrLocked means the gate is already serving a flow; the second ask is a
// no-op, mirroring the disabled modal buttons.
var ErrLocked = errors.New("consent gate locked")

// Gate serializes consent. Begin locks it for the duration of a flow; End
// unlocks unconditionally and must be deferred by the caller so no exit
// path leaves the gate stuck.
type Gate struct {
	mu       sync.Mutex
	inFlight bool
	prompter Prompter
}

func NewGate(p Prompter) *Gate {
	return &Gate{prompter: p}
}

// Begin locks the gate. Returns false if a flow already holds it.
func (g *Gate) Begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight {
		return false
	}
	g.inFlight = true
	return true
}

// End releases the gate. Safe to call when not held.
func (g *Gate) End() {
	g.mu.Lock()
	g.inFlight = false
	g.mu.Unlock()
}

// Locked reports whether a flow currently holds the gate.
func (g *Gate) Locked() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight
}

// Ask prompts for consent. The gate must already be held by the calling
// flow; asking without Begin fails with ErrLocked semantics inverted, so
// callers cannot bypass serialization.
func (g *Gate) Ask(ctx context.Context, req Request) (Decision, error) {
	g.mu.Lock()
	held := g.inFlight
	g.mu.Unlock()
	if !held {
		return Cancelled, ErrLocked
	}
	return g.prompter.Prompt(ctx, req)
}
