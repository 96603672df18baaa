package adsdk

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// EventKind is a raw signal from an SDK integration bridge.
type EventKind int

const (
	// EventDone is the explicit completion callback (onReward / done flag).
	EventDone EventKind = iota
	// EventClosed means the unit was dismissed before completing.
	EventClosed
	// EventError is a technical SDK failure.
	EventError
)

// Event carries one SDK callback into the adapter.
type Event struct {
	Kind   EventKind
	Detail string
}

// rewardedUnit normalizes a callback-style rewarded-video SDK. Signals
// arrive on a channel from whatever bridge hosts the real SDK; when no
// signal comes, a timed fallback treats the watch as completed once the
// configured window elapses.
type rewardedUnit struct {
	name      string
	placement string

	watchWindow time.Duration

	loadOnce sync.Once
	loadErr  error
	loader   func(ctx context.Context) error

	mu     sync.Mutex
	events chan Event
}

func newRewardedUnit(name, placement string, watchWindow time.Duration, loader func(ctx context.Context) error) *rewardedUnit {
	if watchWindow <= 0 {
		watchWindow = 15 * time.Second
	}
	return &rewardedUnit{
		name:        name,
		placement:   placement,
		watchWindow: watchWindow,
		loader:      loader,
		events:      make(chan Event, 4),
	}
}

func (u *rewardedUnit) Name() string { return u.name }

// Load initializes the provider exactly once, no matter how many flows
// share the placement.
func (u *rewardedUnit) Load(ctx context.Context) error {
	u.loadOnce.Do(func() {
		if u.loader != nil {
			u.loadErr = u.loader(ctx)
		}
		if u.loadErr == nil {
			log.Debug().Str("provider", u.name).Str("placement", u.placement).Msg("ad provider loaded")
		}
	})
	return u.loadErr
}

// Signal feeds an SDK callback toward the next (or current) presentation.
// Dropped when the buffer is full; each presentation consumes one signal.
func (u *rewardedUnit) Signal(ev Event) {
	select {
	case u.events <- ev:
	default:
	}
}

// Present shows one rewarded unit and blocks until it resolves. Outcomes:
// explicit done -> Completed; closed early -> Cancelled; SDK error ->
// Failed; context cancelled -> Cancelled; no signal within the watch
// window -> Completed (timed fallback).
func (u *rewardedUnit) Present(ctx context.Context) Outcome {
	if err := u.Load(ctx); err != nil {
		return Failed(fmt.Sprintf("%s load: %v", u.name, err))
	}

	timer := time.NewTimer(u.watchWindow)
	defer timer.Stop()

	select {
	case ev := <-u.events:
		switch ev.Kind {
		case EventDone:
			return Completed()
		case EventClosed:
			return Cancelled()
		default:
			return Failed(ev.Detail)
		}
	case <-ctx.Done():
		return Cancelled()
	case <-timer.C:
		log.Debug().Str("provider", u.name).Msg("no completion signal, timed fallback")
		return Completed()
	}
}
