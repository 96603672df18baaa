// Package poll re-fetches displayed state on a fixed interval: no backoff,
// no jitter, no suspension. A poller runs until its context ends or Stop
// is called explicitly.
package poll

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Lucia2467/mibot/internal/observability"
)

// Poller drives one refresh function. The function reports success with a
// nil error; a failing tick is logged and the next tick runs regardless.
type Poller struct {
	name     string
	interval time.Duration
	tick     func(ctx context.Context) error

	started  atomic.Bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func New(name string, interval time.Duration, tick func(ctx context.Context) error) *Poller {
	return &Poller{
		name:     name,
		interval: interval,
		tick:     tick,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins polling in a new goroutine. The first tick fires
// immediately so displayed state is populated before the first interval.
func (p *Poller) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	go p.loop(ctx)
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)

	p.runTick(ctx)
	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case <-t.C:
			p.runTick(ctx)
		}
	}
}

func (p *Poller) runTick(ctx context.Context) {
	if err := p.tick(ctx); err != nil {
		observability.PollTicks.WithLabelValues(p.name, "error").Inc()
		log.Debug().Err(err).Str("poller", p.name).Msg("poll tick failed")
		return
	}
	observability.PollTicks.WithLabelValues(p.name, "ok").Inc()
}

// Stop halts the poller and waits for the loop to exit. Idempotent.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	if p.started.Load() {
		<-p.done
	}
}
