package adsdk

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Lucia2467/mibot/internal/backend"
)

type shrinkEarnBackend interface {
	ShrinkEarnStart(ctx context.Context, missionType string) (backend.ShrinkEarnStart, error)
	ShrinkEarnStatus(ctx context.Context) (backend.ShrinkEarnStatus, error)
}

// ShrinkEarn presents a link mission: open a shortened URL, wait out the
// minimum completion time, then watch the user's daily stats for the
// server-side verify to land. Unlike the video providers there is no
// client-side activation call; completion is entirely backend-driven.
type ShrinkEarn struct {
	client      shrinkEarnBackend
	missionType string

	minWait       time.Duration
	verifyTimeout time.Duration
	pollEvery     time.Duration

	mu      sync.Mutex
	lastURL string
}

func NewShrinkEarn(client shrinkEarnBackend, missionType string, minWait time.Duration) *ShrinkEarn {
	if minWait <= 0 {
		minWait = 30 * time.Second
	}
	return &ShrinkEarn{
		client:        client,
		missionType:   missionType,
		minWait:       minWait,
		verifyTimeout: 10 * time.Minute,
		pollEvery:     5 * time.Second,
	}
}

func (s *ShrinkEarn) Name() string { return "shrinkearn" }

func (s *ShrinkEarn) Load(ctx context.Context) error { return nil }

// LastURL returns the most recent shortened URL handed out, for display.
func (s *ShrinkEarn) LastURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastURL
}

func (s *ShrinkEarn) Present(ctx context.Context) Outcome {
	before, err := s.completedCount(ctx)
	if err != nil {
		return Failed(fmt.Sprintf("shrinkearn status: %v", err))
	}

	started, err := s.client.ShrinkEarnStart(ctx, s.missionType)
	if err != nil {
		if apiErr, ok := backend.AsAPIError(err); ok {
			return Failed(apiErr.Error())
		}
		return Failed(fmt.Sprintf("shrinkearn start: %v", err))
	}

	s.mu.Lock()
	s.lastURL = started.ShortenedURL
	s.mu.Unlock()
	log.Info().Str("mission", s.missionType).Str("url", started.ShortenedURL).Msg("shrinkearn link ready")

	// The backend rejects verifies faster than min_completion_time.
	if !sleepCtx(ctx, s.minWait) {
		return Cancelled()
	}

	deadline := time.Now().Add(s.verifyTimeout)
	for time.Now().Before(deadline) {
		after, err := s.completedCount(ctx)
		if err == nil && after > before {
			return Completed()
		}
		if !sleepCtx(ctx, s.pollEvery) {
			return Cancelled()
		}
	}
	return Failed("mission verification timed out")
}

func (s *ShrinkEarn) completedCount(ctx context.Context) (int, error) {
	st, err := s.client.ShrinkEarnStatus(ctx)
	if err != nil {
		return 0, err
	}
	return st.DailyStats.Completed, nil
}

// sleepCtx sleeps for d, returning false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
