// Package agent assembles and runs the mibot process: session state,
// backend client, VPN gate, fingerprint report, ad-reward flows, status
// pollers and the local diagnostics server.
package agent

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Lucia2467/mibot/internal/api"
	"github.com/Lucia2467/mibot/internal/backend"
	"github.com/Lucia2467/mibot/internal/cache"
	"github.com/Lucia2467/mibot/internal/config"
	"github.com/Lucia2467/mibot/internal/consent"
	"github.com/Lucia2467/mibot/internal/fingerprint"
	"github.com/Lucia2467/mibot/internal/flow"
	"github.com/Lucia2467/mibot/internal/notify"
	"github.com/Lucia2467/mibot/internal/poll"
	"github.com/Lucia2467/mibot/internal/session"
	"github.com/Lucia2467/mibot/internal/vpn"
	"github.com/Lucia2467/mibot/internal/wallet"
)

func Run(cfg config.Config) {
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := session.Open(cfg.Agent.StateFile)

	client := backend.New(backend.Options{
		BaseURL:        cfg.Backend.BaseURL,
		UserID:         cfg.Agent.UserID,
		Timeout:        cfg.BackendTimeout(),
		RequestsPerSec: cfg.Backend.RequestsPerSec,
		Burst:          cfg.Backend.Burst,
	})

	// VPN gate first: a blocked connection never reaches the flows.
	gate := vpn.NewGate(client, store)
	if res := gate.Check(rootCtx); res.Detected {
		log.Error().Str("redirect", res.Redirect).Bool("cached", res.FromCache).
			Msg("vpn/proxy detected, agent blocked")
		return
	}

	// Fingerprint: computed (or served from cache), reported once per run.
	fp := fingerprint.NewCollector(store).Collect()
	fingerprint.Report(rootCtx, client, fp)
	log.Info().Str("device_hash", fp.Hash).Msg("device fingerprint ready")

	notes := notify.NewCenter(100)
	controller := flow.NewController(consent.NewGate(consent.Auto{Accept: true}), notes)

	snaps := api.Snapshots{
		Boost: &cache.Snapshot[backend.BoostStatus]{},
		Pts:   &cache.Snapshot[backend.PtsStatus]{},
		DB:    &cache.Snapshot[backend.DBStatus]{},
	}

	pollers := startPollers(rootCtx, cfg, client, snaps)
	defer stopPollers(pollers)

	flows := buildTriggers(cfg, client, controller, snaps, notes)

	h := api.NewHandler(snaps, notes, flows, wallet.NewService(client))
	h.Ranking = client.PtsRanking
	srv := &http.Server{
		Addr:         cfg.Diagnostics.Addr,
		Handler:      api.Router(h),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Minute, // flows run synchronously
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Diagnostics.Addr).Msg("diagnostics server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("diagnostics server crashed")
		}
	}()

	waitForSignal()
	log.Info().Msg("shutdown...")

	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	cancel() // stop background goroutines
	_ = srv.Shutdown(shCtx)
}

func startPollers(ctx context.Context, cfg config.Config, client *backend.Client, snaps api.Snapshots) []*poll.Poller {
	pollers := []*poll.Poller{
		poll.New("boost", cfg.BoostPollInterval(), func(ctx context.Context) error {
			st, err := client.BoostStatus(ctx)
			if err != nil {
				return err
			}
			snaps.Boost.Store(st)
			return nil
		}),
		poll.New("pts", cfg.PtsPollInterval(), func(ctx context.Context) error {
			st, err := client.PtsStatus(ctx)
			if err != nil {
				return err
			}
			snaps.Pts.Store(st)
			return nil
		}),
		poll.New("db-status", cfg.DBStatusPollInterval(), func(ctx context.Context) error {
			st, err := client.DBStatus(ctx)
			if err != nil {
				return err
			}
			snaps.DB.Store(st)
			return nil
		}),
	}
	for _, p := range pollers {
		p.Start(ctx)
	}
	return pollers
}

func stopPollers(pollers []*poll.Poller) {
	for _, p := range pollers {
		p.Stop()
	}
}

func waitForSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
