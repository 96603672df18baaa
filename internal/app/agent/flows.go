package agent

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Lucia2467/mibot/internal/adsdk"
	"github.com/Lucia2467/mibot/internal/api"
	"github.com/Lucia2467/mibot/internal/backend"
	"github.com/Lucia2467/mibot/internal/config"
	"github.com/Lucia2467/mibot/internal/flow"
	"github.com/Lucia2467/mibot/internal/format"
	"github.com/Lucia2467/mibot/internal/notify"
)

// minUserID mirrors the backend's guard: smaller ids are ad-network test
// traffic and must never run reward flows.
const minUserID = 100000

func testAccount(userID string) bool {
	id, err := strconv.ParseInt(userID, 10, 64)
	return err != nil || id < minUserID
}

func buildTriggers(cfg config.Config, client *backend.Client, controller *flow.Controller, snaps api.Snapshots, notes *notify.Center) map[string]api.Trigger {
	registry := adsdk.NewRegistry()
	watch := time.Duration(cfg.Ads.WatchSeconds) * time.Second

	adsgram := registry.Provider("adsgram", func() adsdk.Provider {
		return adsdk.NewAdsGram(cfg.Ads.AdsGramBlockID, watch)
	})
	// OnClickA delivers no reliable completion callback, so its window is
	// the longer timed fallback.
	fallback := time.Duration(cfg.Ads.FallbackSeconds) * time.Second
	onclicka := registry.Provider("onclicka", func() adsdk.Provider {
		return adsdk.NewOnClickA(cfg.Ads.OnClickACodeID, fallback)
	})
	shrinkEarn := registry.Provider("shrinkearn", func() adsdk.Provider {
		return adsdk.NewShrinkEarn(client, "short_ad",
			time.Duration(cfg.Ads.ShrinkEarnWaitSec)*time.Second)
	})

	refreshBoost := func(ctx context.Context) {
		if st, err := client.BoostStatus(ctx); err == nil {
			snaps.Boost.Store(st)
		}
	}
	refreshPts := func(ctx context.Context) {
		if st, err := client.PtsStatus(ctx); err == nil {
			snaps.Pts.Store(st)
		}
	}

	guard := func() (string, bool) {
		if testAccount(client.UserID()) {
			return "account not eligible for reward flows", true
		}
		return "", false
	}

	boostFlow := flow.Flow{
		Name:         "boost",
		ConsentTitle: "Watch an ad to activate the x2 mining boost?",
		RewardLabel:  "Boost x2 activated",
		Precheck: func() (string, bool) {
			if label, blocked := guard(); blocked {
				return label, true
			}
			// Daily cap is already on screen; a used-up day disables the
			// trigger without an eligibility round trip.
			if st, ok := snaps.Boost.Load(); ok && st.DailyBoostsLimit > 0 &&
				st.DailyBoostsUsed >= st.DailyBoostsLimit {
				return format.DailyLimitLabel(st.DailyBoostsUsed, st.DailyBoostsLimit), true
			}
			return "", false
		},
		Eligibility: func(ctx context.Context) (flow.Eligibility, error) {
			res, err := client.BoostCanActivate(ctx)
			if err != nil {
				return flow.Eligibility{}, err
			}
			return flow.Eligibility{Allowed: res.CanActivate, Reason: res.Reason}, nil
		},
		Present: adsgram.Present,
		Activate: func(ctx context.Context) (string, error) {
			res, err := client.BoostActivate(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		},
		Refresh: refreshBoost,
	}

	adFlow := flow.Flow{
		Name:         "ad",
		ConsentTitle: "Watch an ad to earn PTS?",
		RewardLabel:  "PTS earned",
		Precheck: func() (string, bool) {
			if label, blocked := guard(); blocked {
				return label, true
			}
			if st, ok := snaps.Pts.Load(); ok && st.DailyAdLimit > 0 &&
				st.AdsWatchedToday >= st.DailyAdLimit {
				return format.DailyLimitLabel(st.AdsWatchedToday, st.DailyAdLimit), true
			}
			return "", false
		},
		Eligibility: func(ctx context.Context) (flow.Eligibility, error) {
			res, err := client.AdCanWatch(ctx)
			if err != nil {
				return flow.Eligibility{}, err
			}
			return flow.Eligibility{Allowed: res.CanWatch, Reason: res.Reason}, nil
		},
		Present: onclicka.Present,
		Activate: func(ctx context.Context) (string, error) {
			res, err := client.AdWatch(ctx, "single_ad")
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("+%d PTS", res.PtsEarned), nil
		},
		Refresh: refreshPts,
	}

	doubleFlow := flow.Flow{
		Name:         "checkin-double",
		ConsentTitle: "Watch an ad to double today's check-in reward?",
		RewardLabel:  "Check-in reward doubled",
		Precheck:     guard,
		Eligibility: func(ctx context.Context) (flow.Eligibility, error) {
			st, err := client.PtsStatus(ctx)
			if err != nil {
				return flow.Eligibility{}, err
			}
			if !st.Checkin.DoneToday {
				return flow.Eligibility{Reason: "Check in first"}, nil
			}
			if !st.Checkin.CanDouble {
				return flow.Eligibility{Reason: "Already doubled today"}, nil
			}
			return flow.Eligibility{Allowed: true}, nil
		},
		Present: onclicka.Present,
		Activate: func(ctx context.Context) (string, error) {
			res, err := client.CheckinDouble(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s (+%d PTS)", res.Message, res.PtsEarned), nil
		},
		Refresh: refreshPts,
	}

	shrinkFlow := flow.Flow{
		Name:         "shrinkearn",
		ConsentTitle: "Open a ShrinkEarn link mission?",
		RewardLabel:  "Mission completed",
		Precheck:     guard,
		Eligibility: func(ctx context.Context) (flow.Eligibility, error) {
			st, err := client.ShrinkEarnStatus(ctx)
			if err != nil {
				return flow.Eligibility{}, err
			}
			if !st.Enabled {
				return flow.Eligibility{Reason: "Missions are disabled"}, nil
			}
			if st.DailyStats.Remaining <= 0 {
				return flow.Eligibility{
					Reason: format.DailyLimitLabel(st.DailyStats.Started, st.DailyStats.Limit),
				}, nil
			}
			for _, m := range st.Missions {
				if m.ID == "short_ad" {
					if !m.Available {
						return flow.Eligibility{
							Reason: "Cooldown " + format.CooldownLabel(m.CooldownRemaining),
						}, nil
					}
					return flow.Eligibility{Allowed: true}, nil
				}
			}
			return flow.Eligibility{Reason: "Mission unavailable"}, nil
		},
		Present: shrinkEarn.Present,
		Refresh: refreshPts,
	}

	return map[string]api.Trigger{
		"boost":          runFlow(controller, boostFlow),
		"ad":             runFlow(controller, adFlow),
		"checkin-double": runFlow(controller, doubleFlow),
		"shrinkearn":     runFlow(controller, shrinkFlow),
		"checkin": func(r *http.Request) flow.Report {
			return runDirect(r.Context(), notes, func(ctx context.Context) (string, error) {
				res, err := client.Checkin(ctx)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%s (+%d PTS)", res.Message, res.PtsEarned), nil
			})
		},
	}
}

func runFlow(controller *flow.Controller, f flow.Flow) api.Trigger {
	return func(r *http.Request) flow.Report {
		return controller.Run(r.Context(), f)
	}
}

// runDirect handles triggers with no ad step, keeping the same error
// taxonomy as the controller.
func runDirect(ctx context.Context, notes *notify.Center, call func(ctx context.Context) (string, error)) flow.Report {
	msg, err := call(ctx)
	if err != nil {
		if apiErr, ok := backend.AsAPIError(err); ok {
			notes.Error(apiErr.Error())
			return flow.Report{Status: flow.StatusFailed, Message: apiErr.Error()}
		}
		notes.Error("Connection error. Please try again.")
		return flow.Report{Status: flow.StatusFailed, Message: "Connection error. Please try again."}
	}
	notes.Success(msg)
	return flow.Report{Status: flow.StatusCompleted, Message: msg}
}
