// Package flow implements the rewarded-ad consent-and-reward sequence:
// eligibility check, consent, ad presentation, reward activation, status
// refresh. One Controller serializes all flows for an agent.
package flow

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/Lucia2467/mibot/internal/adsdk"
	"github.com/Lucia2467/mibot/internal/backend"
	"github.com/Lucia2467/mibot/internal/consent"
	"github.com/Lucia2467/mibot/internal/notify"
	"github.com/Lucia2467/mibot/internal/observability"
)

type Status string

const (
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusFailed     Status = "failed"
	StatusIneligible Status = "ineligible"
	StatusBusy       Status = "busy"
)

// Report is the user-visible result of one trigger.
type Report struct {
	Status  Status
	Message string
}

// Eligibility is the backend's gate decision for one attempt.
type Eligibility struct {
	Allowed bool
	Reason  string
}

// Flow describes one provider instance of the shared sequence. Activate
// and Refresh may be nil for flows whose reward is granted server-side.
type Flow struct {
	Name         string
	ConsentTitle string
	RewardLabel  string

	// Precheck runs before anything else, from already-displayed state.
	// A blocked result short-circuits without any eligibility call.
	Precheck func() (label string, blocked bool)

	Eligibility func(ctx context.Context) (Eligibility, error)
	Present     func(ctx context.Context) adsdk.Outcome
	Activate    func(ctx context.Context) (message string, err error)
	Refresh     func(ctx context.Context)
}

const connectionErrorMsg = "Connection error. Please try again."

// Controller runs flows one at a time. A trigger while another flow is in
// flight is dropped, not queued.
type Controller struct {
	busy  atomic.Bool
	gate  *consent.Gate
	notes *notify.Center
}

func NewController(gate *consent.Gate, notes *notify.Center) *Controller {
	return &Controller{gate: gate, notes: notes}
}

// Busy reports whether a flow is currently in flight.
func (c *Controller) Busy() bool { return c.busy.Load() }

// Run executes one flow end to end. The busy flag and the consent gate are
// both released on every exit path.
func (c *Controller) Run(ctx context.Context, f Flow) Report {
	if !c.busy.CompareAndSwap(false, true) {
		log.Debug().Str("flow", f.Name).Msg("trigger dropped, flow in flight")
		return Report{Status: StatusBusy}
	}
	defer c.busy.Store(false)

	if !c.gate.Begin() {
		// Busy flag should make this unreachable; treat it as a drop.
		return Report{Status: StatusBusy}
	}
	defer c.gate.End()

	observability.FlowsStarted.WithLabelValues(f.Name).Inc()
	report := c.run(ctx, f)
	observability.FlowsFinished.WithLabelValues(f.Name, string(report.Status)).Inc()
	return report
}

func (c *Controller) run(ctx context.Context, f Flow) Report {
	if f.Precheck != nil {
		if label, blocked := f.Precheck(); blocked {
			c.notes.Info(label)
			return Report{Status: StatusIneligible, Message: label}
		}
	}

	elig, err := f.Eligibility(ctx)
	if err != nil {
		return c.fail(f, err)
	}
	if !elig.Allowed {
		reason := elig.Reason
		if reason == "" {
			reason = "Not available right now"
		}
		c.notes.Warning(reason)
		return Report{Status: StatusIneligible, Message: reason}
	}

	decision, err := c.gate.Ask(ctx, consent.Request{
		Flow:   f.Name,
		Title:  f.ConsentTitle,
		Reward: f.RewardLabel,
	})
	if err != nil {
		c.notes.Error(connectionErrorMsg)
		return Report{Status: StatusFailed, Message: err.Error()}
	}
	if decision == consent.Cancelled {
		return Report{Status: StatusCancelled}
	}

	outcome := f.Present(ctx)
	switch outcome.Result {
	case adsdk.ResultCancelled:
		c.notes.Info("Ad cancelled")
		return Report{Status: StatusCancelled}
	case adsdk.ResultFailed:
		reason := outcome.Reason
		if reason == "" {
			reason = "Ad could not be shown"
		}
		c.notes.Error(reason)
		return Report{Status: StatusFailed, Message: reason}
	}

	message := f.RewardLabel
	if f.Activate != nil {
		msg, err := f.Activate(ctx)
		if err != nil {
			if apiErr, ok := backend.AsAPIError(err); ok && apiErr.AlreadyActive() {
				// The SDK's server callback already granted the reward;
				// render exactly like a first-party success.
				c.notes.Success(message)
				c.refresh(ctx, f)
				return Report{Status: StatusCompleted, Message: message}
			}
			return c.fail(f, err)
		}
		if msg != "" {
			message = msg
		}
	}

	c.notes.Success(message)
	c.refresh(ctx, f)
	return Report{Status: StatusCompleted, Message: message}
}

func (c *Controller) refresh(ctx context.Context, f Flow) {
	if f.Refresh != nil {
		f.Refresh(ctx)
	}
}

// fail maps the error taxonomy to notifications: connection failures get
// the generic toast, backend rejections surface their reason verbatim.
func (c *Controller) fail(f Flow, err error) Report {
	if apiErr, ok := backend.AsAPIError(err); ok {
		c.notes.Error(apiErr.Error())
		return Report{Status: StatusFailed, Message: apiErr.Error()}
	}
	log.Warn().Err(err).Str("flow", f.Name).Msg("flow aborted")
	c.notes.Error(connectionErrorMsg)
	return Report{Status: StatusFailed, Message: connectionErrorMsg}
}
