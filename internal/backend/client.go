// Package backend is the typed HTTP client for the SALLY-E API. All
// business-rule classification (cooldowns, limits, "already active")
// happens here; callers never inspect raw response text.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// ErrConnection marks transport-level failures: the request never produced
// a usable backend response.
var ErrConnection = errors.New("connection error")

// APIError is a business-rule rejection carried in a backend response body.
type APIError struct {
	Status            int
	Message           string
	MessageEs         string
	CooldownRemaining int
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.MessageEs != "" {
		return e.MessageEs
	}
	return fmt.Sprintf("request rejected (status %d)", e.Status)
}

// AlreadyActive reports whether the rejection means the reward is already
// granted. The SDK's server callback can race the client activation, so
// this case is collapsed into success by callers. The backend has no error
// code for it; matching covers both locales it is known to emit.
func (e *APIError) AlreadyActive() bool {
	msg := strings.ToLower(e.Message + " " + e.MessageEs)
	return strings.Contains(msg, "already active") ||
		strings.Contains(msg, "boost activo") ||
		strings.Contains(msg, "ya tienes")
}

// AsAPIError unwraps err into an APIError if it carries one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsConnection reports whether err is a transport failure rather than a
// backend rejection.
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}

type errEnvelope struct {
	Success           bool   `json:"success"`
	Error             string `json:"error"`
	ErrorEs           string `json:"error_es"`
	CooldownRemaining int    `json:"cooldown_remaining"`
}

// Client talks to the SALLY-E backend. Requests are paced by a client-side
// limiter so polling plus flows stay under the backend's informal quota.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	userID  string
}

type Options struct {
	BaseURL        string
	UserID         string
	Timeout        time.Duration
	RequestsPerSec float64
	Burst          int
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 5
	}
	if opts.Burst <= 0 {
		opts.Burst = 10
	}
	httpc := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json")
	return &Client{
		http:    httpc,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSec), opts.Burst),
		userID:  opts.UserID,
	}
}

// UserID returns the identity every request is issued for.
func (c *Client) UserID() string { return c.userID }

func (c *Client) get(ctx context.Context, path string, query map[string]string, out any) error {
	return c.do(ctx, "GET", path, query, nil, nil, out)
}

func (c *Client) post(ctx context.Context, path string, query map[string]string, body, out any) error {
	return c.do(ctx, "POST", path, query, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query, headers map[string]string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrConnection, method, path, err)
	}

	var envelope errEnvelope
	req := c.http.R().
		SetContext(ctx).
		SetError(&envelope)
	for k, v := range query {
		req.SetQueryParam(k, v)
	}
	for k, v := range headers {
		req.SetHeader(k, v)
	}
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrConnection, method, path, err)
	}
	if resp.IsError() {
		return &APIError{
			Status:            resp.StatusCode(),
			Message:           envelope.Error,
			MessageEs:         envelope.ErrorEs,
			CooldownRemaining: envelope.CooldownRemaining,
		}
	}
	return nil
}

// rejection builds an APIError for a 200 response whose body says
// success:false. Several endpoints report failures that way.
func rejection(message, messageEs string, cooldown int) error {
	return &APIError{
		Status:            200,
		Message:           message,
		MessageEs:         messageEs,
		CooldownRemaining: cooldown,
	}
}
