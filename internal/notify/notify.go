// Package notify is the agent's toast replacement: user-facing outcome
// messages are classed, kept in a bounded feed for the diagnostics API and
// mirrored to the log.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Class string

const (
	ClassSuccess Class = "success"
	ClassError   Class = "error"
	ClassInfo    Class = "info"
	ClassWarning Class = "warning"
)

type Notification struct {
	ID      string    `json:"id"`
	Class   Class     `json:"class"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Center collects notifications in arrival order, keeping the newest
// maxKeep entries.
type Center struct {
	mu      sync.Mutex
	feed    []Notification
	maxKeep int
}

func NewCenter(maxKeep int) *Center {
	if maxKeep <= 0 {
		maxKeep = 50
	}
	return &Center{maxKeep: maxKeep}
}

func (c *Center) Success(msg string) { c.push(ClassSuccess, msg) }
func (c *Center) Error(msg string)   { c.push(ClassError, msg) }
func (c *Center) Info(msg string)    { c.push(ClassInfo, msg) }
func (c *Center) Warning(msg string) { c.push(ClassWarning, msg) }

func (c *Center) push(class Class, msg string) {
	n := Notification{
		ID:      uuid.NewString(),
		Class:   class,
		Message: msg,
		At:      time.Now(),
	}
	c.mu.Lock()
	c.feed = append(c.feed, n)
	if len(c.feed) > c.maxKeep {
		c.feed = c.feed[len(c.feed)-c.maxKeep:]
	}
	c.mu.Unlock()

	switch class {
	case ClassError:
		log.Warn().Str("class", string(class)).Msg(msg)
	default:
		log.Info().Str("class", string(class)).Msg(msg)
	}
}

// Recent returns up to n notifications, newest last.
func (c *Center) Recent(n int) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n <= 0 || n > len(c.feed) {
		n = len(c.feed)
	}
	out := make([]Notification, n)
	copy(out, c.feed[len(c.feed)-n:])
	return out
}

// Last returns the most recent notification, if any.
func (c *Center) Last() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.feed) == 0 {
		return Notification{}, false
	}
	return c.feed[len(c.feed)-1], true
}
