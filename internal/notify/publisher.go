// Package notify publishes task outcome events over NATS. It is an optional
// side channel: nothing in the build lifecycle depends on a listener being
// present, so events are fire-and-forget core publishes.
package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	taskerrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

const flushTimeout = 5 * time.Second

// Event is the JSON payload published after a task run finishes.
type Event struct {
	RunID      string    `json:"run_id"`
	Task       string    `json:"task"`
	Profile    string    `json:"profile,omitempty"`
	Outcome    string    `json:"outcome"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher sends events to a fixed subject over an established connection.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// Connect dials the configured NATS server. Callers gate on
// cfg.Notify.Enabled; a connection failure here is theirs to downgrade to a
// warning.
func Connect(cfg *config.Config) (*Publisher, error) {
	conn, err := nats.Connect(cfg.Notify.URL, nats.Name("blogbuilder"))
	if err != nil {
		return nil, taskerrors.WrapError(err, taskerrors.CategoryNotify, fmt.Sprintf("connect %s", cfg.Notify.URL))
	}
	slog.Info("notify channel connected",
		logfields.URL(cfg.Notify.URL), logfields.Subject(cfg.Notify.Subject))
	return &Publisher{conn: conn, subject: cfg.Notify.Subject}, nil
}

// Publish marshals the event and flushes it to the server so it is on the
// wire before a short-lived task process exits.
func (p *Publisher) Publish(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return taskerrors.WrapError(err, taskerrors.CategoryNotify, "marshal event")
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return taskerrors.WrapError(err, taskerrors.CategoryNotify, fmt.Sprintf("publish to %s", p.subject))
	}
	if err := p.conn.FlushTimeout(flushTimeout); err != nil {
		return taskerrors.WrapError(err, taskerrors.CategoryNotify, "flush")
	}
	slog.Debug("task event published",
		logfields.Subject(p.subject), logfields.Task(event.Task), logfields.Outcome(event.Outcome))
	return nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
