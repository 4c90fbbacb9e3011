package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects, relative to the configured prefix.
const (
	SubjectLedgerCommitted = "ledger.committed"
	SubjectLedgerCleared   = "ledger.cleared"
)

// Event is the JSON envelope published for every ledger change.
type Event struct {
	Type       string    `json:"type"`
	SessionID  string    `json:"session_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

// Publisher sends ledger events. Implementations must not block the caller on
// delivery failures.
type Publisher interface {
	Publish(ctx context.Context, subject string, ev Event) error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, Event) error { return nil }

// NATS publishes events as JSON under prefix.subject.sessionID.
type NATS struct {
	nc     *nats.Conn
	prefix string
}

func NewNATS(nc *nats.Conn, prefix string) *NATS {
	return &NATS{nc: nc, prefix: strings.Trim(prefix, ".")}
}

func (p *NATS) Subject(subject, sessionID string) string {
	parts := make([]string, 0, 3)
	if p.prefix != "" {
		parts = append(parts, p.prefix)
	}
	parts = append(parts, subject)
	if sessionID != "" {
		parts = append(parts, sessionID)
	}
	return strings.Join(parts, ".")
}

func (p *NATS) Publish(ctx context.Context, subject string, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := p.nc.Publish(p.Subject(subject, ev.SessionID), data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// SubscribeAudit logs every ledger event under prefix. It returns the
// subscription so the caller can drain it on shutdown.
func SubscribeAudit(nc *nats.Conn, prefix string, log *slog.Logger) (*nats.Subscription, error) {
	wildcard := "ledger.>"
	if p := strings.Trim(prefix, "."); p != "" {
		wildcard = p + ".ledger.>"
	}
	return nc.Subscribe(wildcard, func(msg *nats.Msg) {
		var ev Event
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			log.Warn("ledger_audit: undecodable event", "subject", msg.Subject, "err", err)
			return
		}
		log.Info("ledger_audit: event",
			"subject", msg.Subject,
			"type", ev.Type,
			"session_id", ev.SessionID,
			"occurred_at", ev.OccurredAt,
		)
	})
}
