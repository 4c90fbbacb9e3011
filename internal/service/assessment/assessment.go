package assessment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alijeyrad/angket_backend/internal/export"
	"github.com/Alijeyrad/angket_backend/internal/instrument"
	"github.com/Alijeyrad/angket_backend/internal/ledger"
	"github.com/Alijeyrad/angket_backend/internal/scoring"
	"github.com/Alijeyrad/angket_backend/pkg/email"
	"github.com/Alijeyrad/angket_backend/pkg/events"
	"github.com/Alijeyrad/angket_backend/pkg/reqctx"
)

const instrumentationName = "github.com/Alijeyrad/angket_backend/internal/service/assessment"

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// Export is a serialized ledger ready for download or mailing.
type Export struct {
	FileName    string
	ContentType string
	Rows        int
	Data        []byte
}

// Mailer is the subset of pkg/email used to send exports.
type Mailer interface {
	IsEnabled() bool
	AppName() string
	Send(ctx context.Context, m email.Message) error
}

type Options struct {
	Catalog   *instrument.Catalog
	Exporter  *export.Exporter
	Mailer    Mailer
	Publisher events.Publisher
	Logger    *slog.Logger
	Now       func() time.Time

	// SessionTTL expires sessions idle for longer; zero keeps them forever.
	SessionTTL time.Duration
	// MaxSessions caps concurrently open sessions; zero means unlimited.
	MaxSessions int
	// IncludeItems adds the current sheet as an audit sheet to every export.
	IncludeItems bool
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Catalog() *instrument.Catalog

	CreateSession(ctx context.Context) (View, error)
	GetSession(ctx context.Context, id uuid.UUID) (View, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	ExpireIdle(now time.Time) int

	// Scoring sheet
	Items(ctx context.Context, id uuid.UUID, construct instrument.Construct) ([]instrument.Item, error)
	SetScores(ctx context.Context, id uuid.UUID, scores map[int]int) (scoring.Summary, error)
	SetScoresByStatement(ctx context.Context, id uuid.UUID, scores map[string]int) (scoring.Summary, error)
	Reset(ctx context.Context, id uuid.UUID) (scoring.Summary, error)
	Summary(ctx context.Context, id uuid.UUID) (scoring.Summary, error)

	// Ledger
	Commit(ctx context.Context, id uuid.UUID, identity ledger.Identity) (ledger.Row, error)
	Rows(ctx context.Context, id uuid.UUID) ([]ledger.Row, error)
	ClearLedger(ctx context.Context, id uuid.UUID) error

	// Export
	Export(ctx context.Context, id uuid.UUID) (Export, error)
	MailExport(ctx context.Context, id uuid.UUID, to []string) (Export, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type service struct {
	opts   Options
	log    *slog.Logger
	tracer trace.Tracer

	mu       sync.Mutex
	sessions map[uuid.UUID]*session

	sessionsCreated metric.Int64Counter
	scoreUpdates    metric.Int64Counter
	commits         metric.Int64Counter
	rejected        metric.Int64Counter
	exports         metric.Int64Counter
}

func New(opts Options) Service {
	if opts.Catalog == nil {
		opts.Catalog = instrument.Default()
	}
	if opts.Exporter == nil {
		opts.Exporter = export.New(export.Config{})
	}
	if opts.Publisher == nil {
		opts.Publisher = events.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	meter := otel.Meter(instrumentationName)
	s := &service{
		opts:     opts,
		log:      opts.Logger,
		tracer:   otel.Tracer(instrumentationName),
		sessions: make(map[uuid.UUID]*session),
	}
	// Instrument creation only fails on invalid names; the noop fallback is fine.
	s.sessionsCreated, _ = meter.Int64Counter("angket_sessions_created_total",
		metric.WithDescription("Assessment sessions opened"))
	s.scoreUpdates, _ = meter.Int64Counter("angket_score_updates_total",
		metric.WithDescription("Accepted score update batches"))
	s.commits, _ = meter.Int64Counter("angket_ledger_commits_total",
		metric.WithDescription("Ledger rows committed"))
	s.rejected, _ = meter.Int64Counter("angket_validation_rejections_total",
		metric.WithDescription("Operator actions rejected by validation"))
	s.exports, _ = meter.Int64Counter("angket_exports_total",
		metric.WithDescription("Ledger workbooks produced"))
	return s
}

func (s *service) Catalog() *instrument.Catalog { return s.opts.Catalog }

func (s *service) CreateSession(ctx context.Context) (View, error) {
	now := s.opts.Now()

	s.mu.Lock()
	if s.opts.MaxSessions > 0 && len(s.sessions) >= s.opts.MaxSessions {
		s.mu.Unlock()
		return View{}, ErrTooManySessions
	}
	sess := newSession(s.opts.Catalog, now)
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.sessionsCreated.Add(ctx, 1)
	s.logger(ctx).Info("assessment session created", "session_id", sess.id)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

func (s *service) GetSession(ctx context.Context, id uuid.UUID) (View, error) {
	var v View
	err := s.with(id, func(sess *session) error {
		v = sess.view()
		return nil
	})
	return v, err
}

func (s *service) DeleteSession(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.logger(ctx).Info("assessment session closed", "session_id", id)
	return nil
}

// ExpireIdle drops sessions untouched for longer than the TTL and returns how
// many were removed.
func (s *service) ExpireIdle(now time.Time) int {
	if s.opts.SessionTTL <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := now.Sub(sess.touchedAt)
		sess.mu.Unlock()
		if idle > s.opts.SessionTTL {
			delete(s.sessions, id)
			n++
		}
	}
	if n > 0 {
		s.log.Info("expired idle assessment sessions", "count", n, "remaining", len(s.sessions))
	}
	return n
}

func (s *service) Items(ctx context.Context, id uuid.UUID, construct instrument.Construct) ([]instrument.Item, error) {
	if construct != "" && !s.opts.Catalog.HasConstruct(construct) {
		return nil, s.reject(ctx, scoring.NewValidationError("construct", "unknown construct %q", construct))
	}
	var items []instrument.Item
	err := s.with(id, func(sess *session) error {
		items = sess.sheet.Filter(construct)
		return nil
	})
	return items, err
}

func (s *service) SetScores(ctx context.Context, id uuid.UUID, scores map[int]int) (scoring.Summary, error) {
	return s.update(ctx, id, func(sh *scoring.Sheet) error { return sh.SetScores(scores) })
}

func (s *service) SetScoresByStatement(ctx context.Context, id uuid.UUID, scores map[string]int) (scoring.Summary, error) {
	return s.update(ctx, id, func(sh *scoring.Sheet) error { return sh.SetScoresByStatement(scores) })
}

func (s *service) Reset(ctx context.Context, id uuid.UUID) (scoring.Summary, error) {
	sum, err := s.update(ctx, id, func(sh *scoring.Sheet) error {
		sh.Reset()
		return nil
	})
	if err == nil {
		s.logger(ctx).Debug("scoring sheet reset", "session_id", id)
	}
	return sum, err
}

func (s *service) Summary(ctx context.Context, id uuid.UUID) (scoring.Summary, error) {
	var sum scoring.Summary
	err := s.with(id, func(sess *session) error {
		sum = scoring.Summarize(sess.sheet)
		return nil
	})
	return sum, err
}

func (s *service) Commit(ctx context.Context, id uuid.UUID, identity ledger.Identity) (ledger.Row, error) {
	ctx, span := s.tracer.Start(ctx, "assessment.Commit", trace.WithAttributes(
		attribute.String("session.id", id.String()),
	))
	defer span.End()

	identity, err := s.normalizeIdentity(identity)
	if err != nil {
		return ledger.Row{}, s.reject(ctx, err)
	}

	var row ledger.Row
	err = s.with(id, func(sess *session) error {
		r, err := sess.ledger.Commit(identity, scoring.Summarize(sess.sheet))
		if err != nil {
			return err
		}
		row = r
		return nil
	})
	if err != nil {
		if scoring.IsValidation(err) {
			return ledger.Row{}, s.reject(ctx, err)
		}
		return ledger.Row{}, err
	}

	s.commits.Add(ctx, 1, metric.WithAttributes(attribute.String("category", string(row.Category))))
	span.SetAttributes(attribute.String("ledger.category", string(row.Category)))
	s.logger(ctx).Info("ledger row committed",
		"session_id", id,
		"total", row.TotalScore,
		"percentage", row.Percentage,
		"category", row.Category,
	)
	s.publish(ctx, events.SubjectLedgerCommitted, id, row)
	return row, nil
}

func (s *service) Rows(ctx context.Context, id uuid.UUID) ([]ledger.Row, error) {
	var rows []ledger.Row
	err := s.with(id, func(sess *session) error {
		rows = sess.ledger.Rows()
		return nil
	})
	return rows, err
}

func (s *service) ClearLedger(ctx context.Context, id uuid.UUID) error {
	var cleared int
	err := s.with(id, func(sess *session) error {
		cleared = sess.ledger.Len()
		sess.ledger.Clear()
		return nil
	})
	if err != nil {
		return err
	}
	s.logger(ctx).Info("ledger cleared", "session_id", id, "rows", cleared)
	s.publish(ctx, events.SubjectLedgerCleared, id, map[string]int{"rows": cleared})
	return nil
}

func (s *service) Export(ctx context.Context, id uuid.UUID) (Export, error) {
	ctx, span := s.tracer.Start(ctx, "assessment.Export", trace.WithAttributes(
		attribute.String("session.id", id.String()),
	))
	defer span.End()

	var wb export.Workbook
	err := s.with(id, func(sess *session) error {
		wb = export.Workbook{
			Constructs: s.opts.Catalog.Constructs(),
			Rows:       sess.ledger.Rows(),
		}
		if s.opts.IncludeItems {
			wb.Items = sess.sheet.Items()
		}
		return nil
	})
	if err != nil {
		return Export{}, err
	}

	data, err := s.opts.Exporter.Bytes(wb)
	if err != nil {
		span.RecordError(err)
		return Export{}, fmt.Errorf("export ledger: %w", err)
	}

	s.exports.Add(ctx, 1)
	span.SetAttributes(attribute.Int("ledger.rows", len(wb.Rows)))
	return Export{
		FileName:    s.opts.Exporter.FileName(s.opts.Now()),
		ContentType: export.ContentType,
		Rows:        len(wb.Rows),
		Data:        data,
	}, nil
}

func (s *service) MailExport(ctx context.Context, id uuid.UUID, to []string) (Export, error) {
	if s.opts.Mailer == nil || !s.opts.Mailer.IsEnabled() {
		return Export{}, ErrMailDisabled
	}
	recipients := make([]string, 0, len(to))
	for _, addr := range to {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	if len(recipients) == 0 {
		return Export{}, ErrNoRecipients
	}

	out, err := s.Export(ctx, id)
	if err != nil {
		return Export{}, err
	}

	rows, err := s.Rows(ctx, id)
	if err != nil {
		return Export{}, err
	}
	var institution string
	if len(rows) > 0 {
		institution = rows[len(rows)-1].Institution
	}

	msg := email.BuildLedgerExportEmail(recipients, email.LedgerExportData{
		AppName:     s.opts.Mailer.AppName(),
		Institution: institution,
		Rows:        out.Rows,
		FileName:    out.FileName,
		ContentType: out.ContentType,
		Workbook:    out.Data,
	})
	if err := s.opts.Mailer.Send(ctx, msg); err != nil {
		return Export{}, fmt.Errorf("mail export: %w", err)
	}

	s.logger(ctx).Info("ledger export mailed", "session_id", id, "recipients", len(recipients), "rows", out.Rows)
	return out, nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

// with runs fn under the session lock and marks the session as used.
func (s *service) with(id uuid.UUID, fn func(*session) error) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touchedAt = s.opts.Now()
	return fn(sess)
}

func (s *service) update(ctx context.Context, id uuid.UUID, fn func(*scoring.Sheet) error) (scoring.Summary, error) {
	var sum scoring.Summary
	err := s.with(id, func(sess *session) error {
		if err := fn(sess.sheet); err != nil {
			return err
		}
		sum = scoring.Summarize(sess.sheet)
		return nil
	})
	if err != nil {
		if scoring.IsValidation(err) {
			return scoring.Summary{}, s.reject(ctx, err)
		}
		return scoring.Summary{}, err
	}
	s.scoreUpdates.Add(ctx, 1)
	return sum, nil
}

// normalizeIdentity trims every field and defaults the date to today.
func (s *service) normalizeIdentity(id ledger.Identity) (ledger.Identity, error) {
	id.Date = strings.TrimSpace(id.Date)
	id.Institution = strings.TrimSpace(id.Institution)
	id.SubjectName = strings.TrimSpace(id.SubjectName)
	id.ClassLabel = strings.TrimSpace(id.ClassLabel)
	id.AssessorName = strings.TrimSpace(id.AssessorName)

	if id.Date == "" {
		id.Date = s.opts.Now().Format(ledger.DateLayout)
		return id, nil
	}
	if _, err := time.Parse(ledger.DateLayout, id.Date); err != nil {
		return id, scoring.NewValidationError("date", "%q is not a YYYY-MM-DD date", id.Date)
	}
	return id, nil
}

func (s *service) reject(ctx context.Context, err error) error {
	s.rejected.Add(ctx, 1)
	s.logger(ctx).Debug("operator action rejected", "err", err)
	return err
}

func (s *service) publish(ctx context.Context, subject string, id uuid.UUID, data any) {
	err := s.opts.Publisher.Publish(ctx, subject, events.Event{
		Type:       subject,
		SessionID:  id.String(),
		OccurredAt: s.opts.Now(),
		Data:       data,
	})
	if err != nil {
		s.logger(ctx).Warn("publish ledger event failed", "subject", subject, "err", err)
	}
}

func (s *service) logger(ctx context.Context) *slog.Logger {
	if rid := reqctx.RequestIDFromContext(ctx); rid != "" {
		return s.log.With("request_id", rid)
	}
	return s.log
}
