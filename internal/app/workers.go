package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/Alijeyrad/angket_backend/config"
	"github.com/Alijeyrad/angket_backend/internal/service/assessment"
	"github.com/Alijeyrad/angket_backend/pkg/events"
)

// WorkerModule registers background workers.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc            fx.Lifecycle
	Cfg           *config.Config
	NC            *nats.Conn `optional:"true"`
	AssessmentSvc assessment.Service
}

func RegisterWorkers(p WorkerParams) {
	stop := make(chan struct{})
	done := make(chan struct{})
	var audit *nats.Subscription

	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if p.NC != nil {
				sub, err := events.SubscribeAudit(p.NC, p.Cfg.Nats.SubjectPrefix, slog.Default())
				if err != nil {
					slog.Error("ledger_audit: subscribe failed", "err", err)
				} else {
					audit = sub
					slog.Info("ledger_audit: started", "subject", sub.Subject)
				}
			}

			interval := time.Duration(p.Cfg.Assessment.JanitorIntervalSecs) * time.Second
			go runJanitor(p.AssessmentSvc, interval, stop, done)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			select {
			case <-done:
			case <-ctx.Done():
				return ctx.Err()
			}
			if audit != nil {
				// Drain of the connection itself is handled by ProvideNatsClient
				return audit.Unsubscribe()
			}
			return nil
		},
	})
}

// ---------------------------------------------------------------------------
// session_janitor
// ---------------------------------------------------------------------------

func runJanitor(svc assessment.Service, interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	if interval <= 0 {
		slog.Info("session_janitor: disabled")
		return
	}

	t := time.NewTicker(interval)
	defer t.Stop()
	slog.Info("session_janitor: started", "interval", interval)

	for {
		select {
		case now := <-t.C:
			if n := svc.ExpireIdle(now); n > 0 {
				slog.Debug("session_janitor: expired sessions", "count", n)
			}
		case <-stop:
			return
		}
	}
}
