package app

import (
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/Alijeyrad/angket_backend/config"
	"github.com/Alijeyrad/angket_backend/internal/export"
	"github.com/Alijeyrad/angket_backend/internal/instrument"
	"github.com/Alijeyrad/angket_backend/internal/service/assessment"
	"github.com/Alijeyrad/angket_backend/pkg/email"
	"github.com/Alijeyrad/angket_backend/pkg/events"
	"github.com/Alijeyrad/angket_backend/pkg/observability"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideAssessmentService,
	),
)

type AssessmentParams struct {
	fx.In

	Cfg       *config.Config
	Exporter  *export.Exporter
	Email     *email.Client
	Publisher events.Publisher
	// OTel orders the service after the global meter provider is installed.
	OTel *observability.Provider `optional:"true"`
}

func ProvideAssessmentService(p AssessmentParams) assessment.Service {
	return assessment.New(assessment.Options{
		Catalog:      instrument.Default(),
		Exporter:     p.Exporter,
		Mailer:       p.Email,
		Publisher:    p.Publisher,
		Logger:       slog.Default().With("component", "assessment"),
		SessionTTL:   time.Duration(p.Cfg.Assessment.SessionTTLMinutes) * time.Minute,
		MaxSessions:  p.Cfg.Assessment.MaxSessions,
		IncludeItems: p.Cfg.Assessment.IncludeItemsInExport,
	})
}
