package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/angket_backend/internal/api/http/handler"
)

func (r *Router) registerCatalogRoutes(api fiber.Router, h *handler.AssessmentHandler) {
	api.Get("/catalog", h.Catalog)
}

func (r *Router) registerSessionRoutes(api fiber.Router, h *handler.AssessmentHandler) {
	sessions := api.Group("/sessions")
	sessions.Post("/", h.CreateSession)

	s := sessions.Group("/:id")
	s.Get("/", h.GetSession)
	s.Delete("/", h.DeleteSession)

	// Scoring sheet
	s.Get("/items", h.Items)
	s.Patch("/scores", h.SetScores)
	s.Patch("/scores/by-statement", h.SetScoresByStatement)
	s.Post("/reset", h.Reset)
	s.Get("/summary", h.Summary)

	// Ledger
	s.Get("/ledger", h.Rows)
	s.Post("/ledger", h.Commit)
	s.Delete("/ledger", h.ClearLedger)

	// Export
	s.Get("/export", h.Export)
	s.Post("/export/mail", h.MailExport)
}
