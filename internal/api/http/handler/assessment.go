package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Alijeyrad/angket_backend/internal/instrument"
	"github.com/Alijeyrad/angket_backend/internal/ledger"
	"github.com/Alijeyrad/angket_backend/internal/scoring"
	"github.com/Alijeyrad/angket_backend/internal/service/assessment"
	"github.com/Alijeyrad/angket_backend/pkg/reqctx"
)

type AssessmentHandler struct {
	svc      assessment.Service
	validate *validator.Validate
}

func NewAssessmentHandler(svc assessment.Service) *AssessmentHandler {
	return &AssessmentHandler{svc: svc, validate: newValidator()}
}

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

type setScoresRequest struct {
	Scores map[int]int `json:"scores" validate:"required,min=1"`
}

type setScoresByStatementRequest struct {
	Scores map[string]int `json:"scores" validate:"required,min=1"`
}

type commitRequest struct {
	Date         string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Institution  string `json:"institution"`
	SubjectName  string `json:"subject_name" validate:"required"`
	ClassLabel   string `json:"class_label"`
	AssessorName string `json:"assessor_name"`
}

type mailExportRequest struct {
	To []string `json:"to" validate:"required,min=1,dive,email"`
}

type catalogResponse struct {
	Constructs    []instrument.Construct            `json:"constructs"`
	Subdimensions map[instrument.Construct][]string `json:"subdimensions"`
	Items         []instrument.Item                 `json:"items"`
}

type exportResponse struct {
	FileName string `json:"file_name"`
	Rows     int    `json:"rows"`
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func mapAssessmentError(c fiber.Ctx, err error) error {
	var verr *scoring.ValidationError
	switch {
	case errors.As(err, &verr):
		return unprocessable(c, verr.Error())
	case errors.Is(err, assessment.ErrSessionNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, assessment.ErrTooManySessions):
		return tooManyRequests(c, err.Error())
	case errors.Is(err, assessment.ErrNoRecipients):
		return unprocessable(c, err.Error())
	case errors.Is(err, assessment.ErrMailDisabled):
		return unavailable(c, err.Error())
	default:
		return internalError(c)
	}
}

// sessionID parses :id and tags the request context with it.
func sessionID(c fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false
	}
	c.SetContext(reqctx.WithSessionID(c.Context(), id.String()))
	return id, true
}

// bind decodes the JSON body into dst and runs struct validation. It writes
// the error response itself and reports whether the handler may continue.
func (h *AssessmentHandler) bind(c fiber.Ctx, dst any) (bool, error) {
	if err := c.Bind().JSON(dst); err != nil {
		return false, badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(dst); err != nil {
		return false, unprocessable(c, describe(err))
	}
	return true, nil
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

// GET /catalog
func (h *AssessmentHandler) Catalog(c fiber.Ctx) error {
	cat := h.svc.Catalog()
	construct := instrument.Construct(c.Query("construct"))
	if construct != "" && !cat.HasConstruct(construct) {
		return unprocessable(c, scoring.NewValidationError("construct", "unknown construct %q", construct).Error())
	}

	resp := catalogResponse{
		Constructs:    cat.Constructs(),
		Subdimensions: make(map[instrument.Construct][]string),
		Items:         cat.Filter(construct),
	}
	for _, k := range resp.Constructs {
		resp.Subdimensions[k] = cat.Subdimensions(k)
	}
	return ok(c, resp)
}

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

// POST /sessions
func (h *AssessmentHandler) CreateSession(c fiber.Ctx) error {
	v, err := h.svc.CreateSession(c.Context())
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return created(c, v)
}

// GET /sessions/:id
func (h *AssessmentHandler) GetSession(c fiber.Ctx) error {
	id, valid := sessionID(c)
	if !valid {
		return badRequest(c, "invalid session id")
	}
	v, err := h.svc.GetSession(c.Context(), id)
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return ok(c, v)
}

// DELETE /sessions/:id
func (h *AssessmentHandler) DeleteSession(c fiber.Ctx) error {
	id, valid := sessionID(c)
	if !valid {
		return badRequest(c, "invalid session id")
	}
	if err := h.svc.DeleteSession(c.Context(), id); err != nil {
		return mapAssessmentError(c, err)
	}
	return noContent(c)
}

// ---------------------------------------------------------------------------
// Scoring sheet
// ---------------------------------------------------------------------------

// GET /sessions/:id/items?construct=
func (h *AssessmentHandler) Items(c fiber.Ctx) error {
	id, valid := sessionID(c)
	if !valid {
		return badRequest(c, "invalid session id")
	}
	items, err := h.svc.Items(c.Context(), id, instrument.Construct(c.Query("construct")))
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return ok(c, items)
}

// PATCH /sessions/:id/scores
func (h *AssessmentHandler) SetScores(c fiber.Ctx) error {
	id, valid := sessionID(c)
	if !valid {
		return badRequest(c, "invalid session id")
	}
	var req setScoresRequest
	if cont, err := h.bind(c, &req); !cont {
		return err
	}
	sum, err := h.svc.SetScores(c.Context(), id, req.Scores)
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return ok(c, sum)
}

// PATCH /sessions/:id/scores/by-statement
func (h *AssessmentHandler) SetScoresByStatement(c fiber.Ctx) error {
	id, valid := sessionID(c)
	if !valid {
		return badRequest(c, "invalid session id")
	}
	var req setScoresByStatementRequest
	if cont, err := h.bind(c, &req); !cont {
		return err
	}
	sum, err := h.svc.SetScoresByStatement(c.Context(), id, req.Scores)
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return ok(c, sum)
}

// POST /sessions/:id/reset
func (h *AssessmentHandler) Reset(c fiber.Ctx) error {
	id, valid := sessionID(c)
	if !valid {
		return badRequest(c, "invalid session id")
	}
	sum, err := h.svc.Reset(c.Context(), id)
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return ok(c, sum)
}

// GET /sessions/:id/summary
func (h *AssessmentHandler) Summary(c fiber.Ctx) error {
	id, valid := sessionID(c)
	if !valid {
		return badRequest(c, "invalid session id")
	}
	sum, err := h.svc.Summary(c.Context(), id)
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return ok(c, sum)
}

// ---------------------------------------------------------------------------
// Ledger
// ---------------------------------------------------------------------------

// GET /sessions/:id/ledger
func (h *AssessmentHandler) Rows(c fiber.Ctx) error {
	id, valid := sessionID(c)
	if !valid {
		return badRequest(c, "invalid session id")
	}
	rows, err := h.svc.Rows(c.Context(), id)
	if err != nil {
		return mapAssessmentError(c, err)
	}
	if rows == nil {
		rows = []ledger.Row{}
	}
	return ok(c, rows)
}

// POST /sessions/:id/ledger
func (h *AssessmentHandler) Commit(c fiber.Ctx) error {
	id, valid := sessionID(c)
	if !valid {
		return badRequest(c, "invalid session id")
	}
	var req commitRequest
	if cont, err := h.bind(c, &req); !cont {
		return err
	}
	row, err := h.svc.Commit(c.Context(), id, ledger.Identity{
		Date:         req.Date,
		Institution:  req.Institution,
		SubjectName:  req.SubjectName,
		ClassLabel:   req.ClassLabel,
		AssessorName: req.AssessorName,
	})
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return created(c, row)
}

// DELETE /sessions/:id/ledger
func (h *AssessmentHandler) ClearLedger(c fiber.Ctx) error {
	id, valid := sessionID(c)
	if !valid {
		return badRequest(c, "invalid session id")
	}
	if err := h.svc.ClearLedger(c.Context(), id); err != nil {
		return mapAssessmentError(c, err)
	}
	return noContent(c)
}

// ---------------------------------------------------------------------------
// Export
// ---------------------------------------------------------------------------

// GET /sessions/:id/export
func (h *AssessmentHandler) Export(c fiber.Ctx) error {
	id, valid := sessionID(c)
	if !valid {
		return badRequest(c, "invalid session id")
	}
	out, err := h.svc.Export(c.Context(), id)
	if err != nil {
		return mapAssessmentError(c, err)
	}
	c.Attachment(out.FileName)
	c.Set(fiber.HeaderContentType, out.ContentType)
	return c.Send(out.Data)
}

// POST /sessions/:id/export/mail
func (h *AssessmentHandler) MailExport(c fiber.Ctx) error {
	id, valid := sessionID(c)
	if !valid {
		return badRequest(c, "invalid session id")
	}
	var req mailExportRequest
	if cont, err := h.bind(c, &req); !cont {
		return err
	}
	out, err := h.svc.MailExport(c.Context(), id, req.To)
	if err != nil {
		return mapAssessmentError(c, err)
	}
	return ok(c, exportResponse{FileName: out.FileName, Rows: out.Rows})
}
