// Package httpapi exposes the seminar workflow over HTTP JSON.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seminarhub/backend/internal/platform/httpjson"
	"github.com/seminarhub/backend/internal/services/seminar/awards"
	"github.com/seminarhub/backend/internal/services/seminar/evaluation"
	"github.com/seminarhub/backend/internal/services/seminar/registry"
	"github.com/seminarhub/backend/internal/services/seminar/reports"
	"github.com/seminarhub/backend/internal/services/seminar/scheduler"
)

// Handler serves the seminar HTTP API.
type Handler struct {
	scheduler  *scheduler.Service
	registry   *registry.Service
	evaluation *evaluation.Service
	awards     *awards.Service
	reports    *reports.Service
	logger     *slog.Logger
	jwtSecret  []byte
}

// Config wires the handler's services and options.
type Config struct {
	Scheduler  *scheduler.Service
	Registry   *registry.Service
	Evaluation *evaluation.Service
	Awards     *awards.Service
	Reports    *reports.Service
	Logger     *slog.Logger

	// JWTSecret enables bearer identity when non-empty. Tokens carry the
	// caller's user ID as subject; no password checking happens here.
	JWTSecret []byte
}

// New creates the API handler.
func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		scheduler:  cfg.Scheduler,
		registry:   cfg.Registry,
		evaluation: cfg.Evaluation,
		awards:     cfg.Awards,
		reports:    cfg.Reports,
		logger:     logger,
		jwtSecret:  cfg.JWTSecret,
	}
}

// Routes mounts every API route on a fresh router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.bearerIdentity)

	r.Get("/health", h.health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/users", h.createUser)
		r.Get("/users", h.listUsersByRole)
		r.Get("/users/{userID}", h.getUser)

		r.Post("/submissions", h.registerSubmission)
		r.Get("/students/{studentID}/submissions", h.listStudentSubmissions)
		r.Get("/students/{studentID}/submissions/current", h.currentSubmission)

		r.Post("/sessions", h.createSession)
		r.Get("/sessions", h.listSessions)
		r.Get("/sessions/{sessionID}", h.getSession)

		r.Post("/assignments", h.createAssignment)
		r.Get("/evaluators/{evaluatorID}/worklist", h.evaluatorWorklist)

		r.Put("/evaluations", h.saveEvaluation)
		r.Get("/evaluations", h.loadEvaluation)
		r.Get("/submissions/{submissionID}/average", h.averageScore)

		r.Post("/awards/compute", h.computeAwards)
		r.Get("/awards", h.listAwards)

		r.Get("/reports/schedule", h.scheduleReport)
		r.Get("/reports/final-evaluations", h.finalEvaluationReport)
		r.Get("/reports/award-agenda", h.awardAgendaReport)
	})
	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	httpjson.WriteSuccess(w, map[string]string{"status": "ok"})
}
