package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	platerrors "github.com/seminarhub/backend/internal/platform/errors"
	"github.com/seminarhub/backend/internal/platform/httpjson"
	"github.com/seminarhub/backend/internal/services/seminar/domain"
)

type saveEvaluationRequest struct {
	EvaluatorID  string `json:"evaluator_id"`
	SubmissionID int64  `json:"submission_id"`
	Clarity      int    `json:"clarity"`
	Methodology  int    `json:"methodology"`
	Results      int    `json:"results"`
	Presentation int    `json:"presentation"`
	Comments     string `json:"comments"`
}

type evaluationPayload struct {
	EvaluatorID  string `json:"evaluator_id"`
	SubmissionID int64  `json:"submission_id"`
	Clarity      int    `json:"clarity"`
	Methodology  int    `json:"methodology"`
	Results      int    `json:"results"`
	Presentation int    `json:"presentation"`
	Total        int    `json:"total"`
	Comments     string `json:"comments,omitempty"`
	UpdatedAt    string `json:"updated_at"`
}

type averageScorePayload struct {
	SubmissionID int64   `json:"submission_id"`
	Average      float64 `json:"average"`
	Evaluations  int     `json:"evaluations"`
}

func (h *Handler) saveEvaluation(w http.ResponseWriter, r *http.Request) {
	var req saveEvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, "invalid request body", http.StatusBadRequest, string(platerrors.CodeUnknown))
		return
	}
	evaluatorID := req.EvaluatorID
	if caller := callerID(r.Context()); caller != "" && evaluatorID == "" {
		evaluatorID = caller
	}

	saved, err := h.evaluation.SaveOrUpdate(r.Context(), evaluatorID, req.SubmissionID, domain.Rubric{
		Clarity:      req.Clarity,
		Methodology:  req.Methodology,
		Results:      req.Results,
		Presentation: req.Presentation,
	}, req.Comments)
	if err != nil {
		httpjson.HandleError(h.logger, w, err)
		return
	}
	httpjson.WriteSuccess(w, evaluationPayload{
		EvaluatorID:  saved.EvaluatorID,
		SubmissionID: saved.SubmissionID,
		Clarity:      saved.Rubric.Clarity,
		Methodology:  saved.Rubric.Methodology,
		Results:      saved.Rubric.Results,
		Presentation: saved.Rubric.Presentation,
		Total:        saved.Total,
		Comments:     saved.Comments,
		UpdatedAt:    saved.UpdatedAt.Format(time.RFC3339),
	})
}

func (h *Handler) loadEvaluation(w http.ResponseWriter, r *http.Request) {
	evaluatorID := r.URL.Query().Get("evaluator_id")
	if caller := callerID(r.Context()); caller != "" && evaluatorID == "" {
		evaluatorID = caller
	}
	submissionID, err := strconv.ParseInt(r.URL.Query().Get("submission_id"), 10, 64)
	if err != nil {
		httpjson.WriteError(w, "submission_id must be an integer", http.StatusBadRequest, string(platerrors.CodeUnknown))
		return
	}

	loaded, err := h.evaluation.Load(r.Context(), evaluatorID, submissionID)
	if err != nil {
		httpjson.HandleError(h.logger, w, err)
		return
	}
	httpjson.WriteSuccess(w, evaluationPayload{
		EvaluatorID:  loaded.EvaluatorID,
		SubmissionID: loaded.SubmissionID,
		Clarity:      loaded.Rubric.Clarity,
		Methodology:  loaded.Rubric.Methodology,
		Results:      loaded.Rubric.Results,
		Presentation: loaded.Rubric.Presentation,
		Total:        loaded.Total,
		Comments:     loaded.Comments,
		UpdatedAt:    loaded.UpdatedAt.Format(time.RFC3339),
	})
}

func (h *Handler) averageScore(w http.ResponseWriter, r *http.Request) {
	submissionID, err := strconv.ParseInt(chi.URLParam(r, "submissionID"), 10, 64)
	if err != nil {
		httpjson.WriteError(w, "submission id must be an integer", http.StatusBadRequest, string(platerrors.CodeUnknown))
		return
	}

	average, count, err := h.awards.AverageScore(r.Context(), submissionID)
	if err != nil {
		httpjson.HandleError(h.logger, w, err)
		return
	}
	httpjson.WriteSuccess(w, averageScorePayload{
		SubmissionID: submissionID,
		Average:      average,
		Evaluations:  count,
	})
}
