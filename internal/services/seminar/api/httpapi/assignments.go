package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	platerrors "github.com/seminarhub/backend/internal/platform/errors"
	"github.com/seminarhub/backend/internal/platform/httpjson"
)

type createAssignmentRequest struct {
	SessionID   int64  `json:"session_id"`
	StudentID   string `json:"student_id"`
	EvaluatorID string `json:"evaluator_id"`
}

type assignmentPayload struct {
	ID          int64  `json:"id"`
	SessionID   int64  `json:"session_id"`
	StudentID   string `json:"student_id"`
	EvaluatorID string `json:"evaluator_id"`
}

type worklistEntryPayload struct {
	SessionID       int64  `json:"session_id"`
	SubmissionID    int64  `json:"submission_id"`
	StudentID       string `json:"student_id"`
	StudentName     string `json:"student_name"`
	SubmissionTitle string `json:"submission_title"`
	SubmissionType  string `json:"submission_type"`
	MyTotal         *int   `json:"my_total,omitempty"`
}

func (h *Handler) createAssignment(w http.ResponseWriter, r *http.Request) {
	var req createAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, "invalid request body", http.StatusBadRequest, string(platerrors.CodeUnknown))
		return
	}

	assignment, err := h.registry.Assign(r.Context(), req.SessionID, req.StudentID, req.EvaluatorID)
	if err != nil {
		httpjson.HandleError(h.logger, w, err)
		return
	}
	httpjson.WriteSuccessStatus(w, http.StatusCreated, assignmentPayload{
		ID:          assignment.ID,
		SessionID:   assignment.SessionID,
		StudentID:   assignment.StudentID,
		EvaluatorID: assignment.EvaluatorID,
	})
}

func (h *Handler) evaluatorWorklist(w http.ResponseWriter, r *http.Request) {
	entries, err := h.registry.Worklist(r.Context(), chi.URLParam(r, "evaluatorID"))
	if err != nil {
		httpjson.HandleError(h.logger, w, err)
		return
	}
	payload := make([]worklistEntryPayload, 0, len(entries))
	for _, entry := range entries {
		payload = append(payload, worklistEntryPayload{
			SessionID:       entry.SessionID,
			SubmissionID:    entry.SubmissionID,
			StudentID:       entry.StudentID,
			StudentName:     entry.StudentName,
			SubmissionTitle: entry.SubmissionTitle,
			SubmissionType:  entry.SubmissionType.String(),
			MyTotal:         entry.MyTotal,
		})
	}
	httpjson.WriteSuccess(w, payload)
}
