package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	platerrors "github.com/seminarhub/backend/internal/platform/errors"
	"github.com/seminarhub/backend/internal/platform/httpjson"
	"github.com/seminarhub/backend/internal/services/seminar/domain"
)

type registerSubmissionRequest struct {
	StudentID   string `json:"student_id"`
	Title       string `json:"title"`
	Abstract    string `json:"abstract"`
	Supervisor  string `json:"supervisor"`
	Type        string `json:"type"`
	ArtifactRef string `json:"artifact_ref"`
}

type submissionPayload struct {
	ID          int64  `json:"id"`
	StudentID   string `json:"student_id"`
	Title       string `json:"title"`
	Abstract    string `json:"abstract,omitempty"`
	Supervisor  string `json:"supervisor"`
	Type        string `json:"type"`
	ArtifactRef string `json:"artifact_ref,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func submissionToPayload(submission domain.Submission) submissionPayload {
	return submissionPayload{
		ID:          submission.ID,
		StudentID:   submission.StudentID,
		Title:       submission.Title,
		Abstract:    submission.Abstract,
		Supervisor:  submission.Supervisor,
		Type:        submission.Type.String(),
		ArtifactRef: submission.ArtifactRef,
		CreatedAt:   submission.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) registerSubmission(w http.ResponseWriter, r *http.Request) {
	var req registerSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, "invalid request body", http.StatusBadRequest, string(platerrors.CodeUnknown))
		return
	}
	studentID := req.StudentID
	if caller := callerID(r.Context()); caller != "" && studentID == "" {
		studentID = caller
	}

	submission, err := h.registry.RegisterSubmission(r.Context(), domain.RegisterSubmissionInput{
		StudentID:   studentID,
		Title:       req.Title,
		Abstract:    req.Abstract,
		Supervisor:  req.Supervisor,
		Type:        domain.ParseSubmissionType(req.Type),
		ArtifactRef: req.ArtifactRef,
	})
	if err != nil {
		httpjson.HandleError(h.logger, w, err)
		return
	}
	httpjson.WriteSuccessStatus(w, http.StatusCreated, submissionToPayload(submission))
}

func (h *Handler) listStudentSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.registry.ListSubmissionsByStudent(r.Context(), chi.URLParam(r, "studentID"))
	if err != nil {
		httpjson.HandleError(h.logger, w, err)
		return
	}
	payload := make([]submissionPayload, 0, len(submissions))
	for _, submission := range submissions {
		payload = append(payload, submissionToPayload(submission))
	}
	httpjson.WriteSuccess(w, payload)
}

func (h *Handler) currentSubmission(w http.ResponseWriter, r *http.Request) {
	submissionType := domain.ParseSubmissionType(r.URL.Query().Get("type"))
	submission, err := h.registry.ResolveCurrentSubmission(r.Context(), chi.URLParam(r, "studentID"), submissionType)
	if err != nil {
		httpjson.HandleError(h.logger, w, err)
		return
	}
	httpjson.WriteSuccess(w, submissionToPayload(submission))
}
