package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	platerrors "github.com/seminarhub/backend/internal/platform/errors"
	"github.com/seminarhub/backend/internal/platform/httpjson"
	"github.com/seminarhub/backend/internal/services/seminar/domain"
)

type createSessionRequest struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
	SessionType string `json:"session_type"`
}

type sessionPayload struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
	SessionType string `json:"session_type"`
}

func sessionToPayload(session domain.Session) sessionPayload {
	return sessionPayload{
		ID:          session.ID,
		Date:        session.Date,
		Time:        session.Time,
		Venue:       session.Venue,
		SessionType: session.SessionType.String(),
	}
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, "invalid request body", http.StatusBadRequest, string(platerrors.CodeUnknown))
		return
	}

	session, err := h.scheduler.CreateSession(r.Context(), domain.CreateSessionInput{
		Date:        req.Date,
		Time:        req.Time,
		Venue:       req.Venue,
		SessionType: domain.ParseSubmissionType(req.SessionType),
	})
	if err != nil {
		httpjson.HandleError(h.logger, w, err)
		return
	}
	httpjson.WriteSuccessStatus(w, http.StatusCreated, sessionToPayload(session))
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.ParseInt(chi.URLParam(r, "sessionID"), 10, 64)
	if err != nil {
		httpjson.WriteError(w, "session id must be an integer", http.StatusBadRequest, string(platerrors.CodeUnknown))
		return
	}
	session, err := h.scheduler.GetSession(r.Context(), sessionID)
	if err != nil {
		httpjson.HandleError(h.logger, w, err)
		return
	}
	httpjson.WriteSuccess(w, sessionToPayload(session))
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.scheduler.ListSessions(r.Context())
	if err != nil {
		httpjson.HandleError(h.logger, w, err)
		return
	}
	payload := make([]sessionPayload, 0, len(sessions))
	for _, session := range sessions {
		payload = append(payload, sessionToPayload(session))
	}
	httpjson.WriteSuccess(w, payload)
}
