package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	platerrors "github.com/seminarhub/backend/internal/platform/errors"
	"github.com/seminarhub/backend/internal/platform/httpjson"
	"github.com/seminarhub/backend/internal/services/seminar/domain"
)

type userPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var payload userPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpjson.WriteError(w, "invalid request body", http.StatusBadRequest, string(platerrors.CodeUnknown))
		return
	}

	user := domain.User{
		ID:   payload.ID,
		Name: payload.Name,
		Role: domain.ParseRole(payload.Role),
	}
	if err := h.registry.CreateUser(r.Context(), user); err != nil {
		httpjson.HandleError(h.logger, w, err)
		return
	}
	httpjson.WriteSuccessStatus(w, http.StatusCreated, userPayload{
		ID:   user.ID,
		Name: user.Name,
		Role: user.Role.String(),
	})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.registry.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		httpjson.HandleError(h.logger, w, err)
		return
	}
	httpjson.WriteSuccess(w, userPayload{
		ID:   user.ID,
		Name: user.Name,
		Role: user.Role.String(),
	})
}

func (h *Handler) listUsersByRole(w http.ResponseWriter, r *http.Request) {
	role := domain.ParseRole(r.URL.Query().Get("role"))
	users, err := h.registry.ListUsersByRole(r.Context(), role)
	if err != nil {
		httpjson.HandleError(h.logger, w, err)
		return
	}
	payload := make([]userPayload, 0, len(users))
	for _, user := range users {
		payload = append(payload, userPayload{
			ID:   user.ID,
			Name: user.Name,
			Role: user.Role.String(),
		})
	}
	httpjson.WriteSuccess(w, payload)
}
