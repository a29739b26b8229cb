// Package httpjson writes the JSON response envelope used by the HTTP API.
package httpjson

import (
	"encoding/json"
	"log/slog"
	"net/http"

	platerrors "github.com/seminarhub/backend/internal/platform/errors"
)

// Response is the envelope for every API reply.
type Response struct {
	Status  string `json:"status"` // "success" or "error"
	Data    any    `json:"data,omitempty"`
	ErrCode string `json:"code,omitempty"`
	ErrMsg  string `json:"message,omitempty"`
}

// WriteSuccess writes a 200 envelope carrying data.
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

// WriteSuccessStatus writes a success envelope with an explicit status code.
func WriteSuccessStatus(w http.ResponseWriter, statusCode int, data any) {
	resp := Response{
		Status: "success",
		Data:   data,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteError writes an error envelope with the given status and code.
func WriteError(w http.ResponseWriter, errMsg string, statusCode int, errCode string) {
	resp := Response{
		Status:  "error",
		ErrMsg:  errMsg,
		ErrCode: errCode,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleError maps a service error to an HTTP reply. Domain errors carry
// their own code and status; anything else becomes an opaque 500.
func HandleError(logger *slog.Logger, w http.ResponseWriter, err error) {
	code := platerrors.CodeOf(err)
	if code == platerrors.CodeUnknown {
		if logger != nil {
			logger.Error("internal server error", "error", err)
		}
		WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError, string(platerrors.CodeUnknown))
		return
	}
	if logger != nil {
		logger.Warn("request rejected", "code", code, "error", err)
	}
	WriteError(w, err.Error(), code.HTTPStatus(), string(code))
}
