package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"GoMFiles/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// errorBody is the JSON error payload of every non-200 answer.
type errorBody struct {
	Message string `json:"Message"`
	Status  int    `json:"Status"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Message: msg, Status: status})
}

// writeError maps service errors to HTTP status codes.
func writeError(w http.ResponseWriter, log *zap.SugaredLogger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrWrongVault):
		status = http.StatusForbidden
	}
	if status == http.StatusInternalServerError {
		log.Errorw("request failed", "error", err)
		writeMessage(w, status, "internal server error")
		return
	}
	writeMessage(w, status, err.Error())
}

// intParam reads a numeric URL parameter.
func intParam(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	return n, err == nil
}
