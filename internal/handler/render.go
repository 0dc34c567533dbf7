package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mmynk/mealplanner/internal/auth"
	"github.com/mmynk/mealplanner/internal/service"
)

// requestError is a malformed request detected before reaching a service.
type requestError struct {
	status int
	detail string
}

func (e *requestError) Error() string { return e.detail }

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeError maps service and auth errors onto HTTP responses.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr   *service.ValidationError
		reqErr *requestError
	)

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, verr.Errors)
	case errors.As(err, &reqErr):
		writeDetail(w, reqErr.status, reqErr.detail)
	case errors.Is(err, service.ErrUnauthenticated):
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
		writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
	case errors.Is(err, service.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, auth.ErrEmailExists):
		writeJSON(w, http.StatusConflict, map[string][]string{"email": {"user with this email already exists."}})
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeDetail(w, http.StatusUnauthorized, "Unable to authenticate with provided credentials.")
	default:
		h.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
	}
}
