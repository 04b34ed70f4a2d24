package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"inkwell/internal/common"
	"inkwell/internal/server/posts"
)

// apiError carries an explicit HTTP status and client-facing message for a
// failure a handler knows how to phrase ("Post not found", etc.).
type apiError struct {
	status  int
	message string
	err     error
}

func (e *apiError) Error() string { return e.message }
func (e *apiError) Unwrap() error { return e.err }

func notFound(resource string, err error) *apiError {
	return &apiError{status: http.StatusNotFound, message: resource + " not found", err: err}
}

type messageResponse struct {
	Message string `json:"message"`
}

type fieldErrorsResponse struct {
	Errors []common.FieldError `json:"errors"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) respondMessage(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, messageResponse{Message: message})
}

// respondError is the centralized error responder. Handlers forward every
// failure here; store-internal errors are logged and never leak to the
// client.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {

	var aerr *apiError
	if errors.As(err, &aerr) {
		s.respondMessage(w, aerr.status, aerr.message)
		return
	}

	var verr *common.ValidationError
	if errors.As(err, &verr) {
		s.respondJSON(w, http.StatusBadRequest, fieldErrorsResponse{Errors: verr.Fields})
		return
	}

	switch {
	case errors.Is(err, posts.ErrCategoryNotFound):
		s.respondMessage(w, http.StatusBadRequest, "Category not found")
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		s.respondMessage(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, common.ErrorNotFound):
		s.respondMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		s.respondMessage(w, http.StatusBadRequest, "Already exists")
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		s.respondMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
