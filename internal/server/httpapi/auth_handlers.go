package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"inkwell/internal/common"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := s.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.respondError(w, r, &apiError{status: http.StatusBadRequest, message: "Username already exists", err: err})
			return
		}
		s.respondError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "username", user.Username)
	s.respondJSON(w, http.StatusCreated, tokenResponse{Token: token, User: toUserJSON(user)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.respondError(w, r, &apiError{status: http.StatusUnauthorized, message: "Invalid credentials", err: err})
			return
		}
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, tokenResponse{Token: token, User: toUserJSON(user)})
}

type verifyResponse struct {
	User userJSON `json:"user"`
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {

	user, err := s.users.GetByID(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	s.respondJSON(w, http.StatusOK, verifyResponse{User: toUserJSON(user)})
}
