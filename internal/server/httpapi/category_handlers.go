package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"inkwell/internal/common"
)

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {

	list, err := s.categories.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	result := make([]categoryJSON, 0, len(list))
	for _, c := range list {
		result = append(result, toCategoryJSON(c))
	}

	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := s.categories.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.respondError(w, r, &apiError{status: http.StatusBadRequest, message: "Category already exists", err: err})
			return
		}
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, toCategoryJSON(category))
}
