package httpapi

import (
	"encoding/json"
	"net/http"
)

type createCommentRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {

	list, err := s.comments.ListByPost(r.Context(), r.PathValue("postId"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	result := make([]commentJSON, 0, len(list))
	for _, c := range list {
		result = append(result, toCommentJSON(c))
	}

	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// author always comes from the verified identity, never from the body
	userID := userIDFromContext(r.Context())

	comment, err := s.comments.Create(r.Context(), r.PathValue("postId"), userID, req.Content)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if user, err := s.users.GetByID(r.Context(), userID); err == nil {
		comment.AuthorUsername = user.Username
	}

	s.respondJSON(w, http.StatusCreated, toCommentJSON(comment))
}
