package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/common"
	"inkwell/internal/server/posts"
)

const maxUploadMemory = 32 << 20

// queryInt parses a positive integer query parameter; absent or malformed
// values yield 0, which the posts service clamps to the default.
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {

	page := queryInt(r, "page")
	limit := queryInt(r, "limit")

	result, err := s.posts.List(r.Context(), page, limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, toPageJSON(result))
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {

	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	post, err := s.posts.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.respondError(w, r, notFound("Post", err))
			return
		}
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, toPostJSON(post))
}

// parsePostForm accepts either a multipart form (the browser client sends
// the featured image this way) or a urlencoded one.
func (s *Server) parsePostForm(r *http.Request) error {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		return r.ParseMultipartForm(maxUploadMemory)
	}
	return r.ParseForm()
}

// saveFeaturedImage stores an attached featured image and returns its URI,
// or "" when the form has no file. The upload is fully written and closed
// before the caller attempts the database write; a failed write afterwards
// leaves the stored file orphaned.
func (s *Server) saveFeaturedImage(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.MultipartForm == nil || s.images == nil {
		return "", true
	}

	file, header, err := r.FormFile("featuredImage")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", true
		}
		s.respondMessage(w, http.StatusBadRequest, "Invalid featured image")
		return "", false
	}
	defer file.Close()

	uri, err := s.images.Save(r.Context(), header.Filename, file)
	if err != nil {
		s.respondError(w, r, err)
		return "", false
	}

	return uri, true
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {

	if err := s.parsePostForm(r); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	imageURI, ok := s.saveFeaturedImage(w, r)
	if !ok {
		return
	}

	in := posts.CreateInput{
		Title:         r.PostFormValue("title"),
		Content:       r.PostFormValue("content"),
		CategoryID:    r.PostFormValue("category"),
		Author:        r.PostFormValue("author"),
		FeaturedImage: imageURI,
	}

	post, err := s.posts.Create(r.Context(), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, toPostJSON(post))
}

// optionalField reports a form field as present-with-value or absent, so
// updates can distinguish "clear rejected" from "leave unchanged".
func optionalField(r *http.Request, name string) *string {
	if vs, ok := r.PostForm[name]; ok && len(vs) > 0 {
		v := vs[0]
		return &v
	}
	return nil
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {

	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	if err := s.parsePostForm(r); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	imageURI, ok := s.saveFeaturedImage(w, r)
	if !ok {
		return
	}

	in := posts.UpdateInput{
		Title:      optionalField(r, "title"),
		Content:    optionalField(r, "content"),
		CategoryID: optionalField(r, "category"),
		Author:     optionalField(r, "author"),
	}
	if imageURI != "" {
		in.FeaturedImage = &imageURI
	}

	post, err := s.posts.Update(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.respondError(w, r, notFound("Post", err))
			return
		}
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, toPostJSON(post))
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {

	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	if err := s.posts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.respondError(w, r, notFound("Post", err))
			return
		}
		s.respondError(w, r, err)
		return
	}

	s.respondMessage(w, http.StatusOK, "Post deleted successfully")
}
