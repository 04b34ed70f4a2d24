// Package httpapi exposes the JSON REST surface of the blog server: posts
// with paginated listing, categories, comments and token-based auth.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"inkwell/internal/logging"
	"inkwell/internal/server/categories"
	"inkwell/internal/server/comments"
	"inkwell/internal/server/posts"
	"inkwell/internal/server/uploads"
	"inkwell/internal/server/users"
)

type Server struct {
	address    string
	logger     logging.Logger
	users      *users.Service
	categories *categories.Service
	posts      *posts.Service
	comments   *comments.Service
	images     uploads.ImageStore
	uploadsDir string
	jwtSecret  []byte
}

// NewServer wires the services into an HTTP server. uploadsDir is the local
// directory served under /uploads/; empty disables static serving (the s3
// backend serves images through the bucket endpoint instead).
func NewServer(address string, l logging.Logger, us *users.Service, cs *categories.Service,
	ps *posts.Service, ms *comments.Service, images uploads.ImageStore, uploadsDir string, secretKey string) *Server {
	return &Server{
		address:    address,
		logger:     l.With("module", "httpapi"),
		users:      us,
		categories: cs,
		posts:      ps,
		comments:   ms,
		images:     images,
		uploadsDir: uploadsDir,
		jwtSecret:  []byte(secretKey),
	}
}

// Handler builds the route table.
//
// Category creation carries no auth guard while post and comment mutation
// do; that asymmetry is part of the defined surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/posts", s.handleListPosts)
	mux.HandleFunc("GET /api/posts/{id}", s.handleGetPost)
	mux.HandleFunc("POST /api/posts", s.requireAuth(s.handleCreatePost))
	mux.HandleFunc("PUT /api/posts/{id}", s.requireAuth(s.handleUpdatePost))
	mux.HandleFunc("DELETE /api/posts/{id}", s.requireAuth(s.handleDeletePost))

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)

	mux.HandleFunc("GET /api/comments/{postId}", s.handleListComments)
	mux.HandleFunc("POST /api/comments/{postId}", s.requireAuth(s.handleCreateComment))

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/auth/verify", s.requireAuth(s.handleVerify))

	if s.uploadsDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadsDir))))
	}

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
