// Package services contains application services for the blog client:
// authentication and session handling, and the blog operations that
// keep the local state in sync with the server.
package services

import (
	"context"
	"net/http"

	"inkwell/internal/client/api"
	"inkwell/internal/client/repositories/tokens"
	"inkwell/internal/client/state"
)

// tokenKey is the fixed name the bearer token is stored under.
const tokenKey = "token"

type userPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type tokenPayload struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

// AuthService handles registration, login and session restore. A
// successful register or login holds the token in the API client for
// subsequent requests and persists it so the session survives
// restarts.
type AuthService struct {
	api    *api.Client
	tokens tokens.Repository
	store  *state.Store
}

func NewAuthService(apiClient *api.Client, tokenRepo tokens.Repository, store *state.Store) *AuthService {
	return &AuthService{api: apiClient, tokens: tokenRepo, store: store}
}

func (a *AuthService) Register(ctx context.Context, username, password string) error {
	return a.authenticate(ctx, "/api/auth/register", username, password)
}

func (a *AuthService) Login(ctx context.Context, username, password string) error {
	return a.authenticate(ctx, "/api/auth/login", username, password)
}

func (a *AuthService) authenticate(ctx context.Context, path, username, password string) error {
	body := map[string]string{"username": username, "password": password}

	var out tokenPayload
	if err := a.api.Do(ctx, http.MethodPost, path, body, nil, &out); err != nil {
		return err
	}

	a.api.SetToken(out.Token)
	if err := a.tokens.Set(ctx, tokenKey, out.Token); err != nil {
		return err
	}

	a.store.Update(func(b state.Blog) state.Blog {
		return state.SetUser(b, &state.User{ID: out.User.ID, Username: out.User.Username})
	})
	return nil
}

// Restore loads a previously persisted token and verifies it against
// the server. A missing token is not an error; a rejected token is
// dropped silently so the client starts anonymous.
func (a *AuthService) Restore(ctx context.Context) error {
	token, err := a.tokens.Get(ctx, tokenKey)
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	a.api.SetToken(token)

	var out struct {
		User userPayload `json:"user"`
	}
	if err := a.api.Do(ctx, http.MethodGet, "/api/auth/verify", nil, nil, &out); err != nil {
		a.api.ClearToken()
		return a.tokens.Delete(ctx, tokenKey)
	}

	a.store.Update(func(b state.Blog) state.Blog {
		return state.SetUser(b, &state.User{ID: out.User.ID, Username: out.User.Username})
	})
	return nil
}

// Logout drops the persisted token and the in-memory session.
func (a *AuthService) Logout(ctx context.Context) error {
	a.api.ClearToken()
	a.store.Update(func(b state.Blog) state.Blog {
		return state.SetUser(b, nil)
	})
	return a.tokens.Delete(ctx, tokenKey)
}
