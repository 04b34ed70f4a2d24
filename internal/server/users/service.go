package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inkwell/internal/common"
	"inkwell/internal/server/auth"
	"inkwell/internal/server/config"
)

const minPasswordLength = 6

// Service implements registration, login and token verification over the
// user repository.
type Service struct {
	repo                  Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

func validateCredentials(username, password string) error {
	verr := &common.ValidationError{}
	if username == "" {
		verr.Add("username", "Username is required")
	}
	if len(password) < minPasswordLength {
		verr.Add("password", "Password must be at least 6 characters")
	}
	if !verr.Empty() {
		return verr
	}
	return nil
}

// Register creates the user and returns it together with a fresh bearer
// token. A taken username maps to common.ErrorAlreadyExists.
func (s *Service) Register(ctx context.Context, username, password string) (*User, string, error) {

	if err := validateCredentials(username, password); err != nil {
		return nil, "", err
	}

	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return nil, "", common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, "", common.ErrorInternal
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user, err := s.repo.Create(ctx, &User{Username: username, PasswordHash: hash})
	if err != nil {
		return nil, "", fmt.Errorf("error creating user: %v", err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login verifies the username/password pair and returns the user with a
// fresh bearer token. Unknown usernames and hash mismatches are both
// reported as common.ErrorUnauthorized.
func (s *Service) Login(ctx context.Context, username, password string) (*User, string, error) {

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// GetByID loads the user behind a verified identity.
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) generateToken(user *User) (string, error) {
	return auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
}
