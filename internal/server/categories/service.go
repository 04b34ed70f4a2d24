package categories

import (
	"context"
	"errors"
	"fmt"

	"inkwell/internal/common"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the name, enforces its uniqueness and persists the
// category. A taken name maps to common.ErrorAlreadyExists.
func (s *Service) Create(ctx context.Context, name, description string) (*Category, error) {

	verr := &common.ValidationError{}
	if name == "" {
		verr.Add("name", "Category name is required")
	}
	if !verr.Empty() {
		return nil, verr
	}

	_, err := s.repo.GetByName(ctx, name)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	category, err := s.repo.Create(ctx, &Category{Name: name, Description: description})
	if err != nil {
		return nil, fmt.Errorf("error creating category: %v", err)
	}

	return category, nil
}

// List returns all categories.
func (s *Service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}

// GetByID resolves a category reference.
func (s *Service) GetByID(ctx context.Context, id string) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}
