package posts

import (
	"context"
	"errors"
	"fmt"

	"inkwell/internal/common"
	"inkwell/internal/server/categories"
)

const (
	DefaultPage  = 1
	DefaultLimit = 6
)

// ErrCategoryNotFound reports a post referencing a category that does not
// exist. It is a write-time check, not a foreign-key constraint.
var ErrCategoryNotFound = errors.New("category not found")

// CreateInput carries the fields of a new post. All except FeaturedImage
// are required.
type CreateInput struct {
	Title         string
	Content       string
	CategoryID    string
	Author        string
	FeaturedImage string
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Title         *string
	Content       *string
	CategoryID    *string
	Author        *string
	FeaturedImage *string
}

type Service struct {
	repo       Repository
	categories categories.Repository
}

func NewService(repo Repository, categories categories.Repository) *Service {
	return &Service{repo: repo, categories: categories}
}

// List returns one page of posts with pagination metadata. Page and limit
// values below 1 are clamped to the defaults (1 and 6). A page past the end
// yields an empty window with the metadata intact. The window order follows
// the store's default order; no sort key is applied.
func (s *Service) List(ctx context.Context, page, limit int) (*Page, error) {

	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	offset := (page - 1) * limit

	items, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	return &Page{Posts: items, Total: total, Page: page, Pages: pages}, nil
}

// Get returns one post with its category resolved.
func (s *Service) Get(ctx context.Context, id string) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the input, verifies the referenced category exists and
// persists the post. Validation reports every violated field at once.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Post, error) {

	verr := &common.ValidationError{}
	if in.Title == "" {
		verr.Add("title", "Title is required")
	}
	if in.Content == "" {
		verr.Add("content", "Content is required")
	}
	if in.CategoryID == "" {
		verr.Add("category", "Valid category ID is required")
	}
	if in.Author == "" {
		verr.Add("author", "Author is required")
	}
	if !verr.Empty() {
		return nil, verr
	}

	category, err := s.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, common.ErrorInternal
	}

	post := &Post{
		Title:         in.Title,
		Content:       in.Content,
		CategoryID:    category.ID,
		CategoryName:  category.Name,
		Author:        in.Author,
		FeaturedImage: in.FeaturedImage,
	}

	post, err = s.repo.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %v", err)
	}

	return post, nil
}

// Update applies a partial update to an existing post. Provided fields must
// pass the same validation as on create; a provided category must exist.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Post, error) {

	verr := &common.ValidationError{}
	if in.Title != nil && *in.Title == "" {
		verr.Add("title", "Title cannot be empty")
	}
	if in.Content != nil && *in.Content == "" {
		verr.Add("content", "Content cannot be empty")
	}
	if in.CategoryID != nil && *in.CategoryID == "" {
		verr.Add("category", "Valid category ID is required")
	}
	if in.Author != nil && *in.Author == "" {
		verr.Add("author", "Author cannot be empty")
	}
	if !verr.Empty() {
		return nil, verr
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.CategoryID != nil {
		category, err := s.categories.GetByID(ctx, *in.CategoryID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, common.ErrorInternal
		}
		post.CategoryID = category.ID
		post.CategoryName = category.Name
	}
	if in.Author != nil {
		post.Author = *in.Author
	}
	if in.FeaturedImage != nil {
		post.FeaturedImage = *in.FeaturedImage
	}

	post, err = s.repo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

// Delete removes the post. A missing id maps to common.ErrorNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
