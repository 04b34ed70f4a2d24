package comments

import (
	"context"
	"fmt"

	"inkwell/internal/common"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create attaches a comment to a post on behalf of the verified caller.
// authorID must come from the verified identity. The post reference is not
// checked for existence here; see the schema notes.
func (s *Service) Create(ctx context.Context, postID, authorID, content string) (*Comment, error) {

	if authorID == "" {
		return nil, common.ErrorUnauthorized
	}

	verr := &common.ValidationError{}
	if content == "" {
		verr.Add("content", "Comment content is required")
	}
	if !verr.Empty() {
		return nil, verr
	}

	comment, err := s.repo.Create(ctx, &Comment{Content: content, PostID: postID, AuthorID: authorID})
	if err != nil {
		return nil, fmt.Errorf("error creating comment: %v", err)
	}

	return comment, nil
}

// ListByPost returns the post's comments with author usernames resolved.
func (s *Service) ListByPost(ctx context.Context, postID string) ([]*Comment, error) {
	return s.repo.ListByPost(ctx, postID)
}
