package comments

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, comment *Comment) (*Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*Comment, error)
}
