package comments

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/common"
)

type fakeRepo struct {
	comments []*Comment
	nextID   int
}

func (f *fakeRepo) Create(_ context.Context, comment *Comment) (*Comment, error) {
	f.nextID++
	copied := *comment
	copied.ID = fmt.Sprintf("cm%d", f.nextID)
	f.comments = append(f.comments, &copied)
	out := copied
	return &out, nil
}

func (f *fakeRepo) ListByPost(_ context.Context, postID string) ([]*Comment, error) {
	out := make([]*Comment, 0)
	for _, c := range f.comments {
		if c.PostID == postID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func TestCreate(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo)

	comment, err := s.Create(context.Background(), "p1", "u1", "nice post")
	require.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
	assert.Equal(t, "p1", comment.PostID)
	assert.Equal(t, "u1", comment.AuthorID)
}

func TestCreate_WithoutAuthorNeverPersists(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo)

	_, err := s.Create(context.Background(), "p1", "", "nice post")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Empty(t, repo.comments)
}

func TestCreate_EmptyContent(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo)

	_, err := s.Create(context.Background(), "p1", "u1", "")

	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Comment content is required", verr.Fields[0].Message)
	assert.Empty(t, repo.comments)
}

// The post reference is deliberately unchecked: a comment can target any
// id, matching the store schema which carries no foreign key on post_id.
func TestCreate_UnknownPostAccepted(t *testing.T) {
	s := NewService(&fakeRepo{})

	comment, err := s.Create(context.Background(), "no-such-post", "u1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "no-such-post", comment.PostID)
}

func TestListByPost(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo)

	_, err := s.Create(context.Background(), "p1", "u1", "first")
	require.NoError(t, err)
	_, err = s.Create(context.Background(), "p2", "u1", "other post")
	require.NoError(t, err)

	comments, err := s.ListByPost(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "first", comments[0].Content)
}
