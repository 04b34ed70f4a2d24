package posts

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/common"
	"inkwell/internal/server/categories"
)

// -------- test fakes --------

type fakePostsRepo struct {
	posts   []*Post
	nextID  int
	listErr error
}

func (f *fakePostsRepo) Create(_ context.Context, post *Post) (*Post, error) {
	f.nextID++
	copied := *post
	copied.ID = fmt.Sprintf("p%d", f.nextID)
	f.posts = append(f.posts, &copied)
	out := copied
	return &out, nil
}

func (f *fakePostsRepo) GetByID(_ context.Context, id string) (*Post, error) {
	for _, p := range f.posts {
		if p.ID == id {
			out := *p
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakePostsRepo) List(_ context.Context, limit, offset int) ([]*Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if offset >= len(f.posts) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.posts) {
		end = len(f.posts)
	}
	out := make([]*Post, 0, end-offset)
	for _, p := range f.posts[offset:end] {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakePostsRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.posts)), nil
}

func (f *fakePostsRepo) Update(_ context.Context, post *Post) (*Post, error) {
	for i, p := range f.posts {
		if p.ID == post.ID {
			copied := *post
			f.posts[i] = &copied
			out := copied
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakePostsRepo) Delete(_ context.Context, id string) error {
	for i, p := range f.posts {
		if p.ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeCategoriesRepo struct {
	categories.Repository
	byID map[string]*categories.Category
}

func (f *fakeCategoriesRepo) GetByID(_ context.Context, id string) (*categories.Category, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, common.ErrorNotFound
}

// -------- helpers --------

func newTestService(nPosts int) (*Service, *fakePostsRepo) {
	repo := &fakePostsRepo{}
	cats := &fakeCategoriesRepo{byID: map[string]*categories.Category{
		"c1": {ID: "c1", Name: "Tech"},
	}}
	s := NewService(repo, cats)
	for i := 0; i < nPosts; i++ {
		_, _ = s.Create(context.Background(), CreateInput{
			Title:      fmt.Sprintf("Post %d", i+1),
			Content:    "content",
			CategoryID: "c1",
			Author:     "alice",
		})
	}
	return s, repo
}

// -------- tests --------

func TestList_WindowNeverExceedsLimit(t *testing.T) {
	s, _ := newTestService(10)

	page, err := s.List(context.Background(), 1, 6)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 6)
	assert.Equal(t, int64(10), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Pages)
}

func TestList_SecondPageHoldsRemainder(t *testing.T) {
	s, _ := newTestService(10)

	page, err := s.List(context.Background(), 2, 6)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 4)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.Pages)
}

func TestList_PagesIsCeilOfTotalOverLimit(t *testing.T) {
	tests := []struct {
		total, limit, pages int
	}{
		{0, 6, 0},
		{1, 6, 1},
		{6, 6, 1},
		{7, 6, 2},
		{12, 6, 2},
		{13, 6, 3},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("total=%d limit=%d", tc.total, tc.limit), func(t *testing.T) {
			s, _ := newTestService(tc.total)
			page, err := s.List(context.Background(), 1, tc.limit)
			require.NoError(t, err)
			assert.Equal(t, tc.pages, page.Pages)
		})
	}
}

func TestList_BeyondLastPageIsEmptyWithMetadata(t *testing.T) {
	s, _ := newTestService(4)

	page, err := s.List(context.Background(), 5, 6)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.Equal(t, int64(4), page.Total)
	assert.Equal(t, 5, page.Page)
	assert.Equal(t, 1, page.Pages)
}

func TestList_ClampsPageAndLimitToDefaults(t *testing.T) {
	s, _ := newTestService(10)

	page, err := s.List(context.Background(), 0, -3)
	require.NoError(t, err)
	assert.Equal(t, DefaultPage, page.Page)
	assert.Len(t, page.Posts, DefaultLimit)
}

func TestCreate_ReportsEveryMissingField(t *testing.T) {
	s, _ := newTestService(0)

	_, err := s.Create(context.Background(), CreateInput{})

	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"title", "content", "category", "author"}, fields)
}

func TestCreate_UnknownCategoryNeverPersists(t *testing.T) {
	s, repo := newTestService(0)

	_, err := s.Create(context.Background(), CreateInput{
		Title:      "Title",
		Content:    "Content",
		CategoryID: "missing",
		Author:     "alice",
	})
	require.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Empty(t, repo.posts)
}

func TestCreate_ResolvesCategoryName(t *testing.T) {
	s, _ := newTestService(0)

	post, err := s.Create(context.Background(), CreateInput{
		Title:      "Title",
		Content:    "Content",
		CategoryID: "c1",
		Author:     "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tech", post.CategoryName)
	assert.NotEmpty(t, post.ID)
}

func TestUpdate_MergesProvidedFieldsOnly(t *testing.T) {
	s, _ := newTestService(1)

	title := "Edited"
	post, err := s.Update(context.Background(), "p1", UpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Edited", post.Title)
	assert.Equal(t, "content", post.Content)
	assert.Equal(t, "alice", post.Author)
}

func TestUpdate_EmptyProvidedFieldFails(t *testing.T) {
	s, _ := newTestService(1)

	empty := ""
	_, err := s.Update(context.Background(), "p1", UpdateInput{Title: &empty})

	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestUpdate_UnknownCategoryFails(t *testing.T) {
	s, repo := newTestService(1)

	category := "missing"
	_, err := s.Update(context.Background(), "p1", UpdateInput{CategoryID: &category})
	require.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Equal(t, "c1", repo.posts[0].CategoryID)
}

func TestUpdate_MissingPost(t *testing.T) {
	s, _ := newTestService(0)

	title := "Edited"
	_, err := s.Update(context.Background(), "absent", UpdateInput{Title: &title})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	s, repo := newTestService(2)

	require.NoError(t, s.Delete(context.Background(), "p1"))
	assert.Len(t, repo.posts, 1)

	err := s.Delete(context.Background(), "p1")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList_RepoErrorPropagates(t *testing.T) {
	repo := &fakePostsRepo{listErr: errors.New("db down")}
	s := NewService(repo, &fakeCategoriesRepo{byID: map[string]*categories.Category{}})

	_, err := s.List(context.Background(), 1, 6)
	require.Error(t, err)
}
