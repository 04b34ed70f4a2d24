package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/common"
	"inkwell/internal/logging"
	"inkwell/internal/server/categories"
	"inkwell/internal/server/comments"
	"inkwell/internal/server/config"
	"inkwell/internal/server/posts"
	"inkwell/internal/server/users"
)

// -------- test fakes --------

type fakeUsersRepo struct {
	users []*users.User
}

func (f *fakeUsersRepo) Create(_ context.Context, u *users.User) (*users.User, error) {
	copied := *u
	copied.ID = uuid.NewString()
	f.users = append(f.users, &copied)
	out := copied
	return &out, nil
}

func (f *fakeUsersRepo) GetByUsername(_ context.Context, username string) (*users.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*users.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeCategoriesRepo struct {
	categories []*categories.Category
}

func (f *fakeCategoriesRepo) Create(_ context.Context, c *categories.Category) (*categories.Category, error) {
	copied := *c
	copied.ID = uuid.NewString()
	copied.CreatedAt = time.Now()
	f.categories = append(f.categories, &copied)
	out := copied
	return &out, nil
}

func (f *fakeCategoriesRepo) GetByID(_ context.Context, id string) (*categories.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			out := *c
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCategoriesRepo) GetByName(_ context.Context, name string) (*categories.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			out := *c
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCategoriesRepo) List(_ context.Context) ([]*categories.Category, error) {
	out := make([]*categories.Category, 0, len(f.categories))
	for _, c := range f.categories {
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}

type fakePostsRepo struct {
	posts []*posts.Post
}

func (f *fakePostsRepo) Create(_ context.Context, p *posts.Post) (*posts.Post, error) {
	copied := *p
	copied.ID = uuid.NewString()
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	f.posts = append(f.posts, &copied)
	out := copied
	return &out, nil
}

func (f *fakePostsRepo) GetByID(_ context.Context, id string) (*posts.Post, error) {
	for _, p := range f.posts {
		if p.ID == id {
			out := *p
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakePostsRepo) List(_ context.Context, limit, offset int) ([]*posts.Post, error) {
	if offset >= len(f.posts) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.posts) {
		end = len(f.posts)
	}
	out := make([]*posts.Post, 0, end-offset)
	for _, p := range f.posts[offset:end] {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakePostsRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.posts)), nil
}

func (f *fakePostsRepo) Update(_ context.Context, p *posts.Post) (*posts.Post, error) {
	for i, existing := range f.posts {
		if existing.ID == p.ID {
			copied := *p
			copied.UpdatedAt = time.Now()
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

type fakeCommentsRepo struct {
	comments []*comments.Comment
	usersRef *fakeUsersRepo
}

func (f *fakeCommentsRepo) Create(_ context.Context, c *comments.Comment) (*comments.Comment, error) {
	copied := *c
	copied.ID = uuid.NewString()
	copied.CreatedAt = time.Now()
	f.comments = append(f.comments, &copied)
	out := copied
	return &out, nil
}

func (f *fakeCommentsRepo) ListByPost(ctx context.Context, postID string) ([]*comments.Comment, error) {
	out := make([]*comments.Comment, 0)
	for _, c := range f.comments {
		if c.PostID != postID {
			continue
		}
		copied := *c
		if u, err := f.usersRef.GetByID(ctx, c.AuthorID); err == nil {
			copied.AuthorUsername = u.Username
		}
		out = append(out, &copied)
	}
	return out, nil
}

type fakeImageStore struct {
	saved []string
}

func (f *fakeImageStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	f.saved = append(f.saved, filename)
	return "/uploads/stored-" + filename, nil
}

// -------- helpers --------

type testEnv struct {
	srv        *httptest.Server
	users      *fakeUsersRepo
	categories *fakeCategoriesRepo
	posts      *fakePostsRepo
	comments   *fakeCommentsRepo
	images     *fakeImageStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	usersRepo := &fakeUsersRepo{}
	categoriesRepo := &fakeCategoriesRepo{}
	postsRepo := &fakePostsRepo{}
	commentsRepo := &fakeCommentsRepo{usersRef: usersRepo}
	images := &fakeImageStore{}

	cfg := &config.Config{SecretKey: "test-secret", TokenValidityDuration: time.Hour}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	server := NewServer(":0", logger,
		users.NewService(usersRepo, cfg),
		categories.NewService(categoriesRepo),
		posts.NewService(postsRepo, categoriesRepo),
		comments.NewService(commentsRepo),
		images, "", cfg.SecretKey)

	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)

	return &testEnv{
		srv:        srv,
		users:      usersRepo,
		categories: categoriesRepo,
		posts:      postsRepo,
		comments:   commentsRepo,
		images:     images,
	}
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, data
}

func (e *testEnv) doForm(t *testing.T, method, path, token string, fields url.Values) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, e.srv.URL+path, strings.NewReader(fields.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, data
}

func (e *testEnv) register(t *testing.T, username string) string {
	t.Helper()
	resp, data := e.doJSON(t, http.MethodPost, "/api/auth/register", "",
		map[string]string{"username": username, "password": "secret1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	var out tokenResponse
	require.NoError(t, json.Unmarshal(data, &out))
	return out.Token
}

func (e *testEnv) addCategory(t *testing.T, name string) string {
	t.Helper()
	resp, data := e.doJSON(t, http.MethodPost, "/api/categories", "",
		map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	var out categoryJSON
	require.NoError(t, json.Unmarshal(data, &out))
	return out.ID
}

func (e *testEnv) addPost(t *testing.T, token, categoryID, title string) string {
	t.Helper()
	resp, data := e.doForm(t, http.MethodPost, "/api/posts", token, url.Values{
		"title":    {title},
		"content":  {"content of " + title},
		"category": {categoryID},
		"author":   {"alice"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	var out postJSON
	require.NoError(t, json.Unmarshal(data, &out))
	return out.ID
}

func message(t *testing.T, data []byte) string {
	t.Helper()
	var out messageResponse
	require.NoError(t, json.Unmarshal(data, &out))
	return out.Message
}

// -------- tests --------

func TestCategoryLifecycle(t *testing.T) {
	e := newTestEnv(t)

	resp, data := e.doJSON(t, http.MethodPost, "/api/categories", "",
		map[string]string{"name": "Tech", "description": "tech posts"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created categoryJSON
	require.NoError(t, json.Unmarshal(data, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Tech", created.Name)

	resp, data = e.doJSON(t, http.MethodPost, "/api/categories", "",
		map[string]string{"name": "Tech"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Category already exists", message(t, data))

	resp, data = e.doJSON(t, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []categoryJSON
	require.NoError(t, json.Unmarshal(data, &list))
	assert.Len(t, list, 1)
}

func TestListPosts_Pagination(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "alice")
	categoryID := e.addCategory(t, "Tech")

	for i := 0; i < 10; i++ {
		e.addPost(t, token, categoryID, fmt.Sprintf("Post %d", i+1))
	}

	resp, data := e.doJSON(t, http.MethodGet, "/api/posts?page=2&limit=6", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page pageJSON
	require.NoError(t, json.Unmarshal(data, &page))
	assert.Len(t, page.Posts, 4)
	assert.Equal(t, int64(10), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.Pages)
}

func TestListPosts_DefaultsWhenParamsAbsentOrMalformed(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "alice")
	categoryID := e.addCategory(t, "Tech")

	for i := 0; i < 8; i++ {
		e.addPost(t, token, categoryID, fmt.Sprintf("Post %d", i+1))
	}

	resp, data := e.doJSON(t, http.MethodGet, "/api/posts?page=abc&limit=-1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page pageJSON
	require.NoError(t, json.Unmarshal(data, &page))
	assert.Len(t, page.Posts, 6)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Pages)
}

func TestAuthFlow(t *testing.T) {
	e := newTestEnv(t)

	token := e.register(t, "alice")
	require.NotEmpty(t, token)

	// duplicate username
	resp, data := e.doJSON(t, http.MethodPost, "/api/auth/register", "",
		map[string]string{"username": "alice", "password": "secret2"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username already exists", message(t, data))

	// wrong password
	resp, data = e.doJSON(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "alice", "password": "wrong-pass"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", message(t, data))

	// correct credentials
	resp, data = e.doJSON(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login tokenResponse
	require.NoError(t, json.Unmarshal(data, &login))
	assert.Equal(t, "alice", login.User.Username)

	// verify with the fresh token
	resp, data = e.doJSON(t, http.MethodGet, "/api/auth/verify", login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var verify verifyResponse
	require.NoError(t, json.Unmarshal(data, &verify))
	assert.Equal(t, "alice", verify.User.Username)
}

func TestRegister_ShortPassword(t *testing.T) {
	e := newTestEnv(t)

	resp, data := e.doJSON(t, http.MethodPost, "/api/auth/register", "",
		map[string]string{"username": "bob", "password": "short"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out fieldErrorsResponse
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "Password must be at least 6 characters", out.Errors[0].Message)
}

func TestVerify_BadToken(t *testing.T) {
	e := newTestEnv(t)

	resp, data := e.doJSON(t, http.MethodGet, "/api/auth/verify", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", message(t, data))
}

func TestCreatePost_RequiresAuth(t *testing.T) {
	e := newTestEnv(t)
	categoryID := e.addCategory(t, "Tech")

	resp, data := e.doForm(t, http.MethodPost, "/api/posts", "", url.Values{
		"title": {"T"}, "content": {"C"}, "category": {categoryID}, "author": {"alice"},
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", message(t, data))
	assert.Empty(t, e.posts.posts)
}

func TestCreatePost_ValidationListsEveryField(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "alice")

	resp, data := e.doForm(t, http.MethodPost, "/api/posts", token, url.Values{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out fieldErrorsResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Len(t, out.Errors, 4)
}

func TestCreatePost_UnknownCategory(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "alice")

	resp, data := e.doForm(t, http.MethodPost, "/api/posts", token, url.Values{
		"title": {"T"}, "content": {"C"}, "category": {uuid.NewString()}, "author": {"alice"},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Category not found", message(t, data))
	assert.Empty(t, e.posts.posts)
}

func TestCreatePost_WithFeaturedImage(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "alice")
	categoryID := e.addCategory(t, "Tech")

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	require.NoError(t, mw.WriteField("title", "Illustrated"))
	require.NoError(t, mw.WriteField("content", "with image"))
	require.NoError(t, mw.WriteField("category", categoryID))
	require.NoError(t, mw.WriteField("author", "alice"))
	part, err := mw.CreateFormFile("featuredImage", "cover.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, e.srv.URL+"/api/posts", buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	var out postJSON
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "/uploads/stored-cover.png", out.FeaturedImage)
	assert.Equal(t, []string{"cover.png"}, e.images.saved)
}

func TestGetPost(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "alice")
	categoryID := e.addCategory(t, "Tech")
	postID := e.addPost(t, token, categoryID, "Readable")

	resp, data := e.doJSON(t, http.MethodGet, "/api/posts/"+postID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out postJSON
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "Readable", out.Title)
	assert.Equal(t, "Tech", out.Category.Name)
}

func TestGetPost_InvalidID(t *testing.T) {
	e := newTestEnv(t)

	resp, data := e.doJSON(t, http.MethodGet, "/api/posts/not-a-uuid", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid post ID", message(t, data))
}

func TestGetPost_Missing(t *testing.T) {
	e := newTestEnv(t)

	resp, data := e.doJSON(t, http.MethodGet, "/api/posts/"+uuid.NewString(), "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Post not found", message(t, data))
}

func TestUpdatePost_PartialFields(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "alice")
	categoryID := e.addCategory(t, "Tech")
	postID := e.addPost(t, token, categoryID, "Original")

	resp, data := e.doForm(t, http.MethodPut, "/api/posts/"+postID, token, url.Values{
		"title": {"Edited"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var out postJSON
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "Edited", out.Title)
	assert.Equal(t, "content of Original", out.Content)
	assert.Equal(t, "alice", out.Author)
}

func TestDeletePost(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "alice")
	categoryID := e.addCategory(t, "Tech")
	postID := e.addPost(t, token, categoryID, "Doomed")

	resp, data := e.doJSON(t, http.MethodDelete, "/api/posts/"+postID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Post deleted successfully", message(t, data))

	resp, _ = e.doJSON(t, http.MethodGet, "/api/posts/"+postID, "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, data = e.doJSON(t, http.MethodDelete, "/api/posts/"+postID, token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Post not found", message(t, data))
}

func TestComments(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "alice")
	categoryID := e.addCategory(t, "Tech")
	postID := e.addPost(t, token, categoryID, "Discussed")

	// anonymous comment is rejected and never persisted
	resp, data := e.doJSON(t, http.MethodPost, "/api/comments/"+postID, "",
		map[string]string{"content": "anonymous hot take"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", message(t, data))
	assert.Empty(t, e.comments.comments)

	// authenticated comment
	resp, data = e.doJSON(t, http.MethodPost, "/api/comments/"+postID, token,
		map[string]string{"content": "great read"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created commentJSON
	require.NoError(t, json.Unmarshal(data, &created))
	assert.Equal(t, "great read", created.Content)
	assert.Equal(t, postID, created.PostID)
	assert.Equal(t, "alice", created.Author.Username)

	// listing is public
	resp, data = e.doJSON(t, http.MethodGet, "/api/comments/"+postID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []commentJSON
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "alice", list[0].Author.Username)
}

func TestComments_EmptyContent(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "alice")

	resp, data := e.doJSON(t, http.MethodPost, "/api/comments/"+uuid.NewString(), token,
		map[string]string{"content": ""})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out fieldErrorsResponse
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "Comment content is required", out.Errors[0].Message)
}
