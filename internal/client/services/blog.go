package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"inkwell/internal/client/api"
	"inkwell/internal/client/state"
)

// defaultPageLimit is the page size requested from the server.
const defaultPageLimit = 6

type categoryRefPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type postPayload struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Content       string             `json:"content"`
	Category      categoryRefPayload `json:"category"`
	Author        string             `json:"author"`
	FeaturedImage string             `json:"featuredImage"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

func (p postPayload) toState() state.Post {
	return state.Post{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		CategoryID:    p.Category.ID,
		CategoryName:  p.Category.Name,
		Author:        p.Author,
		FeaturedImage: p.FeaturedImage,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type pagePayload struct {
	Posts []postPayload `json:"posts"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Pages int           `json:"pages"`
}

type categoryPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type commentPayload struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Post    string `json:"post"`
	Author  struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c commentPayload) toState() state.Comment {
	return state.Comment{
		ID:             c.ID,
		PostID:         c.Post,
		Content:        c.Content,
		AuthorID:       c.Author.ID,
		AuthorUsername: c.Author.Username,
		CreatedAt:      c.CreatedAt,
	}
}

// PostDraft carries the fields of a new post. ImagePath, when set,
// points to a local file uploaded as the featured image.
type PostDraft struct {
	Title      string
	Content    string
	CategoryID string
	Author     string
	ImagePath  string
}

// PostUpdate carries changed fields only; nil pointers stay untouched
// on the server.
type PostUpdate struct {
	Title      *string
	Content    *string
	CategoryID *string
	Author     *string
	ImagePath  string
}

// storeMutation is the optimistic bridge between the request core and
// the state store: Apply records a snapshot of the whole view before
// running the reducer, Revert restores it.
type storeMutation struct {
	store  *state.Store
	change func(state.Blog) state.Blog
}

func (m *storeMutation) Apply() api.Snapshot {
	prev := m.store.Get()
	m.store.Update(m.change)
	return prev
}

func (m *storeMutation) Revert(s api.Snapshot) {
	if prev, ok := s.(state.Blog); ok {
		m.store.Set(prev)
	}
}

// BlogService implements the post, category and comment operations,
// updating the shared state store as results arrive.
type BlogService struct {
	api   *api.Client
	store *state.Store
}

func NewBlogService(apiClient *api.Client, store *state.Store) *BlogService {
	return &BlogService{api: apiClient, store: store}
}

// LoadPage fetches the given page of posts and replaces the loaded
// page in the store.
func (s *BlogService) LoadPage(ctx context.Context, page int) error {
	path := fmt.Sprintf("/api/posts?page=%d&limit=%d", page, defaultPageLimit)

	var out pagePayload
	if err := s.api.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return err
	}

	posts := make([]state.Post, 0, len(out.Posts))
	for _, p := range out.Posts {
		posts = append(posts, p.toState())
	}
	s.store.Update(func(b state.Blog) state.Blog {
		return state.SetPosts(b, posts, out.Total, out.Page, out.Pages)
	})
	return nil
}

func (s *BlogService) LoadCategories(ctx context.Context) error {
	var out []categoryPayload
	if err := s.api.Do(ctx, http.MethodGet, "/api/categories", nil, nil, &out); err != nil {
		return err
	}

	categories := make([]state.Category, 0, len(out))
	for _, c := range out {
		categories = append(categories, state.Category{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	s.store.Update(func(b state.Blog) state.Blog {
		return state.SetCategories(b, categories)
	})
	return nil
}

func (s *BlogService) GetPost(ctx context.Context, id string) (state.Post, error) {
	var out postPayload
	if err := s.api.Do(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return state.Post{}, err
	}
	return out.toState(), nil
}

// CreatePost sends the draft and, on success, puts the server's post
// at the top of the loaded page. Creation is not optimistic: until the
// server answers there is no ID to show.
func (s *BlogService) CreatePost(ctx context.Context, draft PostDraft) (state.Post, error) {
	body := &api.Multipart{
		Fields: map[string]string{
			"title":    draft.Title,
			"content":  draft.Content,
			"category": draft.CategoryID,
			"author":   draft.Author,
		},
	}

	if draft.ImagePath != "" {
		f, err := os.Open(draft.ImagePath)
		if err != nil {
			return state.Post{}, err
		}
		defer f.Close()
		body.FileField = "featuredImage"
		body.FileName = filepath.Base(draft.ImagePath)
		body.File = f
	}

	var out postPayload
	if err := s.api.Do(ctx, http.MethodPost, "/api/posts", body, nil, &out); err != nil {
		return state.Post{}, err
	}

	created := out.toState()
	s.store.Update(func(b state.Blog) state.Blog {
		return state.UpsertPost(b, created)
	})
	return created, nil
}

// UpdatePost applies the changed fields to the loaded copy right away,
// then sends the request; the request core rolls the change back if
// the server rejects it. On success the server's canonical post
// replaces the optimistic one.
func (s *BlogService) UpdatePost(ctx context.Context, id string, update PostUpdate) error {
	m := &storeMutation{
		store: s.store,
		change: func(b state.Blog) state.Blog {
			for _, p := range b.Posts {
				if p.ID != id {
					continue
				}
				if update.Title != nil {
					p.Title = *update.Title
				}
				if update.Content != nil {
					p.Content = *update.Content
				}
				if update.CategoryID != nil {
					p.CategoryID = *update.CategoryID
					p.CategoryName = ""
				}
				if update.Author != nil {
					p.Author = *update.Author
				}
				return state.UpsertPost(b, p)
			}
			return b
		},
	}

	body := &api.Multipart{Fields: map[string]string{}}
	if update.Title != nil {
		body.Fields["title"] = *update.Title
	}
	if update.Content != nil {
		body.Fields["content"] = *update.Content
	}
	if update.CategoryID != nil {
		body.Fields["category"] = *update.CategoryID
	}
	if update.Author != nil {
		body.Fields["author"] = *update.Author
	}

	if update.ImagePath != "" {
		f, err := os.Open(update.ImagePath)
		if err != nil {
			return err
		}
		defer f.Close()
		body.FileField = "featuredImage"
		body.FileName = filepath.Base(update.ImagePath)
		body.File = f
	}

	var out postPayload
	if err := s.api.Do(ctx, http.MethodPut, "/api/posts/"+url.PathEscape(id), body, m, &out); err != nil {
		return err
	}

	updated := out.toState()
	s.store.Update(func(b state.Blog) state.Blog {
		return state.UpsertPost(b, updated)
	})
	return nil
}

// DeletePost removes the post from the loaded page immediately; the
// request core restores it if the server refuses.
func (s *BlogService) DeletePost(ctx context.Context, id string) error {
	m := &storeMutation{
		store: s.store,
		change: func(b state.Blog) state.Blog {
			return state.RemovePost(b, id)
		},
	}
	return s.api.Do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id), nil, m, nil)
}

func (s *BlogService) ListComments(ctx context.Context, postID string) ([]state.Comment, error) {
	var out []commentPayload
	if err := s.api.Do(ctx, http.MethodGet, "/api/comments/"+url.PathEscape(postID), nil, nil, &out); err != nil {
		return nil, err
	}

	comments := make([]state.Comment, 0, len(out))
	for _, c := range out {
		comments = append(comments, c.toState())
	}
	return comments, nil
}

func (s *BlogService) AddComment(ctx context.Context, postID, content string) (state.Comment, error) {
	body := map[string]string{"content": content}

	var out commentPayload
	if err := s.api.Do(ctx, http.MethodPost, "/api/comments/"+url.PathEscape(postID), body, nil, &out); err != nil {
		return state.Comment{}, err
	}
	return out.toState(), nil
}

func (s *BlogService) CreateCategory(ctx context.Context, name, description string) (state.Category, error) {
	body := map[string]string{"name": name, "description": description}

	var out categoryPayload
	if err := s.api.Do(ctx, http.MethodPost, "/api/categories", body, nil, &out); err != nil {
		return state.Category{}, err
	}

	created := state.Category{ID: out.ID, Name: out.Name, Description: out.Description}
	s.store.Update(func(b state.Blog) state.Blog {
		return state.AddCategory(b, created)
	})
	return created, nil
}
