package httpapi

import (
	"time"

	"inkwell/internal/server/categories"
	"inkwell/internal/server/comments"
	"inkwell/internal/server/posts"
	"inkwell/internal/server/users"
)

type categoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type postJSON struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	Category      categoryRef `json:"category"`
	Author        string      `json:"author"`
	FeaturedImage string      `json:"featuredImage"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func toPostJSON(p *posts.Post) postJSON {
	return postJSON{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Category:      categoryRef{ID: p.CategoryID, Name: p.CategoryName},
		Author:        p.Author,
		FeaturedImage: p.FeaturedImage,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type pageJSON struct {
	Posts []postJSON `json:"posts"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Pages int        `json:"pages"`
}

func toPageJSON(p *posts.Page) pageJSON {
	items := make([]postJSON, 0, len(p.Posts))
	for _, post := range p.Posts {
		items = append(items, toPostJSON(post))
	}
	return pageJSON{Posts: items, Total: p.Total, Page: p.Page, Pages: p.Pages}
}

type categoryJSON struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toCategoryJSON(c *categories.Category) categoryJSON {
	return categoryJSON{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}
}

type authorRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type commentJSON struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	PostID    string    `json:"post"`
	Author    authorRef `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCommentJSON(c *comments.Comment) commentJSON {
	return commentJSON{
		ID:        c.ID,
		Content:   c.Content,
		PostID:    c.PostID,
		Author:    authorRef{ID: c.AuthorID, Username: c.AuthorUsername},
		CreatedAt: c.CreatedAt,
	}
}

type userJSON struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func toUserJSON(u *users.User) userJSON {
	return userJSON{ID: u.ID, Username: u.Username}
}

type tokenResponse struct {
	Token string   `json:"token"`
	User  userJSON `json:"user"`
}
