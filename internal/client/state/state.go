// Package state holds the client's cached view of the blog as one
// explicit value, updated exclusively through pure reducer functions.
// Reducers never modify their input; they return a new value, which
// makes snapshots for optimistic rollback exact by construction.
package state

import "time"

type User struct {
	ID       string
	Username string
}

type Category struct {
	ID          string
	Name        string
	Description string
}

type Post struct {
	ID            string
	Title         string
	Content       string
	CategoryID    string
	CategoryName  string
	Author        string
	FeaturedImage string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Comment struct {
	ID             string
	PostID         string
	Content        string
	AuthorID       string
	AuthorUsername string
	CreatedAt      time.Time
}

// Blog is the whole client-side view: the currently loaded page of
// posts, the known categories and the signed-in user (nil when
// anonymous).
type Blog struct {
	Posts      []Post
	Total      int64
	Page       int
	Pages      int
	Categories []Category
	User       *User
}

// Clone returns a deep copy, safe to retain as a rollback snapshot.
func (b Blog) Clone() Blog {
	out := b
	out.Posts = append([]Post(nil), b.Posts...)
	out.Categories = append([]Category(nil), b.Categories...)
	if b.User != nil {
		u := *b.User
		out.User = &u
	}
	return out
}

// SetPosts replaces the loaded page.
func SetPosts(b Blog, posts []Post, total int64, page, pages int) Blog {
	out := b.Clone()
	out.Posts = append([]Post(nil), posts...)
	out.Total = total
	out.Page = page
	out.Pages = pages
	return out
}

// SetCategories replaces the known categories.
func SetCategories(b Blog, categories []Category) Blog {
	out := b.Clone()
	out.Categories = append([]Category(nil), categories...)
	return out
}

// AddCategory appends a newly created category.
func AddCategory(b Blog, c Category) Blog {
	out := b.Clone()
	out.Categories = append(out.Categories, c)
	return out
}

// SetUser records the signed-in user; pass nil on logout.
func SetUser(b Blog, u *User) Blog {
	out := b.Clone()
	if u == nil {
		out.User = nil
	} else {
		copied := *u
		out.User = &copied
	}
	return out
}

// UpsertPost replaces the post with the same ID in place, or prepends
// the post when it is not on the current page.
func UpsertPost(b Blog, p Post) Blog {
	out := b.Clone()
	for i := range out.Posts {
		if out.Posts[i].ID == p.ID {
			out.Posts[i] = p
			return out
		}
	}
	out.Posts = append([]Post{p}, out.Posts...)
	return out
}

// RemovePost drops the post with the given ID; removing an absent ID
// is a no-op.
func RemovePost(b Blog, id string) Blog {
	out := b.Clone()
	for i := range out.Posts {
		if out.Posts[i].ID == id {
			out.Posts = append(out.Posts[:i], out.Posts[i+1:]...)
			return out
		}
	}
	return out
}
