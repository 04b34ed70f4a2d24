package posts

import "time"

// Post is a blog entry. CategoryName is the resolved display name of the
// referenced category; it is populated on reads and ignored on writes.
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

// Page is one window of the post collection plus pagination metadata.
// Pages is ceil(Total/limit) for the limit the window was requested with.
type Page struct {
	Posts []*Post
	Total int64
	Page  int
	Pages int
}
