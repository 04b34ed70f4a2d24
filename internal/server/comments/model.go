package comments

import "time"

// Comment is attached to a post by an authenticated user. AuthorUsername is
// resolved on reads; AuthorID always comes from the verified caller
// identity, never from client input.
type Comment struct {
	ID             string
	Content        string
	PostID         string
	AuthorID       string
	AuthorUsername string
	CreatedAt      time.Time
}
