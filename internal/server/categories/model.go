package categories

import "time"

// Category groups posts. Name is unique; categories are never
// cascading-deleted.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
