package db

import (
	"context"
	"database/sql"

	"inkwell/internal/server/categories"
	"inkwell/internal/server/comments"
	"inkwell/internal/server/posts"
	"inkwell/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Categories() categories.Repository
	Posts() posts.Repository
	Comments() comments.Repository
}
