package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inkwell/internal/common"
	"inkwell/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, post *Post) (*Post, error) {

	query :=
		`INSERT INTO posts (title, content, category_id, author, featured_image)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Content, post.CategoryID, post.Author, post.FeaturedImage).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return post, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Post, error) {
	query :=
		`SELECT p.id, p.title, p.content, p.category_id, c.name, p.author, p.featured_image, p.created_at, p.updated_at
		 FROM posts p
		 JOIN categories c ON c.id = p.category_id
		 WHERE p.id = $1
		 `

	post := &Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Content, &post.CategoryID, &post.CategoryName,
		&post.Author, &post.FeaturedImage, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return post, nil
}

// List returns at most limit posts starting at offset, each with the
// category name resolved. No explicit ordering is applied; the window is
// whatever the store's default order yields.
func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*Post, error) {
	query :=
		`SELECT p.id, p.title, p.content, p.category_id, c.name, p.author, p.featured_image, p.created_at, p.updated_at
		 FROM posts p
		 JOIN categories c ON c.id = p.category_id
		 LIMIT $1 OFFSET $2
		 `

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	result := make([]*Post, 0, limit)
	for rows.Next() {
		post := &Post{}
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Content, &post.CategoryID, &post.CategoryName,
			&post.Author, &post.FeaturedImage, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		result = append(result, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %v", err)
	}
	return total, nil
}

func (r *PostgresRepository) Update(ctx context.Context, post *Post) (*Post, error) {

	query :=
		`UPDATE posts
		 SET title = $1, content = $2, category_id = $3, author = $4, featured_image = $5, updated_at = now()
		 WHERE id = $6
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Content, post.CategoryID, post.Author, post.FeaturedImage, post.ID).
		Scan(&post.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return post, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {

	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %v", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
