package categories

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

func (r *PostgresRepository) Create(ctx context.Context, category *Category) (*Category, error) {

	query :=
		`INSERT INTO categories (name, description)
		 VALUES ($1, $2)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		category.Name, category.Description).Scan(&category.ID, &category.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return category, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Category, error) {
	query :=
		`SELECT id, name, description, created_at FROM categories
		 WHERE id = $1
		 `

	category := &Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return category, nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*Category, error) {
	query :=
		`SELECT id, name, description, created_at FROM categories
		 WHERE name = $1
		 `

	category := &Category{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return category, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Category, error) {
	query := `SELECT id, name, description, created_at FROM categories`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	result := make([]*Category, 0)
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		result = append(result, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}

	return result, nil
}
