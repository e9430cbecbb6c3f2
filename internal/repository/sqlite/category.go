package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository on SQLite
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List retrieves all categories ordered by id
func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		category := &domain.Category{}
		if err := rows.Scan(&category.ID, &category.Type); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*domain.Category, error) {
	category := &domain.Category{}
	err := r.db.QueryRowContext(ctx, `SELECT id, type FROM categories WHERE id = ?`, id).
		Scan(&category.ID, &category.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// Insert stores a category. The API never creates categories; this serves
// seeding tools and tests.
func (r *CategoryRepository) Insert(ctx context.Context, category *domain.Category) error {
	var (
		res sql.Result
		err error
	)
	if category.ID > 0 {
		res, err = r.db.ExecContext(ctx, `INSERT INTO categories (id, type) VALUES (?, ?)`, category.ID, category.Type)
	} else {
		res, err = r.db.ExecContext(ctx, `INSERT INTO categories (type) VALUES (?)`, category.Type)
	}
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read category id: %w", err)
	}
	category.ID = int(id)
	return nil
}
