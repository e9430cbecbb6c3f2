package domain

import (
	"context"
	"errors"
)

// AllCategories is the quiz category id meaning "any category".
const AllCategories = 0

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// Category groups questions under a label such as "Sports".
// Categories are seeded outside the API and never modified by it.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// CategoryRepository defines the read-only category operations
type CategoryRepository interface {
	// List retrieves all categories ordered by id
	List(ctx context.Context) ([]*Category, error)

	// GetByID retrieves a category by its ID
	GetByID(ctx context.Context, id int) (*Category, error)
}
