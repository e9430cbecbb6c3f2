package domain

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrQuestionNotFound = errors.New("question not found")
)

// QuestionRepository defines the interface for question-related operations
type QuestionRepository interface {
	// ListOrderedByCategory retrieves all questions ordered by category, then id
	ListOrderedByCategory(ctx context.Context) ([]*Question, error)

	// ListOrderedByID retrieves all questions ordered by id
	ListOrderedByID(ctx context.Context) ([]*Question, error)

	// Count returns the total number of stored questions
	Count(ctx context.Context) (int, error)

	// GetByID retrieves a question by its ID
	GetByID(ctx context.Context, id int) (*Question, error)

	// Create stores a new question and writes the generated ID back into it
	Create(ctx context.Context, question *Question) error

	// Delete deletes a question
	Delete(ctx context.Context, id int) error

	// Search retrieves questions whose text contains term, ignoring case.
	// An empty term matches every question.
	Search(ctx context.Context, term string) ([]*Question, error)

	// ListByCategory retrieves all questions of one category
	ListByCategory(ctx context.Context, categoryID int) ([]*Question, error)

	// ListCandidates retrieves the questions eligible for the next quiz draw.
	// categoryID AllCategories selects from every category.
	ListCandidates(ctx context.Context, categoryID int, excludeIDs []int) ([]*Question, error)
}

// Question represents a trivia question
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"` // Not checked against categories on write
	Difficulty int    `json:"difficulty"`
}
