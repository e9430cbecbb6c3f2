package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/repository"
)

const questionColumns = `id, question, answer, category, difficulty`

// QuestionRepository implements the domain.QuestionRepository interface
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{
		pool: pool,
	}
}

// ListOrderedByCategory retrieves all questions ordered by category
func (r *QuestionRepository) ListOrderedByCategory(ctx context.Context) ([]*domain.Question, error) {
	return r.list(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		ORDER BY category, id
	`)
}

// ListOrderedByID retrieves all questions ordered by id
func (r *QuestionRepository) ListOrderedByID(ctx context.Context) ([]*domain.Question, error) {
	return r.list(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		ORDER BY id
	`)
}

// Count returns the number of stored questions
func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return total, nil
}

// GetByID retrieves a question by its ID
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	var question domain.Question
	err := r.pool.QueryRow(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE id = $1
	`, id).Scan(
		&question.ID,
		&question.Question,
		&question.Answer,
		&question.Category,
		&question.Difficulty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &question, nil
}

// Create creates a new question
func (r *QuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	query := `
		INSERT INTO questions (question, answer, category, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		question.Question,
		question.Answer,
		question.Category,
		question.Difficulty,
	).Scan(&question.ID)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

// Delete deletes a question
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM questions WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

// Search retrieves questions containing term, case-insensitively
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]*domain.Question, error) {
	return r.list(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE question ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY id
	`, repository.EscapeLike(term))
}

// ListByCategory retrieves the questions of a category
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int) ([]*domain.Question, error) {
	return r.list(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE category = $1
		ORDER BY id
	`, categoryID)
}

// ListCandidates retrieves the quiz pool, skipping already asked questions
func (r *QuestionRepository) ListCandidates(ctx context.Context, categoryID int, excludeIDs []int) ([]*domain.Question, error) {
	if excludeIDs == nil {
		excludeIDs = []int{}
	}
	if categoryID == domain.AllCategories {
		return r.list(ctx, `
			SELECT `+questionColumns+`
			FROM questions
			WHERE NOT (id = ANY($1))
			ORDER BY id
		`, excludeIDs)
	}
	return r.list(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE category = $1 AND NOT (id = ANY($2))
		ORDER BY id
	`, categoryID, excludeIDs)
}

func (r *QuestionRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Question, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []*domain.Question{}
	for rows.Next() {
		question := &domain.Question{}
		if err := rows.Scan(
			&question.ID,
			&question.Question,
			&question.Answer,
			&question.Category,
			&question.Difficulty,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return questions, nil
}
