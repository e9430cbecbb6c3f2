package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/repository"
)

const questionColumns = `id, question, answer, category, difficulty`

// QuestionRepository implements domain.QuestionRepository on SQLite
type QuestionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *sql.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// ListOrderedByCategory retrieves all questions ordered by category
func (r *QuestionRepository) ListOrderedByCategory(ctx context.Context) ([]*domain.Question, error) {
	return r.list(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY category, id`)
}

// ListOrderedByID retrieves all questions ordered by id
func (r *QuestionRepository) ListOrderedByID(ctx context.Context) ([]*domain.Question, error) {
	return r.list(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY id`)
}

// Count returns the number of stored questions
func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return total, nil
}

// GetByID retrieves a question by its ID
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	var question domain.Question
	err := r.db.QueryRowContext(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = ?`, id).Scan(
		&question.ID,
		&question.Question,
		&question.Answer,
		&question.Category,
		&question.Difficulty,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &question, nil
}

// Create inserts question and sets its ID
func (r *QuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO questions (question, answer, category, difficulty)
		VALUES (?, ?, ?, ?)
	`,
		question.Question,
		question.Answer,
		question.Category,
		question.Difficulty,
	)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read question id: %w", err)
	}
	question.ID = int(id)
	return nil
}

// Delete deletes a question
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if affected == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

// Search retrieves questions containing term. SQLite's LIKE folds ASCII
// case only, so unlike the postgres ILIKE "é" does not match "É".
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]*domain.Question, error) {
	return r.list(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE question LIKE '%' || ? || '%' ESCAPE '\'
		ORDER BY id
	`, repository.EscapeLike(term))
}

// ListByCategory retrieves the questions of a category
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int) ([]*domain.Question, error) {
	return r.list(ctx, `SELECT `+questionColumns+` FROM questions WHERE category = ? ORDER BY id`, categoryID)
}

// ListCandidates retrieves the quiz pool, skipping already asked questions
func (r *QuestionRepository) ListCandidates(ctx context.Context, categoryID int, excludeIDs []int) ([]*domain.Question, error) {
	var (
		where []string
		args  []any
	)
	if categoryID != domain.AllCategories {
		where = append(where, "category = ?")
		args = append(args, categoryID)
	}
	if len(excludeIDs) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(excludeIDs)), ", ")
		where = append(where, "id NOT IN ("+placeholders+")")
		for _, id := range excludeIDs {
			args = append(args, id)
		}
	}

	query := `SELECT ` + questionColumns + ` FROM questions`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id`

	return r.list(ctx, query, args...)
}

func (r *QuestionRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Question, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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
