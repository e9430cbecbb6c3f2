package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// TriviaService implements the question, category and quiz operations
type TriviaService struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
	log        *slog.Logger

	// intn draws the quiz question; rand.Intn outside tests.
	intn func(n int) int
}

// NewTriviaService creates a new trivia service
func NewTriviaService(questions domain.QuestionRepository, categories domain.CategoryRepository, log *slog.Logger) *TriviaService {
	return &TriviaService{
		questions:  questions,
		categories: categories,
		log:        log.With(slog.String("component", "trivia_service")),
		intn:       rand.Intn,
	}
}

// QuestionPage is one page of questions plus the size of the set it was cut from
type QuestionPage struct {
	Questions []*domain.Question
	Total     int
}

// QuestionList is a page of all questions together with every category
type QuestionList struct {
	QuestionPage
	Categories map[int]string
}

// CreatedQuestion is the result of adding a question
type CreatedQuestion struct {
	Question *domain.Question
	QuestionPage
}

// CategoryQuestions is a page of the questions in one category
type CategoryQuestions struct {
	QuestionPage
	Category *domain.Category
}

// ListCategories returns the category id to label mapping
func (s *TriviaService) ListCategories(ctx context.Context) (map[int]string, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	return categoryMap(categories), nil
}

// ListQuestions returns a page of all questions ordered by category
func (s *TriviaService) ListQuestions(ctx context.Context, page int) (*QuestionList, error) {
	questions, err := s.questions.ListOrderedByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	current, err := Paginate(questions, page)
	if err != nil {
		return nil, err
	}

	return &QuestionList{
		QuestionPage: QuestionPage{Questions: current, Total: len(questions)},
		Categories:   categoryMap(categories),
	}, nil
}

// DeleteQuestion removes a question and returns how many remain
func (s *TriviaService) DeleteQuestion(ctx context.Context, id int) (int, error) {
	if _, err := s.questions.GetByID(ctx, id); err != nil {
		return 0, fmt.Errorf("failed to find question %d: %w", id, err)
	}

	if err := s.questions.Delete(ctx, id); err != nil {
		return 0, fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	s.log.Info("question deleted", slog.Int("id", id))

	total, err := s.questions.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return total, nil
}

// CreateQuestion stores question and returns it with the requested page of
// all questions ordered by id. When that page is out of range the question
// is still stored and the error is ErrPageNotFound.
func (s *TriviaService) CreateQuestion(ctx context.Context, question *domain.Question, page int) (*CreatedQuestion, error) {
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	s.log.Info("question created", slog.Int("id", question.ID), slog.Int("category", question.Category))

	questions, err := s.questions.ListOrderedByID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	current, err := Paginate(questions, page)
	if err != nil {
		return nil, err
	}

	return &CreatedQuestion{
		Question:     question,
		QuestionPage: QuestionPage{Questions: current, Total: len(questions)},
	}, nil
}

// SearchQuestions returns a page of the questions containing term, ignoring
// case. A nil term is ErrSearchTermMissing; an empty one matches everything.
func (s *TriviaService) SearchQuestions(ctx context.Context, term *string, page int) (*QuestionPage, error) {
	if term == nil {
		return nil, ErrSearchTermMissing
	}

	matches, err := s.questions.Search(ctx, *term)
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}

	current, err := Paginate(matches, page)
	if err != nil {
		return nil, err
	}
	return &QuestionPage{Questions: current, Total: len(matches)}, nil
}

// QuestionsByCategory returns a page of one category's questions. Total is
// the size of the category, not of the whole question set.
func (s *TriviaService) QuestionsByCategory(ctx context.Context, categoryID int, page int) (*CategoryQuestions, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category %d: %w", categoryID, err)
	}

	questions, err := s.questions.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions of category %d: %w", categoryID, err)
	}

	current, err := Paginate(questions, page)
	if err != nil {
		return nil, err
	}

	return &CategoryQuestions{
		QuestionPage: QuestionPage{Questions: current, Total: len(questions)},
		Category:     category,
	}, nil
}

// PlayQuiz draws a random question that is not in previous. A nil
// categoryID behaves like domain.AllCategories. A nil question with a nil
// error means every candidate has been asked.
func (s *TriviaService) PlayQuiz(ctx context.Context, previous []int, categoryID *int) (*domain.Question, error) {
	category := domain.AllCategories
	if categoryID != nil {
		category = *categoryID
	}

	candidates, err := s.questions.ListCandidates(ctx, category, previous)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	return candidates[s.intn(len(candidates))], nil
}

func categoryMap(categories []*domain.Category) map[int]string {
	m := make(map[int]string, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}
