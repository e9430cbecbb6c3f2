package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// memoryStore is an in-memory QuestionRepository and CategoryRepository.
type memoryStore struct {
	questions  map[int]*domain.Question
	categories []*domain.Category
	nextID     int
	failWith   error
}

func newMemoryStore(categories ...*domain.Category) *memoryStore {
	return &memoryStore{questions: map[int]*domain.Question{}, categories: categories, nextID: 1}
}

func (m *memoryStore) sorted(less func(a, b *domain.Question) bool, keep func(*domain.Question) bool) ([]*domain.Question, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []*domain.Question{}
	for _, q := range m.questions {
		if keep == nil || keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out, nil
}

func byID(a, b *domain.Question) bool { return a.ID < b.ID }

func (m *memoryStore) ListOrderedByCategory(ctx context.Context) ([]*domain.Question, error) {
	return m.sorted(func(a, b *domain.Question) bool {
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.ID < b.ID
	}, nil)
}

func (m *memoryStore) ListOrderedByID(ctx context.Context) ([]*domain.Question, error) {
	return m.sorted(byID, nil)
}

func (m *memoryStore) Count(ctx context.Context) (int, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	return len(m.questions), nil
}

func (m *memoryStore) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	q, ok := m.questions[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	return q, nil
}

func (m *memoryStore) Create(ctx context.Context, q *domain.Question) error {
	if m.failWith != nil {
		return m.failWith
	}
	q.ID = m.nextID
	m.nextID++
	m.questions[q.ID] = q
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, id int) error {
	if _, ok := m.questions[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	delete(m.questions, id)
	return nil
}

func (m *memoryStore) Search(ctx context.Context, term string) ([]*domain.Question, error) {
	term = strings.ToLower(term)
	return m.sorted(byID, func(q *domain.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), term)
	})
}

func (m *memoryStore) ListByCategory(ctx context.Context, categoryID int) ([]*domain.Question, error) {
	return m.sorted(byID, func(q *domain.Question) bool { return q.Category == categoryID })
}

func (m *memoryStore) ListCandidates(ctx context.Context, categoryID int, excludeIDs []int) ([]*domain.Question, error) {
	excluded := map[int]bool{}
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	return m.sorted(byID, func(q *domain.Question) bool {
		if excluded[q.ID] {
			return false
		}
		return categoryID == domain.AllCategories || q.Category == categoryID
	})
}

type categoryStore struct{ *memoryStore }

func (c categoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	if c.failWith != nil {
		return nil, c.failWith
	}
	return c.categories, nil
}

func (c categoryStore) GetByID(ctx context.Context, id int) (*domain.Category, error) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func newTestService(store *memoryStore) *TriviaService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTriviaService(store, categoryStore{store}, log)
}

func addQuestions(t *testing.T, store *memoryStore, category, n int) []*domain.Question {
	t.Helper()
	out := make([]*domain.Question, 0, n)
	for i := 0; i < n; i++ {
		q := &domain.Question{
			Question:   gofakeit.Question(),
			Answer:     gofakeit.Word(),
			Category:   category,
			Difficulty: gofakeit.Number(1, 5),
		}
		require.NoError(t, store.Create(context.Background(), q))
		out = append(out, q)
	}
	return out
}

func TestListCategories(t *testing.T) {
	ctx := context.Background()

	_, err := newTestService(newMemoryStore()).ListCategories(ctx)
	assert.ErrorIs(t, err, ErrNoCategories)
	assert.True(t, IsNotFound(err))

	store := newMemoryStore(&domain.Category{ID: 1, Type: "Science"}, &domain.Category{ID: 6, Type: "Sports"})
	got, err := newTestService(store).ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "Science", 6: "Sports"}, got)
}

func TestListQuestions(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(&domain.Category{ID: 1, Type: "Science"}, &domain.Category{ID: 2, Type: "Art"})
	svc := newTestService(store)

	_, err := svc.ListQuestions(ctx, 1)
	assert.ErrorIs(t, err, ErrNoQuestions)

	art := addQuestions(t, store, 2, 4)
	science := addQuestions(t, store, 1, 8)

	first, err := svc.ListQuestions(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 12, first.Total)
	assert.Len(t, first.Questions, 10)
	assert.Equal(t, map[int]string{1: "Science", 2: "Art"}, first.Categories)
	// Ordered by category: all science questions come first.
	assert.Equal(t, science[0].ID, first.Questions[0].ID)
	assert.Equal(t, art[0].ID, first.Questions[8].ID)

	second, err := svc.ListQuestions(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, second.Questions, 2)

	_, err = svc.ListQuestions(ctx, 3)
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestDeleteQuestion(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := newTestService(store)
	questions := addQuestions(t, store, 1, 3)

	total, err := svc.DeleteQuestion(ctx, questions[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	_, err = store.GetByID(ctx, questions[1].ID)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)

	_, err = svc.DeleteQuestion(ctx, 1234)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
	assert.True(t, IsNotFound(err))
	assert.Len(t, store.questions, 2)
}

func TestDeleteQuestionStoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.failWith = errors.New("connection reset")

	_, err := newTestService(store).DeleteQuestion(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestCreateQuestion(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := newTestService(store)
	addQuestions(t, store, 3, 10)

	q := &domain.Question{Question: "Who is the goat?", Answer: "Messi", Category: 6, Difficulty: 1}
	created, err := svc.CreateQuestion(ctx, q, 2)
	require.NoError(t, err)
	assert.Equal(t, 11, created.Question.ID)
	assert.Equal(t, 11, created.Total)
	require.Len(t, created.Questions, 1)
	assert.Equal(t, q, created.Questions[0])

	_, err = svc.CreateQuestion(ctx, &domain.Question{Question: "x", Answer: "y"}, 5)
	assert.ErrorIs(t, err, ErrPageNotFound)
	assert.Len(t, store.questions, 12, "question stays stored when the page is out of range")
}

func TestSearchQuestions(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := newTestService(store)

	matching := []*domain.Question{
		{Question: "What movie earned Tom Hanks his third straight Oscar nomination, in 1996?", Answer: "Apollo 13", Category: 5, Difficulty: 4},
		{Question: "Which TITLE did the band win?", Answer: "x", Category: 1, Difficulty: 1},
		{Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", Category: 4, Difficulty: 2},
	}
	for _, q := range matching {
		require.NoError(t, store.Create(ctx, q))
	}

	_, err := svc.SearchQuestions(ctx, nil, 1)
	assert.ErrorIs(t, err, ErrSearchTermMissing)

	term := "title"
	got, err := svc.SearchQuestions(ctx, &term, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Total)
	for _, q := range got.Questions {
		assert.Contains(t, strings.ToLower(q.Question), "title")
	}

	empty := ""
	got, err = svc.SearchQuestions(ctx, &empty, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Total)

	none := "notinthedatabase"
	_, err = svc.SearchQuestions(ctx, &none, 1)
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestQuestionsByCategory(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(&domain.Category{ID: 1, Type: "Science"}, &domain.Category{ID: 2, Type: "Art"})
	svc := newTestService(store)

	h2o := &domain.Question{Question: "What is H2O?", Answer: "Water", Category: 1, Difficulty: 1}
	require.NoError(t, store.Create(ctx, h2o))
	addQuestions(t, store, 2, 3)

	got, err := svc.QuestionsByCategory(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Science", got.Category.Type)
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, []*domain.Question{h2o}, got.Questions)

	_, err = svc.QuestionsByCategory(ctx, 1234, 1)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	_, err = svc.QuestionsByCategory(ctx, 1, 2)
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestPlayQuizNeverRepeats(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := newTestService(store)
	addQuestions(t, store, 1, 5)
	addQuestions(t, store, 2, 5)

	category := 1
	var previous []int
	for i := 0; i < 5; i++ {
		q, err := svc.PlayQuiz(ctx, previous, &category)
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.Equal(t, 1, q.Category)
		assert.NotContains(t, previous, q.ID)
		previous = append(previous, q.ID)
	}

	q, err := svc.PlayQuiz(ctx, previous, &category)
	require.NoError(t, err)
	assert.Nil(t, q, "exhausted quiz yields no question")
}

func TestPlayQuizAllCategories(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := newTestService(store)
	first := addQuestions(t, store, 1, 1)[0]
	second := addQuestions(t, store, 2, 1)[0]

	// Always pick the last candidate.
	svc.intn = func(n int) int { return n - 1 }

	all := domain.AllCategories
	q, err := svc.PlayQuiz(ctx, nil, &all)
	require.NoError(t, err)
	assert.Equal(t, second.ID, q.ID)

	// No category given behaves like the all-categories sentinel.
	q, err = svc.PlayQuiz(ctx, []int{second.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, q.ID)
}

func TestPlayQuizStoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.failWith = errors.New("boom")

	_, err := newTestService(store).PlayQuiz(context.Background(), nil, nil)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}
