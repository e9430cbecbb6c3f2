package service

import (
	"errors"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// Common service errors
var (
	ErrPageNotFound      = errors.New("page out of range")
	ErrNoCategories      = errors.New("no categories")
	ErrNoQuestions       = errors.New("no questions")
	ErrSearchTermMissing = errors.New("search term missing")
)

// IsNotFound reports whether err means the requested entity or page does
// not exist, as opposed to the operation failing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPageNotFound) ||
		errors.Is(err, ErrNoCategories) ||
		errors.Is(err, ErrNoQuestions) ||
		errors.Is(err, ErrSearchTermMissing) ||
		errors.Is(err, domain.ErrQuestionNotFound) ||
		errors.Is(err, domain.ErrCategoryNotFound)
}
