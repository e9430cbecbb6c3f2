package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/service"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	trivia *service.TriviaService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(trivia *service.TriviaService) *CategoryHandler {
	return &CategoryHandler{
		trivia: trivia,
	}
}

type listCategoriesResponse struct {
	Success    bool           `json:"success"`
	Categories map[int]string `json:"categories"`
}

type categoryQuestionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []*domain.Question `json:"questions"`
	TotalQuestion   int                `json:"total_question"`
	CurrentCategory string             `json:"current_category"`
}

// List returns every category as an id to label mapping
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.trivia.ListCategories(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, listCategoriesResponse{
		Success:    true,
		Categories: categories,
	})
}

// Questions handles listing one page of a category's questions
func (h *CategoryHandler) Questions(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	page, err := pageParam(c)
	if err != nil {
		return err
	}

	result, err := h.trivia.QuestionsByCategory(c.Request().Context(), id, page)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, categoryQuestionsResponse{
		Success:         true,
		Questions:       result.Questions,
		TotalQuestion:   result.Total,
		CurrentCategory: result.Category.Type,
	})
}
