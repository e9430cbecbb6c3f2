package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/service"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	trivia *service.TriviaService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(trivia *service.TriviaService) *QuestionHandler {
	return &QuestionHandler{
		trivia: trivia,
	}
}

// CreateQuestionRequest represents the request to create a new question.
// Every key must be present; values are not otherwise checked.
type CreateQuestionRequest struct {
	Question   *string  `json:"question" validate:"required"`
	Answer     *string  `json:"answer" validate:"required"`
	Category   *FlexInt `json:"category" validate:"required"`
	Difficulty *FlexInt `json:"difficulty" validate:"required"`
}

// SearchRequest represents a question search
type SearchRequest struct {
	SearchTerm *string `json:"searchTerm"`
}

type listQuestionsResponse struct {
	Success        bool               `json:"success"`
	Questions      []*domain.Question `json:"questions"`
	TotalQuestions int                `json:"total_questions"`
	Categories     map[int]string     `json:"categories"`
}

type deleteQuestionResponse struct {
	Success         bool `json:"success"`
	QuestionDeleted int  `json:"question_deleted"`
	TotalQuestions  int  `json:"total_questions"`
}

type createQuestionResponse struct {
	Success        bool               `json:"success"`
	Created        int                `json:"created"`
	NewQuestion    string             `json:"new_question"`
	Questions      []*domain.Question `json:"questions"`
	TotalQuestions int                `json:"total_questions"`
}

type searchQuestionsResponse struct {
	Success       bool               `json:"success"`
	Questions     []*domain.Question `json:"questions"`
	TotalQuestion int                `json:"total_question"`
}

// List godoc
// @Summary List questions
// @Description Get a page of all questions ordered by category, with every category
// @Tags questions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Success 200 {object} listQuestionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) List(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}

	list, err := h.trivia.ListQuestions(c.Request().Context(), page)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, listQuestionsResponse{
		Success:        true,
		Questions:      list.Questions,
		TotalQuestions: list.Total,
		Categories:     list.Categories,
	})
}

// Delete godoc
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} deleteQuestionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /questions/{id} [delete]
func (h *QuestionHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	total, err := h.trivia.DeleteQuestion(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, deleteQuestionResponse{
		Success:         true,
		QuestionDeleted: id,
		TotalQuestions:  total,
	})
}

// Create godoc
// @Summary Create a question
// @Description Store a question and return the requested page of all questions ordered by id
// @Tags questions
// @Accept json
// @Produce json
// @Param question body CreateQuestionRequest true "Question data"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} createQuestionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) Create(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}

	var req CreateQuestionRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	question := &domain.Question{
		Question:   *req.Question,
		Answer:     *req.Answer,
		Category:   int(*req.Category),
		Difficulty: int(*req.Difficulty),
	}

	created, err := h.trivia.CreateQuestion(c.Request().Context(), question, page)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, createQuestionResponse{
		Success:        true,
		Created:        created.Question.ID,
		NewQuestion:    created.Question.Question,
		Questions:      created.Questions,
		TotalQuestions: created.Total,
	})
}

// Search godoc
// @Summary Search questions
// @Description Case-insensitive substring search over question text; an empty term matches all
// @Tags questions
// @Accept json
// @Produce json
// @Param search body SearchRequest true "Search term"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} searchQuestionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /questions/search [post]
func (h *QuestionHandler) Search(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}

	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	result, err := h.trivia.SearchQuestions(c.Request().Context(), req.SearchTerm, page)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, searchQuestionsResponse{
		Success:       true,
		Questions:     result.Questions,
		TotalQuestion: result.Total,
	})
}
