package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/service"
)

// QuizHandler serves quiz play
type QuizHandler struct {
	trivia *service.TriviaService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(trivia *service.TriviaService) *QuizHandler {
	return &QuizHandler{trivia: trivia}
}

// PlayQuizRequest carries the questions already asked and the chosen
// category. A missing quiz_category, or id 0, means any category.
type PlayQuizRequest struct {
	PreviousQuestions []FlexInt     `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// QuizCategory is the category chosen for a quiz
type QuizCategory struct {
	ID   *FlexInt `json:"id" validate:"required"`
	Type string   `json:"type"`
}

type playQuizResponse struct {
	Success  bool             `json:"success"`
	Question *domain.Question `json:"question"`
}

// Play godoc
// @Summary Draw the next quiz question
// @Description Returns a random question not in previous_questions, or null when none is left
// @Tags quizzes
// @Accept json
// @Produce json
// @Param quiz body PlayQuizRequest true "Quiz state"
// @Success 200 {object} playQuizResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) Play(c echo.Context) error {
	var req PlayQuizRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	previous := make([]int, 0, len(req.PreviousQuestions))
	for _, id := range req.PreviousQuestions {
		previous = append(previous, int(id))
	}

	var categoryID *int
	if req.QuizCategory != nil {
		id := int(*req.QuizCategory.ID)
		categoryID = &id
	}

	question, err := h.trivia.PlayQuiz(c.Request().Context(), previous, categoryID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity).SetInternal(err)
	}

	return c.JSON(http.StatusOK, playQuizResponse{
		Success:  true,
		Question: question,
	})
}
