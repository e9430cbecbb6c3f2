package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/zizouhuweidi/trivia/internal/service"
)

// NewRouter builds the echo instance serving the trivia API
func NewRouter(trivia *service.TriviaService, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = NewRequestValidator()

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	Register(e, trivia)
	return e
}

// Register registers the trivia routes
func Register(e *echo.Echo, trivia *service.TriviaService) {
	categoryHandler := NewCategoryHandler(trivia)
	questionHandler := NewQuestionHandler(trivia)
	quizHandler := NewQuizHandler(trivia)

	// Category routes
	e.GET("/categories", categoryHandler.List)
	e.GET("/categories/:id/questions", categoryHandler.Questions)

	// Question routes
	e.GET("/questions", questionHandler.List)
	e.POST("/questions", questionHandler.Create)
	e.POST("/questions/search", questionHandler.Search)
	e.DELETE("/questions/:id", questionHandler.Delete)

	// Quiz routes
	e.POST("/quizzes", quizHandler.Play)

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
		})
	})
}

func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.LogAttrs(c.Request().Context(), slog.LevelInfo, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	})
}
