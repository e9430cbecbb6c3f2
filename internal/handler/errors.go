package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/service"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "server error",
}

func errorMessage(code int) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return strings.ToLower(http.StatusText(code))
}

// NewHTTPErrorHandler renders every error, including echo's own routing
// errors and recovered panics, as an ErrorResponse.
func NewHTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		cause := err
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if he.Internal != nil {
				cause = he.Internal
			}
		}

		attrs := []any{
			slog.Int("status", code),
			slog.String("method", c.Request().Method),
			slog.String("uri", c.Request().RequestURI),
			slog.Any("error", cause),
		}
		switch {
		case code >= http.StatusInternalServerError:
			log.Error("request failed", attrs...)
		case code == http.StatusUnprocessableEntity:
			log.Warn("request failed", attrs...)
		default:
			log.Debug("request failed", attrs...)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, ErrorResponse{
				Success: false,
				Error:   code,
				Message: errorMessage(code),
			})
		}
		if err != nil {
			log.Error("failed to write error response", slog.Any("error", err))
		}
	}
}

// serviceError maps a service failure to its HTTP status: absent entities
// and pages are 404, anything else that stopped the operation is 422.
func serviceError(err error) error {
	if service.IsNotFound(err) {
		return echo.NewHTTPError(http.StatusNotFound).SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusUnprocessableEntity).SetInternal(err)
}
