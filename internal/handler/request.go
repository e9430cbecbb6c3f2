package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// FlexInt accepts a JSON number or a string holding an integer ("6" or 6).
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*n = FlexInt(v)
		return nil
	}

	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid integer %s: %w", data, err)
	}
	*n = FlexInt(v)
	return nil
}

// RequestValidator adapts go-playground/validator to echo.Validator
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a validator for echo.Context.Validate
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate reports a failed validation as 422
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity).SetInternal(err)
	}
	return nil
}

// pageParam reads the 1-based page query parameter, defaulting to 1.
func pageParam(c echo.Context) (int, error) {
	value := strings.TrimSpace(c.QueryParam("page"))
	if value == "" {
		return 1, nil
	}

	page, err := strconv.Atoi(value)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest).SetInternal(fmt.Errorf("page must be an integer: %w", err))
	}
	return page, nil
}

// idParam reads an integer path parameter. A non-integer id names no
// resource, so it is a 404.
func idParam(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound).SetInternal(fmt.Errorf("%s must be an integer: %w", name, err))
	}
	return id, nil
}

func bindError(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
}
