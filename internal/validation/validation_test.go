package validation

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/portfolio/internal/errs"
)

type entry struct {
	Title     *string    `json:"title" validate:"required"`
	StartDate *time.Time `json:"startDate" validate:"required"`
	Note      string     `json:"-" validate:"required"`
}

func TestExtractValidationErrorUsesJSONNames(t *testing.T) {
	empty := ""
	err := Struct(entry{Title: &empty})
	require.Error(t, err)

	msg, fieldErrors := extractValidationError(err)
	require.Equal(t, "Validation failed", msg)
	require.Equal(t, []errs.FieldError{
		{Field: "startDate", Error: "is required"},
		{Field: "Note", Error: "is required"},
	}, fieldErrors)
}

func TestExtractCustomValidationErrors(t *testing.T) {
	_, fieldErrors := extractValidationError(CustomValidationErrors{{Field: "id", Message: "mismatch"}})
	require.Equal(t, []errs.FieldError{{Field: "id", Error: "mismatch"}}, fieldErrors)
}

func TestExtractUnknownError(t *testing.T) {
	_, fieldErrors := extractValidationError(errors.New("boom"))
	require.Equal(t, []errs.FieldError{{Field: "request", Error: "boom"}}, fieldErrors)
}

func TestBindErrorMessage(t *testing.T) {
	require.Equal(t, "bad json", bindErrorMessage(echo.NewHTTPError(http.StatusBadRequest, "bad json")))
	require.Equal(t, "Invalid request payload", bindErrorMessage(errors.New("eof")))
}
