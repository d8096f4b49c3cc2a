package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// ErrBadRequest indicates a malformed request body
type ErrBadRequest struct {
	Message string
}

func (e *ErrBadRequest) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *types.ErrValidation
		notFound   *types.ErrNotFound
		badRequest *ErrBadRequest
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &badRequest):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON shape of every error response
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// newErrorBody hides internal failures and exposes client errors verbatim
func newErrorBody(err error) errorBody {
	var validation *types.ErrValidation
	if errors.As(err, &validation) {
		return errorBody{Error: validation.Message, Field: validation.Field}
	}
	if HTTPStatus(err) == http.StatusInternalServerError {
		return errorBody{Error: "internal server error"}
	}
	return errorBody{Error: err.Error()}
}
