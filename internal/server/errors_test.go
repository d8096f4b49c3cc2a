package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", &types.ErrValidation{Field: "size", Message: "too big"}, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("upload: %w", &types.ErrValidation{Field: "type"}), http.StatusBadRequest},
		{"bad request", &ErrBadRequest{Message: "bad form"}, http.StatusBadRequest},
		{"not found", &types.ErrNotFound{ID: "1"}, http.StatusNotFound},
		{"undecodable record", &types.ErrNotFound{ID: "1", Cause: &types.ErrStorageDecode{Key: "resume_1"}}, http.StatusNotFound},
		{"storage failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestNewErrorBody(t *testing.T) {
	assert.Equal(t,
		errorBody{Error: "Please upload a PDF file only.", Field: "type"},
		newErrorBody(&types.ErrValidation{Field: "type", Message: "Please upload a PDF file only."}))
	assert.Equal(t,
		errorBody{Error: "analysis not found: 7"},
		newErrorBody(&types.ErrNotFound{ID: "7"}))
	assert.Equal(t,
		errorBody{Error: "internal server error"},
		newErrorBody(errors.New("dial tcp: refused")))
}
