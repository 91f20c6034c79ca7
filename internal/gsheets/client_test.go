package gsheets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"

	pkgerrors "github.com/agentstation/sheetsync/pkg/errors"
)

func TestConvertError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"403 becomes access denied", &googleapi.Error{Code: 403, Message: "forbidden"}, pkgerrors.ErrAccessDenied},
		{"404 becomes not found", &googleapi.Error{Code: 404, Message: "missing"}, pkgerrors.ErrNotFound},
		{"429 becomes transient", &googleapi.Error{Code: 429, Message: "rate limited"}, pkgerrors.ErrTransient},
		{"500 becomes transient", &googleapi.Error{Code: 500, Message: "internal"}, pkgerrors.ErrTransient},
		{"plain network error becomes transient", fmt.Errorf("connection reset"), pkgerrors.ErrTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			converted := convertError("1abc", "get values", tt.err)
			assert.ErrorIs(t, converted, tt.sentinel)
		})
	}

	t.Run("wrapped googleapi error is still mapped", func(t *testing.T) {
		wrapped := fmt.Errorf("fetching: %w", &googleapi.Error{Code: 403})
		assert.True(t, pkgerrors.IsAccessDenied(convertError("1abc", "get values", wrapped)))
	})

	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, convertError("1abc", "get values", nil))
	})
}

func TestStringCells(t *testing.T) {
	t.Run("pads short rows", func(t *testing.T) {
		cells := stringCells([]interface{}{"New Request"}, 3)
		assert.Equal(t, []string{"New Request", "", ""}, cells)
	})

	t.Run("truncates long rows", func(t *testing.T) {
		cells := stringCells([]interface{}{"a", "b", "c"}, 2)
		assert.Equal(t, []string{"a", "b"}, cells)
	})

	t.Run("nil cells become empty strings", func(t *testing.T) {
		cells := stringCells([]interface{}{nil, "x"}, 2)
		assert.Equal(t, []string{"", "x"}, cells)
	})

	t.Run("non-string cells are formatted", func(t *testing.T) {
		cells := stringCells([]interface{}{42, true}, 2)
		assert.Equal(t, []string{"42", "true"}, cells)
	})
}
