package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/agentstation/sheetsync/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "sheet",
			ID:       "Requests",
		}
		assert.Equal(t, "sheet Requests not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("spreadsheet", "1abc")
		assert.Equal(t, "spreadsheet 1abc not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("sheet", "Requests")
		wrapped := errors.Join(errors.New("fetch failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestAccessError(t *testing.T) {
	err := &pkgerrors.AccessError{
		SpreadsheetID: "1abc",
		Message:       "caller lacks read permission",
	}
	assert.Equal(t, "access denied to spreadsheet 1abc: caller lacks read permission", err.Error())
	assert.True(t, errors.Is(err, pkgerrors.ErrAccessDenied))
	assert.True(t, pkgerrors.IsAccessDenied(err))
	assert.False(t, pkgerrors.IsNotFound(err))
}

func TestTransientError(t *testing.T) {
	base := errors.New("connection reset")
	err := &pkgerrors.TransientError{
		Operation: "fetch values",
		Message:   "connection reset",
		Err:       base,
	}
	assert.Equal(t, "transient failure during fetch values: connection reset", err.Error())
	assert.True(t, pkgerrors.IsTransient(err))
	assert.Equal(t, base, errors.Unwrap(err))
}

func TestConfigError(t *testing.T) {
	t.Run("with component", func(t *testing.T) {
		err := pkgerrors.NewConfigError("filter", "table has fewer than 2 columns", nil)
		assert.Equal(t, "configuration error in filter: table has fewer than 2 columns", err.Error())
	})

	t.Run("without component", func(t *testing.T) {
		err := &pkgerrors.ConfigError{Message: "no sources configured"}
		assert.Equal(t, "configuration error: no sources configured", err.Error())
	})
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		sentinel   error
	}{
		{"permission denied maps to access", 403, pkgerrors.ErrAccessDenied},
		{"missing maps to not found", 404, pkgerrors.ErrNotFound},
		{"rate limit maps to transient", 429, pkgerrors.ErrTransient},
		{"server error maps to transient", 503, pkgerrors.ErrTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgerrors.NewAPIError("1abc", tt.statusCode, "boom")
			assert.True(t, errors.Is(err, tt.sentinel))
		})
	}

	t.Run("message formatting", func(t *testing.T) {
		err := pkgerrors.NewAPIError("1abc", 403, "forbidden")
		assert.Equal(t, "API error for spreadsheet 1abc (status 403): forbidden", err.Error())
	})

	t.Run("client error maps to nothing", func(t *testing.T) {
		err := pkgerrors.NewAPIError("1abc", 400, "bad range")
		assert.False(t, errors.Is(err, pkgerrors.ErrTransient))
		assert.False(t, errors.Is(err, pkgerrors.ErrNotFound))
	})
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.NewIOError("write", "/tmp/tracking.json", base)
	assert.Equal(t, "IO error during write of /tmp/tracking.json: permission denied", err.Error())
	assert.Equal(t, base, errors.Unwrap(err))
}

func TestParseError(t *testing.T) {
	err := pkgerrors.NewParseError("json", "tracking.json", "unexpected end of input", nil)
	assert.Equal(t, "parse error in json file tracking.json: unexpected end of input", err.Error())
}

func TestWrapHelpers(t *testing.T) {
	t.Run("nil passthrough", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapIO("read", "x", nil))
		assert.Nil(t, pkgerrors.WrapParse("json", "x", nil))
		assert.Nil(t, pkgerrors.WrapAPI("1abc", 500, nil))
	})

	t.Run("wrap api", func(t *testing.T) {
		err := pkgerrors.WrapAPI("1abc", 500, errors.New("internal"))
		assert.True(t, pkgerrors.IsTransient(err))
	})
}
