package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey int

// loggerKey is the context key for the logger.
const loggerKey contextKey = iota

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}

	return Default()
}

// Ctx returns a logger from the context or the default logger.
// This is a shorter alias for FromContext.
func Ctx(ctx context.Context) *zerolog.Logger {
	return FromContext(ctx)
}

// WithField adds a single field to the logger in the context.
func WithField(ctx context.Context, key string, value any) context.Context {
	logger := FromContext(ctx)
	newLogger := logger.With().Interface(key, value).Logger()
	return WithLogger(ctx, &newLogger)
}

// WithSource adds the source table identity to the logger in the context.
func WithSource(ctx context.Context, sourceKey string) context.Context {
	logger := FromContext(ctx)
	newLogger := logger.With().Str("source", sourceKey).Logger()
	return WithLogger(ctx, &newLogger)
}

// WithSpreadsheet adds spreadsheet and sheet identity to the logger in the context.
func WithSpreadsheet(ctx context.Context, spreadsheetID, sheetName string) context.Context {
	logger := FromContext(ctx)
	newLogger := logger.With().
		Str("spreadsheet_id", spreadsheetID).
		Str("sheet_name", sheetName).
		Logger()
	return WithLogger(ctx, &newLogger)
}

// WithOperation adds operation context to the logger.
func WithOperation(ctx context.Context, operation string) context.Context {
	logger := FromContext(ctx)
	newLogger := logger.With().Str("operation", operation).Logger()
	return WithLogger(ctx, &newLogger)
}
