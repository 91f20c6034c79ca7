package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/sheetsync/internal/config"
	pkgerrors "github.com/agentstation/sheetsync/pkg/errors"
	"github.com/agentstation/sheetsync/pkg/source"
)

var (
	refA = source.Ref{SpreadsheetID: "1abc", SheetName: "Requests"}
	refB = source.Ref{SpreadsheetID: "2def", SheetName: "Intake"}
)

func TestSourcesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")

	require.NoError(t, config.SaveSources(path, []source.Ref{refA, refB}))

	refs, err := config.LoadSources(path)
	require.NoError(t, err)
	assert.Equal(t, []source.Ref{refA, refB}, refs)
}

func TestLoadSourcesMissingFile(t *testing.T) {
	refs, err := config.LoadSources(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestLoadSourcesRejectsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources:\n  - spreadsheet_id: \"1abc\"\n    sheet_name: \"\"\n"), 0o644))

	_, err := config.LoadSources(path)
	var cfgErr *pkgerrors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestAddSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")

	require.NoError(t, config.AddSource(path, refA))
	require.NoError(t, config.AddSource(path, refB))

	refs, err := config.LoadSources(path)
	require.NoError(t, err)
	assert.Equal(t, []source.Ref{refA, refB}, refs)

	t.Run("duplicates rejected", func(t *testing.T) {
		err := config.AddSource(path, refA)
		var cfgErr *pkgerrors.ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	})
}

func TestRemoveSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, config.SaveSources(path, []source.Ref{refA, refB}))

	require.NoError(t, config.RemoveSource(path, refA))

	refs, err := config.LoadSources(path)
	require.NoError(t, err)
	assert.Equal(t, []source.Ref{refB}, refs)

	t.Run("unknown ref is not found", func(t *testing.T) {
		err := config.RemoveSource(path, refA)
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}
