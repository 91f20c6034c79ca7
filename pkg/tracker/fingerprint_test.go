package tracker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/sheetsync/pkg/filter"
	"github.com/agentstation/sheetsync/pkg/tracker"
)

func rowsOf(cells ...[]string) []filter.Row {
	rows := make([]filter.Row, 0, len(cells))
	for _, c := range cells {
		rows = append(rows, filter.Row{Cells: c, SpreadsheetID: "1abc", SheetName: "Requests"})
	}
	return rows
}

func TestComputeFingerprint(t *testing.T) {
	t.Run("deterministic across calls", func(t *testing.T) {
		a := tracker.ComputeFingerprint(rowsOf([]string{"New Request", "Alice"}))
		b := tracker.ComputeFingerprint(rowsOf([]string{"New Request", "Alice"}))
		assert.Equal(t, a, b)
	})

	t.Run("independent of row identity", func(t *testing.T) {
		// Same logical content built through different slices.
		first := rowsOf([]string{"New Request", "Alice"}, []string{"New Request", "Bob"})
		second := []filter.Row{
			{Cells: append([]string{}, "New Request", "Alice"), SpreadsheetID: "other", SheetName: "other"},
			{Cells: append([]string{}, "New Request", "Bob")},
		}
		assert.Equal(t, tracker.ComputeFingerprint(first), tracker.ComputeFingerprint(second))
	})

	t.Run("order sensitive", func(t *testing.T) {
		forward := tracker.ComputeFingerprint(rowsOf([]string{"a", "b"}, []string{"c", "d"}))
		reversed := tracker.ComputeFingerprint(rowsOf([]string{"c", "d"}, []string{"a", "b"}))
		assert.NotEqual(t, forward, reversed)
	})

	t.Run("cell boundaries are unambiguous", func(t *testing.T) {
		joined := tracker.ComputeFingerprint(rowsOf([]string{"ab", "c"}))
		split := tracker.ComputeFingerprint(rowsOf([]string{"a", "bc"}))
		assert.NotEqual(t, joined, split)
	})

	t.Run("empty set has a distinct well-known value", func(t *testing.T) {
		empty := tracker.EmptyFingerprint()
		assert.False(t, empty.IsZero())
		assert.Equal(t, empty, tracker.ComputeFingerprint(nil))
		assert.Equal(t, empty, tracker.ComputeFingerprint([]filter.Row{}))
		assert.NotEqual(t, empty, tracker.ComputeFingerprint(rowsOf([]string{""})))
	})

	t.Run("zero value means absent", func(t *testing.T) {
		var fp tracker.Fingerprint
		assert.True(t, fp.IsZero())
	})
}
