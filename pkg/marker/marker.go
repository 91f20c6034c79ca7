// Package marker writes the consumed-status literal back to source rows
// that a reconciliation pass accepted. It re-fetches the current rows
// rather than trusting the earlier cached fetch, pairs each pending raw
// row with at most one accepted row, and submits every scheduled write as
// a single batch.
//
// Write-back is at-most-once-attempt: a batch failure is reported to the
// caller but nothing upstream (export, tracking store) is rolled back.
package marker

import (
	"context"
	"fmt"

	"github.com/agentstation/sheetsync/pkg/filter"
	"github.com/agentstation/sheetsync/pkg/logging"
	"github.com/agentstation/sheetsync/pkg/source"
)

// matchColumn is the value column used to pair raw rows with accepted rows.
const matchColumn = 1

// Writer marks consumed rows in source sheets.
type Writer struct {
	client source.ReadUpdater
}

// New creates a Writer over the given client.
func New(client source.ReadUpdater) *Writer {
	return &Writer{client: client}
}

// MarkConsumed writes the submitted-status literal into the status column
// of every raw row that still carries the new-request marker and whose
// value column exactly matches an accepted row. Each accepted row absorbs
// at most one raw row and each raw row takes at most one write, first
// match wins. Returns the number of rows marked.
func (w *Writer) MarkConsumed(ctx context.Context, ref source.Ref, accepted []filter.Row) (int, error) {
	if len(accepted) == 0 {
		return 0, nil
	}

	log := logging.FromContext(ctx)

	table, err := w.client.Fetch(ctx, ref)
	if err != nil {
		return 0, err
	}

	consumed := make([]bool, len(accepted))
	var updates []source.CellUpdate

	for i, raw := range table.Rows {
		if len(raw) <= matchColumn || raw[0] != filter.StatusNew {
			continue
		}
		for j, row := range accepted {
			if consumed[j] || len(row.Cells) <= matchColumn {
				continue
			}
			if row.Cells[matchColumn] != raw[matchColumn] {
				continue
			}
			consumed[j] = true
			updates = append(updates, source.CellUpdate{
				Range: statusCellRange(ref.SheetName, i),
				Value: filter.StatusSubmitted,
			})
			break
		}
	}

	if len(updates) == 0 {
		log.Debug().
			Str("source", ref.Key()).
			Msg("No rows left to mark, skipping batch update")
		return 0, nil
	}

	applied, err := w.client.BatchUpdate(ctx, ref.SpreadsheetID, updates)
	if err != nil {
		return 0, err
	}

	log.Info().
		Str("source", ref.Key()).
		Int("rows_marked", applied).
		Msg("Marked consumed rows in source sheet")
	return applied, nil
}

// statusCellRange returns the A1 range of the status cell for the given
// zero-based data row index. Row 1 holds the headers, so data row i lives
// at sheet row i+2.
func statusCellRange(sheetName string, rowIndex int) string {
	return fmt.Sprintf("'%s'!A%d", sheetName, rowIndex+2)
}
