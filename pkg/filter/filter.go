// Package filter applies the row inclusion predicate to fetched tables.
// A row survives only when its first column carries the new-request status
// marker and its second column is non-empty. Filtering is pure and
// order-preserving; it never touches metadata or the tracking store.
package filter

import (
	"fmt"

	"github.com/agentstation/sheetsync/pkg/errors"
	"github.com/agentstation/sheetsync/pkg/source"
)

// Status literals recognized in a table's first column.
const (
	// StatusNew marks a row that has not been consumed yet.
	StatusNew = "New Request"

	// StatusSubmitted is written back to rows the pipeline consumed.
	StatusSubmitted = "Submitted / In Progress"
)

// minColumns is the smallest header width the predicate can operate on:
// the status column and the value column it matches against.
const minColumns = 2

// Row is a filtered row with its provenance retained.
type Row struct {
	Cells         []string `json:"cells"`
	SpreadsheetID string   `json:"spreadsheet_id"`
	SheetName     string   `json:"sheet_name"`
}

// Apply filters a fetched table down to rows matching the inclusion
// predicate: cells[0] == StatusNew and cells[1] non-empty. Tables with
// fewer than two declared columns are a configuration error, not a skip.
func Apply(table *source.Table) ([]Row, error) {
	if table == nil {
		return nil, &errors.ValidationError{Field: "table", Message: "table is nil"}
	}

	if len(table.Headers) < minColumns {
		return nil, errors.NewConfigError(
			"filter",
			fmt.Sprintf("sheet %s has %d column(s), need at least %d", table.Ref, len(table.Headers), minColumns),
			nil,
		)
	}

	rows := make([]Row, 0, len(table.Rows))
	for _, raw := range table.Rows {
		if !matches(raw) {
			continue
		}
		cells := make([]string, len(raw))
		copy(cells, raw)
		rows = append(rows, Row{
			Cells:         cells,
			SpreadsheetID: table.Ref.SpreadsheetID,
			SheetName:     table.Ref.SheetName,
		})
	}

	return rows, nil
}

// matches reports whether a width-normalized raw row satisfies the predicate.
func matches(raw source.Row) bool {
	if len(raw) < minColumns {
		return false
	}
	return raw[0] == StatusNew && raw[1] != ""
}
