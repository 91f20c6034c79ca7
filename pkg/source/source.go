// Package source defines the contracts and data types for remote tabular
// data sources. A source is one sheet inside one spreadsheet; the package
// describes how to identify it, what a fetch returns, and the reader and
// updater interfaces the remote API client implements.
//
// Metadata and value fetches are deliberately separate operations: metadata
// is cheap while values are expensive, so callers can surface metadata-level
// change signals before paying for a full fetch.
package source

import (
	"context"
	"fmt"
)

// Ref identifies one fetchable sheet within a spreadsheet.
// It is immutable and supplied by configuration.
type Ref struct {
	SpreadsheetID string `json:"spreadsheet_id" yaml:"spreadsheet_id"`
	SheetName     string `json:"sheet_name" yaml:"sheet_name"`
}

// Key returns the tracking-store key for this ref.
func (r Ref) Key() string {
	return r.SpreadsheetID + "_" + r.SheetName
}

// String returns a human-readable representation of the ref.
func (r Ref) String() string {
	return fmt.Sprintf("%s/%s", r.SpreadsheetID, r.SheetName)
}

// Validate checks that the ref identifies a fetchable sheet.
func (r Ref) Validate() error {
	if r.SpreadsheetID == "" {
		return fmt.Errorf("spreadsheet id is required")
	}
	if r.SheetName == "" {
		return fmt.Errorf("sheet name is required")
	}
	return nil
}

// Row is one raw data row, width-normalized to the header length.
type Row []string

// Metadata describes a sheet cheaply, without fetching its values.
// ModifiedTime is opaque and compared for equality only.
type Metadata struct {
	RowCount     int    `json:"row_count"`
	ColumnCount  int    `json:"column_count"`
	ModifiedTime string `json:"modified_time"`
}

// Table is the rectangular result of fetching one sheet.
// The header row has been stripped from Rows, and every row has exactly
// len(Headers) cells.
type Table struct {
	Ref     Ref
	Headers []string
	Rows    []Row
}

// CellUpdate schedules one cell write in A1 notation.
type CellUpdate struct {
	Range string
	Value string
}

// Reader fetches metadata and values for one sheet.
type Reader interface {
	// Metadata retrieves row/column counts and the spreadsheet's modified
	// time without fetching values.
	Metadata(ctx context.Context, ref Ref) (Metadata, error)

	// Fetch retrieves the sheet's values. The first stored row is treated
	// as the header row and stripped; remaining rows are padded or
	// truncated to the header width.
	Fetch(ctx context.Context, ref Ref) (*Table, error)
}

// Updater writes cell values back to a spreadsheet.
type Updater interface {
	// BatchUpdate applies all updates as a single batch and returns the
	// number of cells written. An empty update list is a no-op and must
	// not produce a network call.
	BatchUpdate(ctx context.Context, spreadsheetID string, updates []CellUpdate) (int, error)
}

// ReadUpdater combines Reader and Updater, the full client surface the
// reconciler needs.
type ReadUpdater interface {
	Reader
	Updater
}
