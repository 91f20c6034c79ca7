// Package export writes the merged filtered rows of a reconciliation pass
// to a CSV artifact. Every pass gets a uniquely named file, suffixed with a
// sortable timestamp, so no pass ever overwrites a prior export.
//
// Sources do not have to share a header layout. The artifact header is the
// name union of every source's headers, and each cell is placed under the
// union column matching its own source column name, so two sources that
// order or subset their columns differently still line up. Columns a
// source lacks are left empty.
package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"time"

	"github.com/agentstation/sheetsync/pkg/errors"
	"github.com/agentstation/sheetsync/pkg/filter"
)

const (
	// baseName is the artifact filename prefix.
	baseName = "combined_requests"

	// timestampLayout is sortable within a day-grained directory listing.
	timestampLayout = "2006-01-02_15-04-05"
)

// Provenance column headers appended after the source columns.
const (
	HeaderSourceSpreadsheet = "source_spreadsheet"
	HeaderSourceSheet       = "source_sheet"
)

// Table pairs one source's header row with its accepted rows. The headers
// are needed alongside the rows so cells can be remapped by column name
// into the union header.
type Table struct {
	Headers []string
	Rows    []filter.Row
}

// Writer writes merged results under a target directory.
type Writer struct {
	dir string
	now func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock overrides the writer's time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		w.now = now
	}
}

// New creates a Writer that places artifacts in dir. An empty dir means
// the current working directory.
func New(dir string, opts ...Option) *Writer {
	w := &Writer{
		dir: dir,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write persists the merged tables as a timestamped CSV and returns its
// path. The header row is the name union of every table's headers plus the
// two provenance columns. Each cell lands under the union column named by
// its own source column, so differing source header orders and subsets
// still align; columns a source lacks stay empty. Duplicate column names
// within one source share a single union column, first non-empty cell wins.
func (w *Writer) Write(tables []Table) (string, error) {
	if w.dir != "" {
		if err := os.MkdirAll(w.dir, 0o755); err != nil {
			return "", errors.WrapIO("create", w.dir, err)
		}
	}

	headerSets := make([][]string, len(tables))
	for i, table := range tables {
		headerSets[i] = table.Headers
	}
	union := UnionHeaders(headerSets...)
	index := make(map[string]int, len(union))
	for i, name := range union {
		index[name] = i
	}

	path := filepath.Join(w.dir, baseName+"_"+w.now().Format(timestampLayout)+".csv")

	f, err := os.Create(path)
	if err != nil {
		return "", errors.WrapIO("create", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	header := append(append([]string{}, union...), HeaderSourceSpreadsheet, HeaderSourceSheet)
	if err := cw.Write(header); err != nil {
		return "", errors.WrapIO("write", path, err)
	}

	width := len(union)
	for _, table := range tables {
		positions := make([]int, len(table.Headers))
		for ci, name := range table.Headers {
			positions[ci] = index[name]
		}
		for _, row := range table.Rows {
			record := make([]string, width, width+2)
			for ci, cell := range row.Cells {
				if ci >= len(positions) {
					break
				}
				if pos := positions[ci]; record[pos] == "" {
					record[pos] = cell
				}
			}
			record = append(record, row.SpreadsheetID, row.SheetName)
			if err := cw.Write(record); err != nil {
				return "", errors.WrapIO("write", path, err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", errors.WrapIO("write", path, err)
	}

	return path, nil
}

// UnionHeaders builds the export header union across tables in first-seen
// column order.
func UnionHeaders(headerSets ...[]string) []string {
	seen := make(map[string]struct{})
	var union []string
	for _, headers := range headerSets {
		for _, h := range headers {
			if _, ok := seen[h]; ok {
				continue
			}
			seen[h] = struct{}{}
			union = append(union, h)
		}
	}
	return union
}
