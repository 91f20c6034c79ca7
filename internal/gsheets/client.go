// Package gsheets implements the source.Reader and source.Updater contracts
// over the Google Sheets API. All remote failures are converted into the
// typed errors of pkg/errors; raw googleapi errors never escape.
package gsheets

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/agentstation/sheetsync/pkg/errors"
	"github.com/agentstation/sheetsync/pkg/logging"
	"github.com/agentstation/sheetsync/pkg/source"
)

// valueInputOption writes cell values as-is, without spreadsheet parsing.
const valueInputOption = "RAW"

// Client talks to the Google Sheets API for one configured credential.
type Client struct {
	sheets *sheets.Service
	drive  *drive.Service
}

// Config holds client construction settings.
type Config struct {
	// CredentialsFile is a service account key file. When empty, Google
	// application default credentials are used.
	CredentialsFile string
}

// New creates a Client. The Drive service is best effort: it only serves
// the advisory modified-time signal, so a failure to build it degrades
// that signal to empty rather than failing construction.
func New(ctx context.Context, cfg Config) (*Client, error) {
	opts := []option.ClientOption{
		option.WithScopes(sheets.SpreadsheetsScope, drive.DriveMetadataReadonlyScope),
	}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	sheetsService, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, &errors.AuthenticationError{
			Method:  "service_account",
			Message: "failed to build sheets service",
			Err:     err,
		}
	}

	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Err(err).
			Msg("Drive service unavailable, modified-time signal disabled")
		driveService = nil
	}

	return &Client{
		sheets: sheetsService,
		drive:  driveService,
	}, nil
}

// Metadata retrieves row/column counts for one sheet plus the spreadsheet's
// modified time, without fetching values.
func (c *Client) Metadata(ctx context.Context, ref source.Ref) (source.Metadata, error) {
	spreadsheet, err := c.sheets.Spreadsheets.Get(ref.SpreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return source.Metadata{}, convertError(ref.SpreadsheetID, "get spreadsheet", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		props := sheet.Properties
		if props == nil || props.Title != ref.SheetName {
			continue
		}

		meta := source.Metadata{
			ModifiedTime: c.modifiedTime(ctx, ref.SpreadsheetID),
		}
		if grid := props.GridProperties; grid != nil {
			meta.RowCount = int(grid.RowCount)
			meta.ColumnCount = int(grid.ColumnCount)
		}
		return meta, nil
	}

	return source.Metadata{}, errors.NewNotFoundError("sheet", ref.String())
}

// Fetch retrieves the sheet's values, strips the header row, and
// width-normalizes the remaining rows so downstream components see
// rectangular data.
func (c *Client) Fetch(ctx context.Context, ref source.Ref) (*source.Table, error) {
	resp, err := c.sheets.Spreadsheets.Values.Get(ref.SpreadsheetID, ref.SheetName).
		Context(ctx).
		Do()
	if err != nil {
		return nil, convertError(ref.SpreadsheetID, "get values", err)
	}

	if len(resp.Values) == 0 {
		return nil, errors.ErrEmptyTable
	}

	headers := stringCells(resp.Values[0], len(resp.Values[0]))
	table := &source.Table{
		Ref:     ref,
		Headers: headers,
		Rows:    make([]source.Row, 0, len(resp.Values)-1),
	}
	for _, raw := range resp.Values[1:] {
		table.Rows = append(table.Rows, source.Row(stringCells(raw, len(headers))))
	}

	return table, nil
}

// BatchUpdate applies the scheduled cell writes as a single batch and
// returns the number of cells updated. An empty schedule makes no call.
func (c *Client) BatchUpdate(ctx context.Context, spreadsheetID string, updates []source.CellUpdate) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: valueInputOption,
		Data:             make([]*sheets.ValueRange, 0, len(updates)),
	}
	for _, u := range updates {
		req.Data = append(req.Data, &sheets.ValueRange{
			Range:  u.Range,
			Values: [][]interface{}{{u.Value}},
		})
	}

	resp, err := c.sheets.Spreadsheets.Values.BatchUpdate(spreadsheetID, req).
		Context(ctx).
		Do()
	if err != nil {
		return 0, convertError(spreadsheetID, "batch update", err)
	}

	return int(resp.TotalUpdatedCells), nil
}

// modifiedTime fetches the spreadsheet's Drive modified time. The signal
// is advisory, so any failure degrades to the empty string.
func (c *Client) modifiedTime(ctx context.Context, spreadsheetID string) string {
	if c.drive == nil {
		return ""
	}

	file, err := c.drive.Files.Get(spreadsheetID).
		Fields("modifiedTime").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		logging.FromContext(ctx).Debug().
			Err(convertError(spreadsheetID, "get modified time", err)).
			Msg("Modified-time lookup failed")
		return ""
	}
	return file.ModifiedTime
}

// stringCells converts one API value row to strings, padded or truncated
// to the given width. Nil cells become empty strings.
func stringCells(raw []interface{}, width int) []string {
	cells := make([]string, width)
	for i := 0; i < width && i < len(raw); i++ {
		if raw[i] == nil {
			continue
		}
		if s, ok := raw[i].(string); ok {
			cells[i] = s
			continue
		}
		cells[i] = fmt.Sprint(raw[i])
	}
	return cells
}
