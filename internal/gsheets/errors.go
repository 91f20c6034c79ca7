package gsheets

import (
	stderrors "errors"

	"google.golang.org/api/googleapi"

	"github.com/agentstation/sheetsync/pkg/errors"
)

// convertError maps a Google API failure into the system's typed errors.
// Status codes drive the mapping; anything without a status code is
// treated as a transient network failure.
func convertError(spreadsheetID, operation string, err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 403:
			return &errors.AccessError{
				SpreadsheetID: spreadsheetID,
				Message:       apiErr.Message,
				Err:           err,
			}
		case apiErr.Code == 404:
			return errors.NewNotFoundError("spreadsheet", spreadsheetID)
		default:
			return errors.WrapAPI(spreadsheetID, apiErr.Code, err)
		}
	}

	return &errors.TransientError{
		Operation: operation,
		Message:   err.Error(),
		Err:       err,
	}
}
