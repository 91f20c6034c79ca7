package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/sheetsync/pkg/source"
)

func TestRefKey(t *testing.T) {
	ref := source.Ref{SpreadsheetID: "1abc", SheetName: "Requests"}
	assert.Equal(t, "1abc_Requests", ref.Key())
	assert.Equal(t, "1abc/Requests", ref.String())
}

func TestRefValidate(t *testing.T) {
	tests := []struct {
		name    string
		ref     source.Ref
		wantErr bool
	}{
		{"valid", source.Ref{SpreadsheetID: "1abc", SheetName: "Requests"}, false},
		{"missing spreadsheet id", source.Ref{SheetName: "Requests"}, true},
		{"missing sheet name", source.Ref{SpreadsheetID: "1abc"}, true},
		{"empty", source.Ref{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ref.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
