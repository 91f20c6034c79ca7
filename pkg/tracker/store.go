package tracker

import (
	"encoding/json"
	"os"

	"github.com/agentstation/utc"

	"github.com/agentstation/sheetsync/pkg/errors"
	"github.com/agentstation/sheetsync/pkg/logging"
	"github.com/agentstation/sheetsync/pkg/source"
)

// storeFilePermissions is the mode for the persisted tracking store.
const storeFilePermissions = 0o600

// Entry records what was last seen for one source sheet.
type Entry struct {
	Ref             source.Ref      `json:"ref"`
	Metadata        source.Metadata `json:"metadata"`
	Fingerprint     Fingerprint     `json:"fingerprint"`
	LastProcessedAt utc.Time        `json:"last_processed_at"`
	LastCheckedAt   utc.Time        `json:"last_checked_at"`
}

// Store is the persisted change-detection state, one entry per source
// sheet keyed by Ref.Key(). It is written wholesale after every
// reconciliation pass; a crash mid-pass loses that pass's updates.
type Store struct {
	LastRun utc.Time         `json:"last_run"`
	Entries map[string]Entry `json:"entries"`
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{Entries: make(map[string]Entry)}
}

// Get returns the entry for a ref, if recorded.
func (s *Store) Get(ref source.Ref) (Entry, bool) {
	entry, ok := s.Entries[ref.Key()]
	return entry, ok
}

// Set records an entry for a ref.
func (s *Store) Set(ref source.Ref, entry Entry) {
	if s.Entries == nil {
		s.Entries = make(map[string]Entry)
	}
	s.Entries[ref.Key()] = entry
}

// Len returns the number of tracked sources.
func (s *Store) Len() int {
	return len(s.Entries)
}

// LoadStore reads a store from disk. A missing file yields an empty store.
// An unreadable or unparsable file is reported and also yields an empty
// store: the system biases toward re-processing rather than losing rows.
func LoadStore(path string) *Store {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn().
				Err(errors.WrapIO("read", path, err)).
				Msg("Tracking store unreadable, starting from empty store")
		}
		return NewStore()
	}

	var store Store
	if err := json.Unmarshal(data, &store); err != nil {
		logging.Warn().
			Err(errors.WrapParse("json", path, err)).
			Msg("Tracking store corrupt, starting from empty store")
		return NewStore()
	}

	if store.Entries == nil {
		store.Entries = make(map[string]Entry)
	}
	return &store
}

// Save writes the whole store to disk. Best effort: the caller reports
// the returned error but nothing is rolled back.
func (s *Store) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.WrapParse("json", path, err)
	}

	if err := os.WriteFile(path, data, storeFilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
