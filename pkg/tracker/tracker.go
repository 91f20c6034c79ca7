// Package tracker is the change-detection core. It keeps a persistent
// fingerprint per source sheet and decides whether a re-fetch represents
// new content (process) or content already consumed on a prior pass (skip).
//
// Metadata signals such as row-count or modified-time drift are advisory
// only: they are surfaced on the decision for logging but never gate it.
// The fingerprint over the filtered row set is authoritative, because
// spreadsheet metadata can change without the filtered content changing
// and vice versa.
package tracker

import (
	"github.com/agentstation/utc"

	"github.com/agentstation/sheetsync/pkg/source"
)

// Action is the outcome of a skip-vs-process decision.
type Action int

const (
	// Process means the source's filtered content is new or changed.
	Process Action = iota
	// Skip means the filtered content is identical to the last processed pass.
	Skip
)

// String returns the action name.
func (a Action) String() string {
	if a == Skip {
		return "skip"
	}
	return "process"
}

// Decision carries the action plus the advisory change signals that fed it.
type Decision struct {
	Action Action

	// FirstSeen is true when the ref had no tracking entry.
	FirstSeen bool

	// Forced is true when force mode bypassed comparison entirely.
	Forced bool

	// RowCountChanged and ModifiedTimeChanged are metadata heuristics.
	// They are reported for observability and never gate the action.
	RowCountChanged     bool
	ModifiedTimeChanged bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithForce puts the tracker in force mode: every decision is Process and
// every commit overwrites the stored entry.
func WithForce(force bool) Option {
	return func(t *Tracker) {
		t.force = force
	}
}

// WithClock overrides the tracker's time source. Used in tests.
func WithClock(now func() utc.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// Tracker decides skip vs process against a Store and records outcomes
// back into it. It does not persist the store; the reconciler saves the
// whole store once per pass.
type Tracker struct {
	store *Store
	force bool
	now   func() utc.Time
}

// New creates a Tracker over the given store.
func New(store *Store, opts ...Option) *Tracker {
	if store == nil {
		store = NewStore()
	}
	t := &Tracker{
		store: store,
		now:   utc.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Store returns the underlying store for persistence.
func (t *Tracker) Store() *Store {
	return t.store
}

// Force reports whether the tracker is in force mode.
func (t *Tracker) Force() bool {
	return t.force
}

// Decide compares the fetched metadata and filtered-content fingerprint
// against the stored entry. An absent entry always yields Process.
func (t *Tracker) Decide(ref source.Ref, meta source.Metadata, fp Fingerprint) Decision {
	if t.force {
		return Decision{Action: Process, Forced: true}
	}

	previous, ok := t.store.Get(ref)
	if !ok {
		return Decision{Action: Process, FirstSeen: true}
	}

	decision := Decision{
		RowCountChanged:     meta.RowCount != previous.Metadata.RowCount,
		ModifiedTimeChanged: meta.ModifiedTime != previous.Metadata.ModifiedTime,
	}

	if fp == previous.Fingerprint {
		decision.Action = Skip
	} else {
		decision.Action = Process
	}
	return decision
}

// Commit records a processed source: new metadata, new fingerprint, and
// fresh processed/checked timestamps.
func (t *Tracker) Commit(ref source.Ref, meta source.Metadata, fp Fingerprint) {
	now := t.now()
	t.store.Set(ref, Entry{
		Ref:             ref,
		Metadata:        meta,
		Fingerprint:     fp,
		LastProcessedAt: now,
		LastCheckedAt:   now,
	})
}

// Touch refreshes a skipped source: metadata and LastCheckedAt are updated,
// fingerprint and LastProcessedAt are left alone. A ref with no entry is a
// no-op because skips only happen against recorded entries.
func (t *Tracker) Touch(ref source.Ref, meta source.Metadata) {
	entry, ok := t.store.Get(ref)
	if !ok {
		return
	}
	entry.Metadata = meta
	entry.LastCheckedAt = t.now()
	t.store.Set(ref, entry)
}
