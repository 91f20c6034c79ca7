package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/sheetsync/pkg/source"
)

// OutcomeStatus classifies what happened to one source during a pass.
type OutcomeStatus string

const (
	// StatusReconciled means rows were accepted, exported, and marked in
	// the source sheet.
	StatusReconciled OutcomeStatus = "reconciled"

	// StatusReconciledUnmarked means rows were accepted and exported but
	// the write-back of the status marker failed. The tracking store and
	// export are not rolled back; the gap is surfaced here.
	StatusReconciledUnmarked OutcomeStatus = "reconciled_unmarked"

	// StatusSkipped means the filtered content was identical to the last
	// processed pass.
	StatusSkipped OutcomeStatus = "skipped"

	// StatusFailed means the source could not be fetched or filtered.
	StatusFailed OutcomeStatus = "failed"
)

// SourceOutcome reports the per-source result of a reconciliation pass.
type SourceOutcome struct {
	Ref          source.Ref
	Status       OutcomeStatus
	RowsAccepted int
	RowsMarked   int
	Err          error
}

// Result is the command-result value of one reconciliation pass. The
// caller renders it; the core holds no presentation state.
type Result struct {
	// Ok is false only when the pass itself could not run (for example
	// the tracking store could not be saved). Per-source failures leave
	// Ok true and are reported in Outcomes.
	Ok      bool
	Message string

	// ExportPath is the merged artifact written this pass, empty when
	// nothing was processed.
	ExportPath string

	// MergedRows is the total number of accepted rows across sources.
	MergedRows int

	// Outcomes holds one entry per configured source, in configuration order.
	Outcomes []SourceOutcome

	// Metadata about the pass itself.
	StartTime time.Time
	Duration  time.Duration
}

// NoChanges reports whether no source yielded a process decision.
func (r *Result) NoChanges() bool {
	return r.ExportPath == ""
}

// Failed returns the outcomes for sources that could not be processed.
func (r *Result) Failed() []SourceOutcome {
	var failed []SourceOutcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// Unmarked returns the outcomes where export succeeded but write-back failed.
func (r *Result) Unmarked() []SourceOutcome {
	var unmarked []SourceOutcome
	for _, o := range r.Outcomes {
		if o.Status == StatusReconciledUnmarked {
			unmarked = append(unmarked, o)
		}
	}
	return unmarked
}

// Summary returns a human-readable summary of the pass.
func (r *Result) Summary() string {
	if !r.Ok {
		return r.Message
	}
	if r.NoChanges() {
		return "No new data was downloaded from any source."
	}
	msg := fmt.Sprintf("Combined %d rows into %s", r.MergedRows, r.ExportPath)
	if failed := r.Failed(); len(failed) > 0 {
		msg += fmt.Sprintf(" (%d source(s) failed)", len(failed))
	}
	if unmarked := r.Unmarked(); len(unmarked) > 0 {
		msg += fmt.Sprintf(" (%d source(s) exported but not marked)", len(unmarked))
	}
	return msg
}

// newResult creates a result with the pass start time recorded.
func newResult() *Result {
	return &Result{
		Ok:        true,
		StartTime: time.Now(),
	}
}

// finalize calculates duration and marks completion.
func (r *Result) finalize() {
	r.Duration = time.Since(r.StartTime)
}
