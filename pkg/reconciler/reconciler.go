// Package reconciler orchestrates a reconciliation pass: fetch each
// configured source in order, filter its rows, ask the change tracker for
// a skip-or-process decision, merge accepted rows into a single export,
// and write the consumed-status marker back to each processed source.
//
// Failures are isolated per source: one source failing to fetch or filter
// never aborts the pass for the sources after it. The pass runs strictly
// sequentially; guarding against overlapping invocations is the caller's
// responsibility.
package reconciler

import (
	"context"

	"github.com/agentstation/utc"

	"github.com/agentstation/sheetsync/pkg/errors"
	"github.com/agentstation/sheetsync/pkg/export"
	"github.com/agentstation/sheetsync/pkg/filter"
	"github.com/agentstation/sheetsync/pkg/logging"
	"github.com/agentstation/sheetsync/pkg/marker"
	"github.com/agentstation/sheetsync/pkg/source"
	"github.com/agentstation/sheetsync/pkg/tracker"
)

// Reconciler runs reconciliation passes over configured sources.
type Reconciler interface {
	// Run executes one pass over the given sources, in order.
	Run(ctx context.Context, refs []source.Ref) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	client source.ReadUpdater
	opts   *options
}

// New creates a Reconciler over the given remote client.
func New(client source.ReadUpdater, opts ...Option) (Reconciler, error) {
	if client == nil {
		return nil, &errors.ValidationError{
			Field:   "client",
			Message: "cannot be nil",
		}
	}

	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &reconciler{
		client: client,
		opts:   options,
	}, nil
}

// processedSource remembers what a Process decision accepted, for the
// merge accumulator and the per-source write-back.
type processedSource struct {
	ref     source.Ref
	rows    []filter.Row
	outcome int // index into Result.Outcomes
}

// Run executes one reconciliation pass.
func (r *reconciler) Run(ctx context.Context, refs []source.Ref) (*Result, error) {
	log := logging.FromContext(ctx)
	result := newResult()
	defer result.finalize()

	if len(refs) == 0 {
		return nil, errors.NewConfigError("reconciler", "no sources configured", nil)
	}

	store := tracker.LoadStore(r.opts.trackingPath)
	store.LastRun = utc.Now()
	track := tracker.New(store, tracker.WithForce(r.opts.force))

	var merged int
	var processed []processedSource
	var tables []export.Table

	for _, ref := range refs {
		outcome, rows, headers := r.reconcileSource(ctx, track, ref)
		result.Outcomes = append(result.Outcomes, outcome)

		if outcome.Status != StatusReconciled || len(rows) == 0 {
			continue
		}

		merged += len(rows)
		tables = append(tables, export.Table{Headers: headers, Rows: rows})
		processed = append(processed, processedSource{
			ref:     ref,
			rows:    rows,
			outcome: len(result.Outcomes) - 1,
		})
	}

	// Nothing accepted: no export, but checked-at updates must survive.
	if len(processed) == 0 {
		if err := store.Save(r.opts.trackingPath); err != nil {
			log.Error().Err(err).Msg("Failed to save tracking store")
			result.Ok = false
			result.Message = err.Error()
			return result, nil
		}
		result.Message = "no changes"
		return result, nil
	}

	exportPath, err := r.opts.exporter.Write(tables)
	if err != nil {
		// Fingerprints are deliberately not saved here: the accepted rows
		// were never persisted, so the next pass must process them again.
		log.Error().Err(err).Msg("Failed to write export artifact")
		result.Ok = false
		result.Message = err.Error()
		return result, nil
	}
	result.ExportPath = exportPath
	result.MergedRows = merged

	log.Info().
		Str("export_path", exportPath).
		Int("rows", merged).
		Int("sources", len(processed)).
		Msg("Wrote merged export")

	if err := store.Save(r.opts.trackingPath); err != nil {
		// The export already happened; report and carry on to write-back.
		// A lost store only biases the next pass toward re-processing.
		log.Error().Err(err).Msg("Failed to save tracking store")
		result.Message = err.Error()
	}

	r.markProcessed(ctx, result, processed)

	if result.Message == "" {
		result.Message = result.Summary()
	}
	return result, nil
}

// reconcileSource fetches, filters, and decides one source. All per-source
// failures are converted into a Failed outcome rather than an error.
func (r *reconciler) reconcileSource(ctx context.Context, track *tracker.Tracker, ref source.Ref) (SourceOutcome, []filter.Row, []string) {
	ctx = logging.WithSpreadsheet(ctx, ref.SpreadsheetID, ref.SheetName)
	log := logging.FromContext(ctx)

	outcome := SourceOutcome{Ref: ref}

	if err := ref.Validate(); err != nil {
		outcome.Status = StatusFailed
		outcome.Err = errors.NewConfigError("sources", err.Error(), err)
		log.Error().Err(outcome.Err).Msg("Invalid source reference")
		return outcome, nil, nil
	}

	var meta source.Metadata
	if !track.Force() {
		m, err := r.client.Metadata(ctx, ref)
		if err != nil {
			outcome.Status = StatusFailed
			outcome.Err = err
			log.Error().Err(err).Msg("Failed to fetch sheet metadata")
			return outcome, nil, nil
		}
		meta = m
	}

	table, err := r.client.Fetch(ctx, ref)
	if err != nil {
		if errors.IsEmptyTable(err) {
			outcome.Status = StatusSkipped
			log.Warn().Msg("No data found in sheet")
			return outcome, nil, nil
		}
		outcome.Status = StatusFailed
		outcome.Err = err
		log.Error().Err(err).Msg("Failed to fetch sheet values")
		return outcome, nil, nil
	}

	rows, err := filter.Apply(table)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		log.Error().Err(err).Msg("Failed to filter sheet rows")
		return outcome, nil, nil
	}
	log.Info().
		Int("fetched", len(table.Rows)).
		Int("accepted", len(rows)).
		Msg("Filtered sheet rows")

	fp := tracker.ComputeFingerprint(rows)
	decision := track.Decide(ref, meta, fp)

	// Metadata drift is advisory only; the fingerprint is authoritative.
	if decision.RowCountChanged || decision.ModifiedTimeChanged {
		log.Info().
			Bool("row_count_changed", decision.RowCountChanged).
			Bool("modified_time_changed", decision.ModifiedTimeChanged).
			Msg("Sheet metadata changed since last pass")
	}

	if decision.Action == tracker.Skip {
		track.Touch(ref, meta)
		outcome.Status = StatusSkipped
		log.Info().Msg("Filtered content identical to previous pass, skipping")
		return outcome, nil, nil
	}

	// Force mode skipped the cheap metadata call up front; fetch it now so
	// the committed entry still carries current metadata. Best effort.
	if track.Force() {
		if m, err := r.client.Metadata(ctx, ref); err == nil {
			meta = m
		}
	}
	track.Commit(ref, meta, fp)

	if len(rows) == 0 {
		// The empty fingerprint was committed so a later transition back
		// to matching rows is detected, but there is nothing to merge.
		outcome.Status = StatusSkipped
		log.Warn().Msg("No rows match the filter criteria")
		return outcome, nil, nil
	}

	outcome.Status = StatusReconciled
	outcome.RowsAccepted = len(rows)
	log.Info().
		Bool("first_seen", decision.FirstSeen).
		Bool("forced", decision.Forced).
		Int("rows", len(rows)).
		Msg("Accepted new or changed rows")
	return outcome, rows, table.Headers
}

// markProcessed writes the consumed-status marker back to every processed
// source. Write-back failures downgrade the outcome to reconciled-unmarked
// and never roll back the export or the tracking store.
func (r *reconciler) markProcessed(ctx context.Context, result *Result, processed []processedSource) {
	writer := marker.New(r.client)

	for _, p := range processed {
		marked, err := writer.MarkConsumed(ctx, p.ref, p.rows)
		outcome := &result.Outcomes[p.outcome]
		if err != nil {
			outcome.Status = StatusReconciledUnmarked
			outcome.Err = err
			logging.FromContext(ctx).Error().
				Err(err).
				Str("source", p.ref.Key()).
				Msg("Exported rows but failed to mark them in the source sheet")
			continue
		}
		outcome.RowsMarked = marked
	}
}
