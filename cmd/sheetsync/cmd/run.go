package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/sheetsync/internal/config"
	"github.com/agentstation/sheetsync/internal/gsheets"
	"github.com/agentstation/sheetsync/pkg/export"
	"github.com/agentstation/sheetsync/pkg/reconciler"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one reconciliation pass over all configured sources",
	Long: `Run fetches every configured sheet in order, filters for rows still
marked "New Request", skips sheets whose filtered content is unchanged
since the last processed pass, merges everything new into a timestamped
CSV export, and marks the consumed rows in their source sheets.

A failing source is reported and skipped; it never aborts the pass for
the sources after it.`,
	RunE: runPass,
}

func init() {
	runCmd.Flags().Bool("force", false, "process every source, bypassing change detection")
	if err := viper.BindPFlag(config.KeyForce, runCmd.Flags().Lookup("force")); err != nil {
		panic(fmt.Sprintf("Failed to bind force flag: %v", err))
	}

	rootCmd.AddCommand(runCmd)
}

func runPass(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	settings := config.Load()

	refs, err := config.LoadSources(settings.SourcesFile)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return fmt.Errorf("no sources configured in %s, add one with 'sheetsync sources add'", settings.SourcesFile)
	}

	client, err := gsheets.New(ctx, gsheets.Config{
		CredentialsFile: settings.CredentialsFile,
	})
	if err != nil {
		return err
	}

	r, err := reconciler.New(client,
		reconciler.WithForce(settings.Force),
		reconciler.WithTrackingPath(settings.TrackingPath),
		reconciler.WithExporter(export.New(settings.ExportDir)),
	)
	if err != nil {
		return err
	}

	result, err := r.Run(ctx, refs)
	if err != nil {
		return err
	}

	printOutcomes(result)
	fmt.Println(result.Summary())

	// Returning an error lets cobra unwind normally so the signal context
	// in Execute is cancelled before the process exits nonzero.
	return passError(result)
}

// passError maps a completed pass onto the command's error result.
func passError(result *reconciler.Result) error {
	if result.Ok {
		return nil
	}
	return errors.New("reconciliation pass did not complete cleanly")
}

func printOutcomes(result *reconciler.Result) {
	for _, o := range result.Outcomes {
		switch o.Status {
		case reconciler.StatusReconciled:
			fmt.Printf("  %-50s %d row(s) accepted, %d marked\n", o.Ref, o.RowsAccepted, o.RowsMarked)
		case reconciler.StatusReconciledUnmarked:
			fmt.Printf("  %-50s %d row(s) accepted, marking failed: %v\n", o.Ref, o.RowsAccepted, o.Err)
		case reconciler.StatusSkipped:
			fmt.Printf("  %-50s unchanged\n", o.Ref)
		case reconciler.StatusFailed:
			fmt.Printf("  %-50s failed: %v\n", o.Ref, o.Err)
		}
	}
}
