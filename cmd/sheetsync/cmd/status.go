package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/sheetsync/internal/config"
	"github.com/agentstation/sheetsync/pkg/tracker"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what the change tracker remembers per source",
	RunE: func(_ *cobra.Command, _ []string) error {
		settings := config.Load()

		store := tracker.LoadStore(settings.TrackingPath)
		if !store.LastRun.IsZero() {
			fmt.Printf("Last run: %s\n", store.LastRun.Format(time.RFC3339))
		}
		if store.Len() == 0 {
			fmt.Println("No sources tracked yet.")
			return nil
		}

		refs, err := config.LoadSources(settings.SourcesFile)
		if err != nil {
			return err
		}

		// Configured sources first, in order; then any stale entries for
		// sources no longer configured, sorted by key so output is stable.
		printed := make(map[string]bool)
		for _, ref := range refs {
			if entry, ok := store.Get(ref); ok {
				printEntry(entry)
				printed[ref.Key()] = true
			}
		}
		for _, key := range staleKeys(store, printed) {
			printEntry(store.Entries[key])
			fmt.Println("      (no longer configured)")
		}
		return nil
	},
}

// staleKeys returns the keys of tracked entries that were not printed as
// configured sources, in sorted order.
func staleKeys(store *tracker.Store, printed map[string]bool) []string {
	var keys []string
	for key := range store.Entries {
		if !printed[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func printEntry(entry tracker.Entry) {
	fmt.Printf("%s\n", entry.Ref)
	fmt.Printf("      rows=%d cols=%d fingerprint=%.12s…\n",
		entry.Metadata.RowCount, entry.Metadata.ColumnCount, entry.Fingerprint)
	fmt.Printf("      processed=%s checked=%s\n",
		entry.LastProcessedAt.Format(time.RFC3339),
		entry.LastCheckedAt.Format(time.RFC3339))
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
