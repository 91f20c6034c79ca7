package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/sheetsync/internal/config"
	"github.com/agentstation/sheetsync/pkg/source"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage the ordered list of source sheets",
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sources in reconciliation order",
	RunE: func(_ *cobra.Command, _ []string) error {
		settings := config.Load()
		refs, err := config.LoadSources(settings.SourcesFile)
		if err != nil {
			return err
		}

		if len(refs) == 0 {
			fmt.Println("No sources configured.")
			return nil
		}
		for i, ref := range refs {
			fmt.Printf("%2d. %s\n", i+1, ref)
		}
		return nil
	},
}

var sourcesAddCmd = &cobra.Command{
	Use:   "add <spreadsheet-id> <sheet-name>",
	Short: "Append a source sheet to the list",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		settings := config.Load()
		ref := source.Ref{SpreadsheetID: args[0], SheetName: args[1]}

		if err := config.AddSource(settings.SourcesFile, ref); err != nil {
			return err
		}
		fmt.Printf("Added %s\n", ref)
		return nil
	},
}

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove <spreadsheet-id> <sheet-name>",
	Short: "Remove a source sheet from the list",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		settings := config.Load()
		ref := source.Ref{SpreadsheetID: args[0], SheetName: args[1]}

		if err := config.RemoveSource(settings.SourcesFile, ref); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", ref)
		return nil
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesListCmd)
	sourcesCmd.AddCommand(sourcesAddCmd)
	sourcesCmd.AddCommand(sourcesRemoveCmd)
	rootCmd.AddCommand(sourcesCmd)
}
