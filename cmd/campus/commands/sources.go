// ABOUTME: CLI command to list tracked corpus sources
// ABOUTME: Shows which files were processed or used for fine-tuning
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sfbu/campus-assistant/internal/config"
	"github.com/sfbu/campus-assistant/internal/storage"
)

// NewSourcesCmd creates the sources command
func NewSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List tracked corpus sources",
		Long: `List the corpus files that have been processed or fine-tuned.

Examples:
  campus sources
  campus sources --format json`,
		RunE: runSources,
	}
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	tracker := storage.NewSourceTracker(cfg.TrackingFile)
	records := tracker.Sources()

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if len(records) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No tracked sources.")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SOURCE\tSTATUS\tWHEN\n")
	fmt.Fprintf(w, "------\t------\t----\n")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			truncate(rec.DisplayName, 40), rec.Status, formatTime(rec.Timestamp))
	}
	w.Flush()
	return nil
}
