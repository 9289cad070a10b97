// ABOUTME: CLI command to query the active index for relevant context
// ABOUTME: Prints ranked Q&A hits as a table or JSON
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

var (
	askTopK int
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Retrieve relevant context for a query",
		Long: `Retrieve the most relevant Q&A context from the active index.

Scores are raw distances from the nearest-neighbor search: lower means
a better match. With no active index the command prints nothing and
exits cleanly, mirroring the chat frontend's fallback behavior.

Examples:
  campus ask "What are the admission requirements?"
  campus ask --top-k 5 "How much is tuition?"
  campus ask --format json "Where is the campus?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().IntVar(&askTopK, "top-k", 0, "Maximum results to return (0 uses the configured default)")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if askTopK < 0 {
		return validatePositiveInt(askTopK, "top-k")
	}

	retriever, _, err := buildRetriever(false)
	if err != nil {
		return err
	}

	results, err := retriever.Query(cmd.Context(), args[0], askTopK)
	if err != nil {
		return fmt.Errorf("querying index: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			if _, ok := retriever.ActiveIndex(); !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No index loaded; no context available.")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No context found for query: %s\n", args[0])
			}
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	// Table format
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DISTANCE\tQUESTION\tANSWER\tSOURCE\n")
	fmt.Fprintf(w, "--------\t--------\t------\t------\n")
	for _, result := range results {
		fmt.Fprintf(w, "%.4f\t%s\t%s\t%s\n",
			result.Score,
			truncate(result.Metadata.Question, 40),
			truncate(result.Metadata.Answer, 50),
			truncate(result.Metadata.Source, 20))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}
	return nil
}
