// ABOUTME: CLI commands to manage saved index bundles
// ABOUTME: Lists, loads and deletes named indices and shows the active one
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

// NewIndicesCmd creates the indices command group
func NewIndicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indices",
		Short: "Manage saved indices",
		Long: `Manage the saved vector indices.

Examples:
  campus indices list
  campus indices load catalog-2026
  campus indices delete old-faq`,
	}

	cmd.AddCommand(newIndicesListCmd(), newIndicesLoadCmd(), newIndicesDeleteCmd())
	return cmd
}

func newIndicesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved indices",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			retriever, _, err := buildRetriever(false)
			if err != nil {
				return err
			}

			infos, err := retriever.ListIndices()
			if err != nil {
				return fmt.Errorf("listing indices: %w", err)
			}

			active, _ := retriever.ActiveIndex()

			if outputFormat == "json" {
				jsonData, err := json.MarshalIndent(infos, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling JSON: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
				return nil
			}

			if len(infos) == 0 {
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), "No saved indices.")
				}
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "NAME\tDOCUMENTS\tCREATED\tACTIVE\n")
			fmt.Fprintf(w, "----\t---------\t-------\t------\n")
			for _, info := range infos {
				marker := ""
				if info.Name == active {
					marker = "*"
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
					info.Name, info.DocumentCount, formatTime(info.CreatedAt), marker)
			}
			w.Flush()
			return nil
		},
	}
}

func newIndicesLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <name>",
		Short: "Load a named index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			retriever, _, err := buildRetriever(false)
			if err != nil {
				return err
			}

			if err := retriever.LoadIndex(args[0]); err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded index %q (%d documents)\n",
					args[0], retriever.DocumentCount())
			}
			return nil
		},
	}
}

func newIndicesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a named index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			retriever, _, err := buildRetriever(false)
			if err != nil {
				return err
			}

			if err := retriever.DeleteIndex(args[0]); err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted index %q\n", args[0])
			}
			return nil
		},
	}
}
