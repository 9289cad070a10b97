// ABOUTME: CLI command to ingest a JSONL corpus into a named index
// ABOUTME: Parses training records, optionally moderates them, embeds and persists
package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
	"github.com/sfbu/campus-assistant/internal/dataset"
	"github.com/sfbu/campus-assistant/internal/llm"
	"github.com/sfbu/campus-assistant/internal/models"
	"github.com/sfbu/campus-assistant/internal/storage"
)

var (
	ingestIndexName string
	ingestModerate  bool
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <corpus.jsonl>",
		Short: "Ingest a JSONL corpus into a named index",
		Long: `Ingest a JSONL training corpus into a named vector index.

Each line is either a chat {"messages": [...]} record or a legacy
{"prompt", "completion"} record, with optional source/category fields.
The resulting index is persisted and becomes the active index.

Examples:
  campus ingest training_data/catalog.jsonl --index catalog-2026
  campus ingest qa.jsonl --index faq --moderate`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().StringVar(&ingestIndexName, "index", "", "Name for the persisted index (required)")
	cmd.Flags().BoolVar(&ingestModerate, "moderate", false, "Drop records flagged by the moderation endpoint")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	retriever, cfg, err := buildRetriever(true)
	if err != nil {
		return err
	}

	records, err := dataset.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("parsing corpus: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("corpus %s contains no records", args[0])
	}

	if ingestModerate {
		client, err := llm.NewClient(cfg)
		if err != nil {
			return err
		}
		records, err = moderateRecords(cmd, client, records)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return fmt.Errorf("all records were flagged by moderation")
		}
	}

	if err := retriever.IngestCorpus(cmd.Context(), records, ingestIndexName); err != nil {
		return fmt.Errorf("ingesting corpus: %w", err)
	}

	tracker := storage.NewSourceTracker(cfg.TrackingFile)
	if err := tracker.Add(models.SourceRecord{FilePath: args[0], Status: "processed"}); err != nil {
		log.Printf("Warning: could not track source: %v", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d records into index %q (%d documents total)\n",
			len(records), ingestIndexName, retriever.DocumentCount())
	}
	return nil
}

// moderateRecords drops records the moderation endpoint flags.
func moderateRecords(cmd *cobra.Command, client *llm.Client, records []models.TrainingRecord) ([]models.TrainingRecord, error) {
	kept := make([]models.TrainingRecord, 0, len(records))
	for _, rec := range records {
		flagged, err := client.ModerateText(cmd.Context(), rec.Question+"\n"+rec.Answer)
		if err != nil {
			return nil, fmt.Errorf("moderating record %q: %w", truncate(rec.Question, 40), err)
		}
		if flagged {
			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "Dropping flagged record: %s\n", truncate(rec.Question, 60))
			}
			continue
		}
		kept = append(kept, rec)
	}
	return kept, nil
}
