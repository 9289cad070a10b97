// ABOUTME: CLI command to extract training data from a web page
// ABOUTME: Fetches a URL, generates Q&A pairs per section and writes split JSONL files
package commands

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
	"github.com/sfbu/campus-assistant/internal/config"
	"github.com/sfbu/campus-assistant/internal/dataset"
	"github.com/sfbu/campus-assistant/internal/extract"
	"github.com/sfbu/campus-assistant/internal/llm"
	"github.com/sfbu/campus-assistant/internal/models"
	"github.com/sfbu/campus-assistant/internal/storage"
)

var (
	fetchOutputDir  string
	fetchTrainRatio float64
)

// NewFetchCmd creates the fetch command
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Extract training data from a web page",
		Long: `Fetch a web page, extract its heading-led sections, generate Q&A
pairs for each section, and write deduplicated train/valid JSONL files.

Examples:
  campus fetch https://www.sfbu.edu/admissions
  campus fetch https://www.sfbu.edu/admissions -o training_data --train-ratio 0.9`,
		Args: cobra.ExactArgs(1),
		RunE: runFetch,
	}

	cmd.Flags().StringVarP(&fetchOutputDir, "output", "o", "training_data", "Directory for generated JSONL files")
	cmd.Flags().Float64Var(&fetchTrainRatio, "train-ratio", 0.8, "Share of records written to train.jsonl")

	return cmd
}

func runFetch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	client, err := llm.NewClient(cfg)
	if err != nil {
		return err
	}

	extractor := extract.NewURLExtractor()
	sections, err := extractor.Extract(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("extracting %s: %w", args[0], err)
	}
	if len(sections) == 0 {
		return fmt.Errorf("no text sections found at %s", args[0])
	}
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d sections\n", len(sections))
	}

	var records []models.TrainingRecord
	for _, section := range sections {
		pairs, err := client.GenerateQAPairs(cmd.Context(), section)
		if err != nil {
			return fmt.Errorf("generating Q&A for section %q: %w", section.Section, err)
		}
		records = append(records, pairs...)
	}

	// Dedupe against everything already generated into the output dir
	deduper := dataset.NewDeduper()
	deduper.LoadExisting(fetchOutputDir)
	records = deduper.Filter(records)
	if len(records) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No new records (all duplicates of existing training data).")
		}
		return nil
	}

	if err := os.MkdirAll(fetchOutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	train, valid := dataset.Split(records, fetchTrainRatio)
	trainPath := filepath.Join(fetchOutputDir, "train.jsonl")
	if err := dataset.WriteFile(trainPath, train); err != nil {
		return err
	}
	if len(valid) > 0 {
		if err := dataset.WriteFile(filepath.Join(fetchOutputDir, "valid.jsonl"), valid); err != nil {
			return err
		}
	}

	tracker := storage.NewSourceTracker(cfg.TrackingFile)
	if err := tracker.Add(models.SourceRecord{FilePath: args[0], Status: "processed"}); err != nil {
		log.Printf("Warning: could not track source: %v", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d train and %d validation records to %s\n",
			len(train), len(valid), fetchOutputDir)
	}
	return nil
}
