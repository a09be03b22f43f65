package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bojo24/contentforge/internal/model"
	"github.com/bojo24/contentforge/internal/pipeline"
	"github.com/bojo24/contentforge/internal/worker"
)

var (
	batchTypes       []string
	batchTimeout     time.Duration
	batchConcurrency int
	batchLimit       int
	batchDelay       time.Duration
	batchAugment     bool
	batchAllowIDs    []string
	batchProvider    string
	batchModel       string
	batchOutDir      string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [ids-file]",
	Short: "Process many benefit records concurrently",
	Long: `Batch runs the content pipeline over many records using a worker pool.
Record ids come from a file (one id per line, # comments allowed) or, when
no file is given, from the configured store.

Each record fails or succeeds on its own: a broken record never aborts
the batch. Generative calls are paced through a shared rate limiter so a
large batch cannot hammer the provider.

Example:
  contentforge batch ids.txt --types intro,guide
  contentforge batch --limit 200 --concurrency 8 --augment`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringSliceVar(&batchTypes, "types", []string{"intro"}, "content types to generate (intro, analysis, guide, tips)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "overall batch timeout")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "worker count (default: config workers)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 500, "max records to list from the store when no ids file is given")
	batchCmd.Flags().DurationVar(&batchDelay, "delay", 0, "pause between records (default: config augment_delay)")
	batchCmd.Flags().BoolVar(&batchAugment, "augment", false, "enable generative augmentation of insufficient fields")
	batchCmd.Flags().StringSliceVar(&batchAllowIDs, "allow", nil, "record ids allowed to augment even when --augment is off")
	batchCmd.Flags().StringVar(&batchProvider, "llm-provider", "", "LLM provider (gemini, openai)")
	batchCmd.Flags().StringVar(&batchModel, "llm-model", "", "LLM model name")
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "also write each generated bundle as JSON into this directory")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyBatchFlags(cfg)

	types, err := parseContentTypes(batchTypes)
	if err != nil {
		return err
	}

	st, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var ids []string
	source := "store"
	if len(args) == 1 {
		source = args[0]
		ids, err = worker.ReadIDsFromFile(args[0])
		if err != nil {
			return err
		}
	} else {
		ids, err = st.RecordIDs(ctx, batchLimit)
		if err != nil {
			return fmt.Errorf("list records: %w", err)
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("no record ids to process")
	}

	invoker, err := buildInvoker(cfg)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	concurrency := cfg.Concurrency.Workers
	if concurrency <= 0 {
		concurrency = 4
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  ContentForge Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Run ID:       %s\n", runID)
	fmt.Fprintf(os.Stderr, "  Source:       %s\n", source)
	fmt.Fprintf(os.Stderr, "  Records:      %d\n", len(ids))
	fmt.Fprintf(os.Stderr, "  Types:        %v\n", batchTypes)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	assembler := pipeline.NewAssembler(cfg, invoker, st)
	proc := pacedAssembler(assembler, cfg)

	start := time.Now()
	results := worker.NewBatchProcessor(proc, concurrency).ProcessRecords(ctx, ids, types)

	for _, res := range results {
		switch {
		case res.Err != nil:
			fmt.Fprintf(os.Stderr, "✗ %s/%s: %v\n", res.RecordID, res.ContentType, res.Err)
		case res.Skipped:
			fmt.Fprintf(os.Stderr, "✓ %s/%s already generated, skipping\n", res.RecordID, res.ContentType)
		case res.Duplicate:
			fmt.Fprintf(os.Stderr, "⚠ %s/%s duplicate, not persisted\n", res.RecordID, res.ContentType)
		default:
			fmt.Fprintf(os.Stderr, "✓ %s/%s (uniqueness %.2f)\n", res.RecordID, res.ContentType, res.Content.UniquenessScore)
			if batchOutDir != "" {
				if err := writeBatchBundle(batchOutDir, res); err != nil {
					fmt.Fprintf(os.Stderr, "✗ %s/%s: %v\n", res.RecordID, res.ContentType, err)
				}
			}
		}
	}

	tally := worker.Summarize(results)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Processed:    %d\n", tally.Processed)
	fmt.Fprintf(os.Stderr, "  Succeeded:    %d\n", tally.Succeeded)
	fmt.Fprintf(os.Stderr, "  Duplicates:   %d\n", tally.Duplicates)
	fmt.Fprintf(os.Stderr, "  Skipped:      %d\n", tally.Skipped)
	fmt.Fprintf(os.Stderr, "  Failed:       %d\n", tally.Failed)
	fmt.Fprintf(os.Stderr, "  Elapsed:      %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "\n")

	if tally.Failed > 0 {
		return fmt.Errorf("batch %s finished with failures: %s", runID, tally)
	}
	return nil
}

// applyBatchFlags overlays command flags onto the loaded config.
func applyBatchFlags(cfg *model.Config) {
	if batchAugment {
		cfg.Augment.Enabled = true
	}
	if len(batchAllowIDs) > 0 {
		cfg.Augment.AllowedIDs = append(cfg.Augment.AllowedIDs, batchAllowIDs...)
	}
	if batchProvider != "" {
		cfg.LLM.Provider = batchProvider
		cfg.LLM.APIKey = ""
	}
	if batchModel != "" {
		cfg.LLM.Model = batchModel
	}
	if batchConcurrency > 0 {
		cfg.Concurrency.Workers = batchConcurrency
	}
	if batchDelay > 0 {
		cfg.Concurrency.AugmentDelay = batchDelay
	}
}

// pacedAssembler wraps the assembler so between-record pacing only kicks
// in when generative calls are actually possible. Pure local assembly has
// no external service to protect.
func pacedAssembler(assembler *pipeline.Assembler, cfg *model.Config) worker.Processor {
	if cfg.LLM.Provider == "" || !cfg.Augment.Enabled && len(cfg.Augment.AllowedIDs) == 0 {
		return assembler
	}
	limiter := worker.NewLimiter(cfg.Concurrency.AugmentRPS, cfg.Concurrency.AugmentBurst)
	return worker.NewPacedProcessor(assembler, limiter, cfg.LLM.Provider, cfg.Concurrency.AugmentDelay)
}

// writeBatchBundle writes one bundle as <record-id>-<type>.json.
func writeBatchBundle(dir string, res pipeline.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(res.Content, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.json", res.RecordID, res.ContentType))
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
