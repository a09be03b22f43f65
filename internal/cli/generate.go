package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bojo24/contentforge/internal/model"
	"github.com/bojo24/contentforge/internal/pipeline"
	"github.com/bojo24/contentforge/internal/store"
)

var (
	genTypes      []string
	genTimeout    time.Duration
	genAugment    bool
	genAllowIDs   []string
	genProvider   string
	genModel      string
	genRecordJSON string
	genOut        string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <record-id>",
	Short: "Generate optimized content for a single benefit record",
	Long: `Generate runs the full content pipeline for one record:
- Resolve fields across the record's nested detail sources
- Augment fields that fall short of the per-field length policy (optional)
- Parse amounts, steps and document lists out of the free text
- Synthesize FAQs and keywords
- Hash against the duplicate ledger and score uniqueness

Example:
  contentforge generate B001
  contentforge generate B001 --types intro,analysis --augment
  contentforge generate B001 --record-json record.json --out content.json`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringSliceVar(&genTypes, "types", []string{"intro"}, "content types to generate (intro, analysis, guide, tips)")
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", 5*time.Minute, "overall timeout")
	generateCmd.Flags().BoolVar(&genAugment, "augment", false, "enable generative augmentation of insufficient fields")
	generateCmd.Flags().StringSliceVar(&genAllowIDs, "allow", nil, "record ids allowed to augment even when --augment is off")
	generateCmd.Flags().StringVar(&genProvider, "llm-provider", "", "LLM provider (gemini, openai)")
	generateCmd.Flags().StringVar(&genModel, "llm-model", "", "LLM model name")
	generateCmd.Flags().StringVar(&genRecordJSON, "record-json", "", "load the record from a JSON file instead of the store")
	generateCmd.Flags().StringVar(&genOut, "out", "", "write the content bundle to this path (default: stdout)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	recordID := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), genTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyGenerateFlags(cfg)

	types, err := parseContentTypes(genTypes)
	if err != nil {
		return err
	}

	st, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if genRecordJSON != "" {
		if err := seedRecordFromFile(st, genRecordJSON); err != nil {
			return err
		}
	}

	invoker, err := buildInvoker(cfg)
	if err != nil {
		return err
	}

	assembler := pipeline.NewAssembler(cfg, invoker, st)

	var bundles []*model.OptimizedContent
	for _, ct := range types {
		res := assembler.Process(ctx, recordID, ct)
		switch {
		case res.Err != nil:
			return fmt.Errorf("generate %s/%s: %w", recordID, ct, res.Err)
		case res.Skipped:
			fmt.Fprintf(os.Stderr, "✓ %s/%s already generated, skipping\n", recordID, ct)
		case res.Duplicate:
			fmt.Fprintf(os.Stderr, "⚠ %s/%s is a duplicate of previously published content, not persisted\n", recordID, ct)
			bundles = append(bundles, res.Content)
		default:
			fmt.Fprintf(os.Stderr, "✓ %s/%s generated (uniqueness %.2f)\n", recordID, ct, res.Content.UniquenessScore)
			bundles = append(bundles, res.Content)
		}
	}

	return writeBundles(bundles, genOut)
}

// applyGenerateFlags overlays command flags onto the loaded config.
func applyGenerateFlags(cfg *model.Config) {
	if genAugment {
		cfg.Augment.Enabled = true
	}
	if len(genAllowIDs) > 0 {
		cfg.Augment.AllowedIDs = append(cfg.Augment.AllowedIDs, genAllowIDs...)
	}
	if genProvider != "" {
		cfg.LLM.Provider = genProvider
		cfg.LLM.APIKey = "" // force re-resolution against the new provider's env var
	}
	if genModel != "" {
		cfg.LLM.Model = genModel
	}
}

// seedRecordFromFile loads a BenefitRecord JSON file into an in-memory
// store, for offline runs without a database.
func seedRecordFromFile(st store.Store, path string) error {
	mem, ok := st.(*store.Memory)
	if !ok {
		return fmt.Errorf("--record-json requires the in-memory store (unset DATABASE_URL)")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read record file: %w", err)
	}
	var rec model.BenefitRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("parse record file: %w", err)
	}
	if rec.ID == "" {
		return fmt.Errorf("record file %s has no id", path)
	}
	mem.AddRecord(rec)
	return nil
}

// writeBundles emits the generated bundles as JSON.
func writeBundles(bundles []*model.OptimizedContent, outPath string) error {
	if len(bundles) == 0 {
		return nil
	}

	var payload any = bundles
	if len(bundles) == 1 {
		payload = bundles[0]
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	data = append(data, '\n')

	if outPath == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outPath)
	return nil
}
