package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/bojo24/contentforge/internal/augment"
	"github.com/bojo24/contentforge/internal/cache"
	"github.com/bojo24/contentforge/internal/llm"
	"github.com/bojo24/contentforge/internal/model"
	"github.com/bojo24/contentforge/internal/store"
)

// buildStore opens the configured persistence backend. Without a database
// URL the in-memory store is used: useful for offline runs against a
// record file, useless for anything that must survive the process.
func buildStore(ctx context.Context, cfg *model.Config) (store.Store, error) {
	if cfg.Store.DatabaseURL == "" {
		if cfg.Output.Verbose {
			fmt.Fprintln(os.Stderr, "No DATABASE_URL configured, using in-memory store (nothing is persisted)")
		}
		return store.NewMemory(), nil
	}

	pg, err := store.OpenPostgres(ctx, cfg.Store.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		return nil, err
	}
	return pg, nil
}

// buildInvoker creates the augmentation invoker from the configured
// provider and policy. A blank provider yields a disabled invoker rather
// than an error: publishing public data unaugmented is the default mode.
func buildInvoker(cfg *model.Config) (*augment.Invoker, error) {
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "gemini", "google":
			cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}

	policy := augment.NewPolicy(cfg.Augment.Enabled, cfg.Augment.AllowedIDs)
	invoker := augment.NewInvoker(provider, policy, cfg.Output.Verbose)
	if cfg.Augment.CacheDir != "" {
		replies := cache.NewLayeredCache(cfg.Augment.CacheTTL, cfg.Augment.CacheDir, cfg.Augment.CacheTTL)
		invoker.UseReplyCache(replies, cfg.Augment.CacheTTL)
	}
	return invoker, nil
}

// parseContentTypes validates the --types values.
func parseContentTypes(names []string) ([]model.ContentType, error) {
	if len(names) == 0 {
		return []model.ContentType{model.ContentTypeIntro}, nil
	}

	valid := map[string]model.ContentType{
		"intro":    model.ContentTypeIntro,
		"analysis": model.ContentTypeAnalysis,
		"guide":    model.ContentTypeGuide,
		"tips":     model.ContentTypeTips,
	}
	var types []model.ContentType
	for _, name := range names {
		ct, ok := valid[name]
		if !ok {
			return nil, fmt.Errorf("unknown content type %q (valid: intro, analysis, guide, tips)", name)
		}
		types = append(types, ct)
	}
	return types, nil
}
