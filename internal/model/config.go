package model

import "time"

// Config is the full runtime configuration. Everything that behaves like
// policy (minimum lengths, the augmentation gate, rate limits) lives here
// and is passed into components explicitly; no component reads the
// environment on its own.
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Augment     AugmentConfig     `yaml:"augment"`
	Store       StoreConfig       `yaml:"store"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// LLMConfig configures the generative text service client.
type LLMConfig struct {
	// Provider name: "openai", "gemini", "" (disabled)
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	// Timeout in seconds for a single generate call
	Timeout   int `yaml:"timeout"`
	MaxTokens int `yaml:"max_tokens"`
}

// AugmentConfig is the authorization and sufficiency policy for
// augmentation. Enabled turns the invoker on globally; AllowedIDs
// authorizes individual records even when the global switch is off.
type AugmentConfig struct {
	Enabled    bool     `yaml:"enabled"`
	AllowedIDs []string `yaml:"allowed_ids"`

	// Per-field minimum lengths (runes). Text shorter than the minimum is
	// classified as insufficient and becomes a candidate for augmentation.
	MinSummaryLen int `yaml:"min_summary_len"`
	MinTargetLen  int `yaml:"min_target_len"`
	MinBenefitLen int `yaml:"min_benefit_len"`
	MinApplyLen   int `yaml:"min_apply_len"`

	// CacheDir enables the on-disk reply cache when set. Identical prompts
	// are answered from cache instead of a fresh generative call.
	CacheDir string        `yaml:"cache_dir"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// StoreConfig configures the persistence boundary.
type StoreConfig struct {
	// DatabaseURL is a postgres connection string. Empty selects the
	// in-memory store (dry runs, tests).
	DatabaseURL string `yaml:"database_url"`
	// RecordCacheTTL bounds the read-through record cache
	RecordCacheTTL time.Duration `yaml:"record_cache_ttl"`
	// SampleSize caps how many prior bodies the uniqueness scorer compares against
	SampleSize int `yaml:"sample_size"`
}

// ConcurrencyConfig bounds batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
	// AugmentDelay is the fixed pause inserted between successive
	// generative service calls to respect its rate ceiling.
	AugmentDelay time.Duration `yaml:"augment_delay"`
	// AugmentRPS and AugmentBurst feed the shared rate limiter.
	AugmentRPS   float64 `yaml:"augment_rps"`
	AugmentBurst int     `yaml:"augment_burst"`
}

// OutputConfig controls CLI output behavior.
type OutputConfig struct {
	Verbose bool   `yaml:"verbose"`
	Dir     string `yaml:"dir"`
}

// DefaultConfig returns the built-in defaults. The minimum lengths are
// editorial policy, not derived values: a summary under 200 runes reads as
// a stub, eligibility under 100 runes rarely names actual criteria.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "", // disabled by default: publish public data as-is
			Timeout:   30,
			MaxTokens: 1500,
		},
		Augment: AugmentConfig{
			Enabled:       false,
			MinSummaryLen: 200,
			MinTargetLen:  100,
			MinBenefitLen: 150,
			MinApplyLen:   80,
			CacheTTL:      24 * time.Hour,
		},
		Store: StoreConfig{
			RecordCacheTTL: 10 * time.Minute,
			SampleSize:     100,
		},
		Concurrency: ConcurrencyConfig{
			Workers:      4,
			AugmentDelay: 3 * time.Second,
			AugmentRPS:   0.5,
			AugmentBurst: 1,
		},
		Output: OutputConfig{
			Dir: "./contentforge-out",
		},
	}
}
