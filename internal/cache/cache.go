// Package cache stores generative service replies so a rerun over the
// same records does not pay for identical prompts twice. Keys are derived
// from the provider name and the full prompt, so any change to either
// misses.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the reply cache interface
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from the provider name and prompt
func Key(provider, prompt string) string {
	hash := sha256.Sum256([]byte(provider + "\x00" + prompt))
	return "contentforge:v1:" + hex.EncodeToString(hash[:])
}
