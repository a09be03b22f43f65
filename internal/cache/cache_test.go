package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey_StableAndPromptSensitive(t *testing.T) {
	a := Key("gemini", "prompt one")
	if a != Key("gemini", "prompt one") {
		t.Error("same provider and prompt must yield the same key")
	}
	if a == Key("gemini", "prompt two") {
		t.Error("different prompts must yield different keys")
	}
	if a == Key("openai", "prompt one") {
		t.Error("different providers must yield different keys")
	}
	if !strings.HasPrefix(a, "contentforge:v1:") {
		t.Errorf("key missing version prefix: %s", a)
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("k"); found {
		t.Error("unexpected hit on empty cache")
	}
	if err := c.Set("k", []byte("reply"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "reply" {
		t.Errorf("Get = %q, %v; want reply, true", val, found)
	}

	c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("deleted key must miss")
	}
}

func TestDiskCache_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	c := NewDiskCache(dir, time.Hour)
	if err := c.Set(Key("gemini", "p"), []byte("cached reply"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	reopened := NewDiskCache(dir, time.Hour)
	val, found := reopened.Get(Key("gemini", "p"))
	if !found || string(val) != "cached reply" {
		t.Errorf("Get after reopen = %q, %v; want cached reply, true", val, found)
	}
}

func TestDiskCache_ExpiredEntryDropped(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	if err := c.Set("k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expired entry must miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed disk only, as a previous run would have.
	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Hour)
	if val, found := layered.Get("k"); !found || string(val) != "v" {
		t.Fatalf("layered Get = %q, %v; want v, true", val, found)
	}

	// Remove the disk entry; the promoted memory copy must still answer.
	disk.Delete("k")
	if _, found := layered.Get("k"); !found {
		t.Error("disk hit was not promoted to memory")
	}
}
