// Package unique guards against near-duplicate published content: a
// canonical hash for exact-duplicate detection across runs, and a
// word-set similarity score for corpus-wide distinctiveness.
package unique

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// excerptRunes bounds the target and benefit projections so a record's
// hash does not churn on trailing boilerplate edits.
const excerptRunes = 200

// HashInput is the canonical projection of a record's core content. The
// record id is part of the projection on purpose: the ledger exists to
// catch the same record being republished, not different records sharing
// boilerplate phrasing.
type HashInput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
	Target  string `json:"target"`
	Benefit string `json:"benefit"`
}

// ContentHash canonicalizes the projection to JSON and returns its
// SHA-256 digest as lowercase hex. Struct marshaling keeps the key order
// fixed, so identical inputs always produce identical digests.
func ContentHash(in HashInput) string {
	in.Target = Excerpt(in.Target, excerptRunes)
	in.Benefit = Excerpt(in.Benefit, excerptRunes)

	// Marshaling a flat struct of strings cannot fail.
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Hash digests an arbitrary content body, for ledger entries that track
// a whole generated text rather than a field projection.
func Hash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Excerpt returns at most n leading runes of s.
func Excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
