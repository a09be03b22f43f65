package unique

import "strings"

// MaxSampleSize caps how many previously stored bodies are compared
// against a candidate.
const MaxSampleSize = 100

// Score returns 1 minus the highest word-set Jaccard similarity between
// the candidate body and the sampled bodies. An empty sample set scores
// exactly 1.0: the first body in the corpus is unique by convention. The
// score is advisory metadata and never gates publication.
func Score(candidate string, samples []string) float64 {
	if len(samples) == 0 {
		return 1.0
	}
	if len(samples) > MaxSampleSize {
		samples = samples[:MaxSampleSize]
	}

	words := wordSet(candidate)
	maxSimilarity := 0.0
	for _, sample := range samples {
		if s := jaccard(words, wordSet(sample)); s > maxSimilarity {
			maxSimilarity = s
		}
	}

	score := 1.0 - maxSimilarity
	if score < 0 {
		return 0
	}
	return score
}

// jaccard computes |a ∩ b| / |a ∪ b| over word sets. Two empty sets are
// treated as dissimilar rather than identical so blank bodies never
// register as duplicates of each other.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// wordSet lowercases and splits on whitespace. No stemming, no stopword
// removal: the comparison is deliberately crude and cheap.
func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
