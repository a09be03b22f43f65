// Package length holds the pure length policy: sufficiency classification,
// target-length buckets for augmentation, and post-augmentation
// normalization. All counts are rune counts; the corpus is Korean and byte
// lengths would triple every target.
package length

import (
	"strings"
	"unicode/utf8"

	"github.com/bojo24/contentforge/internal/model"
	"github.com/bojo24/contentforge/internal/resolve"
)

// Target is the desired length window for an augmented field. The final
// text must land in [Min, Max+Overflow]; the overflow allowance exists so
// a sentence can finish naturally past Max.
type Target struct {
	Min      int `json:"min"`
	Max      int `json:"max"`
	Overflow int `json:"overflow"`
}

// Runes counts the content length the way the whole pipeline does:
// whitespace-collapsed, trimmed, runes.
func Runes(s string) int {
	return utf8.RuneCountInString(resolve.CollapseWhitespace(s))
}

// NeedsAugmentation classifies a field's text against its minimum length.
// The no-information marker always needs augmentation. Pure and
// deterministic: no I/O.
func NeedsAugmentation(text string, min int) bool {
	if text == "" || text == model.NoInformation {
		return true
	}
	return Runes(text) < min
}

// TargetFor computes the target window for a field whose current length is
// current. Fixed buckets below 600; proportional growth above, so long
// source text is expanded rather than squashed into a fixed window.
// Total over all non-negative inputs, and Min never decreases as current
// grows.
func TargetFor(current int) Target {
	switch {
	case current <= 100:
		return Target{Min: 200, Max: 300, Overflow: 30}
	case current <= 300:
		return Target{Min: 400, Max: 500, Overflow: 50}
	case current <= 600:
		return Target{Min: 700, Max: 800, Overflow: 80}
	default:
		return Target{
			Min:      current * 12 / 10,
			Max:      current * 15 / 10,
			Overflow: current / 10,
		}
	}
}

// sentence terminators the normalizer may cut at. Comma is deliberately
// not included: cutting mid-clause reads worse than a hard cut.
const sentenceTerminators = ".。．!?！？"

// Normalize fits augmented text into the target window without fabricating
// content.
//
// Over the ceiling: truncate to Max+Overflow runes, then walk back to the
// nearest sentence terminator still at offset >= Min and cut there
// (inclusive); with no terminator past Min, hard-cut at Max. Under the
// floor: prepend the original text (paragraph break between) and re-fit;
// if the concatenation is still short it is returned as-is; there is
// nothing left to add.
func Normalize(augmented, original string, t Target) string {
	n := utf8.RuneCountInString(augmented)

	if n > t.Max+t.Overflow {
		return cutAtSentence(augmented, t)
	}

	if n < t.Min {
		merged := augmented
		if strings.TrimSpace(original) != "" && original != model.NoInformation {
			merged = strings.TrimSpace(original) + "\n\n" + augmented
		}
		if utf8.RuneCountInString(merged) > t.Max+t.Overflow {
			return cutAtSentence(merged, t)
		}
		return merged
	}

	return augmented
}

func cutAtSentence(s string, t Target) string {
	runes := []rune(s)
	ceiling := t.Max + t.Overflow
	if len(runes) > ceiling {
		runes = runes[:ceiling]
	}

	for i := len(runes); i >= t.Min && i >= 1; i-- {
		if strings.ContainsRune(sentenceTerminators, runes[i-1]) {
			return string(runes[:i])
		}
	}

	if len(runes) > t.Max {
		runes = runes[:t.Max]
	}
	return string(runes)
}
