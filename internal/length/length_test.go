package length

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bojo24/contentforge/internal/model"
)

func TestNeedsAugmentation(t *testing.T) {
	tests := []struct {
		name string
		text string
		min  int
		want bool
	}{
		{"sentinel always needs", model.NoInformation, 100, true},
		{"empty always needs", "", 100, true},
		{"short text needs", strings.Repeat("가", 40), 100, true},
		{"exact minimum is sufficient", strings.Repeat("가", 100), 100, false},
		{"long text sufficient", strings.Repeat("가", 150), 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsAugmentation(tt.text, tt.min); got != tt.want {
				t.Errorf("NeedsAugmentation(%d runes, min %d) = %v, want %v",
					utf8.RuneCountInString(tt.text), tt.min, got, tt.want)
			}
		})
	}
}

func TestNeedsAugmentation_CollapsesWhitespace(t *testing.T) {
	// 50 hangul runes separated by newline runs: raw length is well over
	// 100 runes, but collapsed to single spaces it is 99.
	padded := strings.Repeat("가\n\n  ", 50)
	if !NeedsAugmentation(padded, 100) {
		t.Error("expected collapsed 99-rune text to need augmentation at min 100")
	}
}

func TestTargetFor_Buckets(t *testing.T) {
	tests := []struct {
		current int
		want    Target
	}{
		{0, Target{200, 300, 30}},
		{40, Target{200, 300, 30}},
		{100, Target{200, 300, 30}},
		{101, Target{400, 500, 50}},
		{300, Target{400, 500, 50}},
		{301, Target{700, 800, 80}},
		{600, Target{700, 800, 80}},
		{1000, Target{1200, 1500, 100}},
	}

	for _, tt := range tests {
		if got := TargetFor(tt.current); got != tt.want {
			t.Errorf("TargetFor(%d) = %+v, want %+v", tt.current, got, tt.want)
		}
	}
}

func TestTargetFor_MinMonotonic(t *testing.T) {
	prev := TargetFor(0).Min
	for current := 1; current <= 2000; current++ {
		min := TargetFor(current).Min
		if min < prev {
			t.Fatalf("min not monotonic: TargetFor(%d).Min = %d < %d", current, min, prev)
		}
		prev = min
	}
}

func TestNormalize_WithinWindowUnchanged(t *testing.T) {
	target := Target{Min: 200, Max: 300, Overflow: 30}
	text := strings.Repeat("가", 250)
	if got := Normalize(text, "원본", target); got != text {
		t.Errorf("in-window text should pass through unchanged")
	}
}

func TestNormalize_TruncatesAtSentence(t *testing.T) {
	// 340 runes with a sentence ending at rune 260: the cut must land
	// there, between min 200 and ceiling 330.
	target := Target{Min: 200, Max: 300, Overflow: 30}
	text := strings.Repeat("가", 259) + "." + strings.Repeat("나", 80)

	got := Normalize(text, "", target)
	n := utf8.RuneCountInString(got)
	if n != 260 {
		t.Errorf("expected cut at sentence end (260 runes), got %d", n)
	}
	if !strings.HasSuffix(got, ".") {
		t.Error("expected result to end at the sentence terminator")
	}
	if n < target.Min || n > target.Max+target.Overflow {
		t.Errorf("length %d outside [%d, %d]", n, target.Min, target.Max+target.Overflow)
	}
}

func TestNormalize_HardCutWithoutTerminator(t *testing.T) {
	target := Target{Min: 200, Max: 300, Overflow: 30}
	text := strings.Repeat("가", 400) // no terminators at all

	got := Normalize(text, "", target)
	if n := utf8.RuneCountInString(got); n != target.Max {
		t.Errorf("expected hard cut at max %d, got %d", target.Max, n)
	}
}

func TestNormalize_TerminatorBeforeMinIgnored(t *testing.T) {
	// The only terminator sits at rune 100, below min: hard-cut at max.
	target := Target{Min: 200, Max: 300, Overflow: 30}
	text := strings.Repeat("가", 99) + "." + strings.Repeat("나", 300)

	got := Normalize(text, "", target)
	if n := utf8.RuneCountInString(got); n != target.Max {
		t.Errorf("expected hard cut at max %d, got %d", target.Max, n)
	}
}

func TestNormalize_ShortMergesOriginalFirst(t *testing.T) {
	target := Target{Min: 200, Max: 300, Overflow: 30}
	original := strings.Repeat("원", 120)
	augmented := strings.Repeat("가", 100)

	got := Normalize(augmented, original, target)
	if !strings.HasPrefix(got, original) {
		t.Error("merged text must start with the original")
	}
	if !strings.Contains(got, "\n\n") {
		t.Error("expected paragraph break between original and augmented")
	}
	n := utf8.RuneCountInString(got)
	if n < target.Min || n > target.Max+target.Overflow {
		t.Errorf("merged length %d outside [%d, %d]", n, target.Min, target.Max+target.Overflow)
	}
}

func TestNormalize_MergeStillShortReturnedAsIs(t *testing.T) {
	target := Target{Min: 200, Max: 300, Overflow: 30}
	original := strings.Repeat("원", 30)
	augmented := strings.Repeat("가", 50)

	got := Normalize(augmented, original, target)
	want := original + "\n\n" + augmented
	if got != want {
		t.Errorf("short concatenation must be returned as-is, got %d runes", utf8.RuneCountInString(got))
	}
}

func TestNormalize_MergeOverflowRefitted(t *testing.T) {
	target := Target{Min: 200, Max: 300, Overflow: 30}
	original := strings.Repeat("원", 249) + "."
	augmented := strings.Repeat("가", 150)

	got := Normalize(augmented, original, target)
	n := utf8.RuneCountInString(got)
	if n < target.Min || n > target.Max+target.Overflow {
		t.Errorf("refitted merge length %d outside [%d, %d]", n, target.Min, target.Max+target.Overflow)
	}
	if !strings.HasSuffix(got, ".") {
		t.Error("expected refitted merge to cut at the sentence terminator")
	}
}

func TestNormalize_SentinelOriginalNotMerged(t *testing.T) {
	target := Target{Min: 200, Max: 300, Overflow: 30}
	augmented := strings.Repeat("가", 100)

	got := Normalize(augmented, model.NoInformation, target)
	if strings.Contains(got, model.NoInformation) {
		t.Error("sentinel original must not leak into merged output")
	}
}
