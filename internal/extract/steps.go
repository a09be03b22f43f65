package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// numbered step markers: circled digits or "1." / "9)" style
	stepPattern = regexp.MustCompile(`[①-⑳1-9][.)]\s*([^①-⑳1-9\n]+)`)
	// sentence/line boundaries for the unnumbered fallback
	stepSplitPattern = regexp.MustCompile(`[.\n]`)
	// document list separators: commas, newlines, bullet characters
	documentSplitPattern = regexp.MustCompile(`[,\n○•\-]`)
	// leading "1." / "3)" numbering on a document line
	docNumberPattern = regexp.MustCompile(`^(\d+)[.)]\s*(.+)$`)
	// leading bullet or checkmark on a continuation line
	docBulletPattern = regexp.MustCompile(`^[✓•\-*]\s*(.*)$`)
)

const (
	maxFallbackSteps = 5
	minStepRunes     = 10
	minDocumentRunes = 2
	maxDocumentRunes = 50
)

// ApplySteps parses an application-method text into an ordered step list.
// Numbered markers win; without any, the text is split on sentence
// boundaries, short fragments are dropped, and the result is capped.
func ApplySteps(method string) []string {
	if strings.TrimSpace(method) == "" {
		return nil
	}

	var steps []string
	for _, m := range stepPattern.FindAllStringSubmatch(method, -1) {
		if s := strings.TrimSpace(m[1]); s != "" {
			steps = append(steps, s)
		}
	}
	if len(steps) > 0 {
		return steps
	}

	for _, line := range stepSplitPattern.Split(method, -1) {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) > minStepRunes {
			steps = append(steps, line)
			if len(steps) == maxFallbackSteps {
				break
			}
		}
	}
	return steps
}

// Documents splits a raw document field into checklist entries, keeping
// only entries whose length is strictly between the noise floor and the
// prose ceiling.
func Documents(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var docs []string
	for _, part := range documentSplitPattern.Split(raw, -1) {
		part = strings.TrimSpace(part)
		n := utf8.RuneCountInString(part)
		if n > minDocumentRunes && n < maxDocumentRunes {
			docs = append(docs, part)
		}
	}
	return docs
}

// FormatDocuments reflows a document list whose line breaks were mangled
// upstream (checkmarks on their own lines, entries split mid-phrase) into
// numbered entries. An entry starts at a "1." style marker; bullet-only
// lines are dropped and other lines are folded into the current entry.
func FormatDocuments(raw string) []string {
	lines := splitNonEmptyLines(raw)
	if len(lines) == 0 {
		return nil
	}

	var formatted []string
	var current []string
	number := ""

	flush := func() {
		if len(current) > 0 && number != "" {
			formatted = append(formatted, number+". "+strings.Join(current, " "))
		}
		current = nil
	}

	for _, line := range lines {
		if m := docNumberPattern.FindStringSubmatch(line); m != nil {
			flush()
			number = m[1]
			current = []string{strings.TrimSpace(m[2])}
			continue
		}
		if m := docBulletPattern.FindStringSubmatch(line); m != nil {
			if content := strings.TrimSpace(m[1]); content != "" && len(current) > 0 {
				current = append(current, content)
			}
			continue
		}
		if len(current) > 0 {
			current = append(current, line)
			continue
		}
		// first line carries no marker: open entry 1 with it
		number = "1"
		current = []string{line}
	}
	flush()

	if len(formatted) > 0 {
		return formatted
	}

	// no numbering anywhere: number the lines in order
	var items []string
	for _, line := range lines {
		if m := docBulletPattern.FindStringSubmatch(line); m != nil {
			line = strings.TrimSpace(m[1])
		}
		if line != "" {
			items = append(items, line)
		}
	}
	for i, item := range items {
		items[i] = strconv.Itoa(i+1) + ". " + item
	}
	return items
}

func splitNonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
