// Package extract pulls structured sub-fields out of free benefit text with
// regex and keyword heuristics. Every extractor is pure and deterministic:
// identical input text yields byte-identical output, absence is an ordinary
// ok=false, and nothing here performs I/O.
package extract

import (
	"regexp"
	"strings"
)

// amountPatterns are tried in priority order; the first variant that
// matches anywhere in the text wins. All variants anchor on the Korean
// currency shape: digit groups, an optional 만/억 scale word, and 원.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,3}(?:,\d{3})*(?:만|억)?원`),
	regexp.MustCompile(`월\s*\d{1,3}(?:,\d{3})*(?:만|억)?원`),
	regexp.MustCompile(`\d{1,3}(?:,\d{3})*(?:만|억)?원\s*지원`),
	regexp.MustCompile(`최대\s*\d{1,3}(?:,\d{3})*(?:만|억)?원`),
}

// Amount returns the first monetary amount found in the text.
func Amount(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	for _, pattern := range amountPatterns {
		if m := pattern.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}

// AmountOr returns the extracted amount or a fallback.
func AmountOr(text, fallback string) string {
	if amount, ok := Amount(text); ok {
		return amount
	}
	return fallback
}

// benefitTypes is the closed vocabulary of benefit forms, checked in order.
var benefitTypes = []string{"현금", "바우처", "서비스", "대출", "세제혜택", "교육", "의료", "주거"}

// BenefitType returns the first benefit-form keyword present in the text.
func BenefitType(text string) (string, bool) {
	for _, t := range benefitTypes {
		if strings.Contains(text, t) {
			return t, true
		}
	}
	return "", false
}

// BenefitTypeOr returns the extracted benefit type or a fallback.
func BenefitTypeOr(text, fallback string) string {
	if t, ok := BenefitType(text); ok {
		return t
	}
	return fallback
}
