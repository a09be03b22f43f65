package extract

import "regexp"

var hangulTokenPattern = regexp.MustCompile(`[가-힣]{2,5}`)

const keywordsPerField = 3

// Keywords derives the search keyword set for a record: a fixed base built
// from the record identity plus the leading Hangul tokens of the target and
// benefit texts. Order is deterministic (insertion order, duplicates
// dropped).
func Keywords(name, category, org, target, benefit string) []string {
	base := []string{
		name,
		category,
		org,
		"보조금",
		"정부 지원금",
		name + " 신청",
		name + " 자격",
		name + " 받는 방법",
		category + " 보조금",
	}

	seen := make(map[string]struct{}, len(base)+2*keywordsPerField)
	var out []string
	add := func(k string) {
		if k == "" {
			return
		}
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}

	for _, k := range base {
		add(k)
	}
	for _, text := range []string{target, benefit} {
		tokens := hangulTokenPattern.FindAllString(text, -1)
		if len(tokens) > keywordsPerField {
			tokens = tokens[:keywordsPerField]
		}
		for _, tok := range tokens {
			add(tok)
		}
	}
	return out
}
