package resolve

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// CleanText normalizes a raw source value: HTML markup is reduced to its
// visible text, whitespace runs collapse to single spaces, and the result
// is trimmed. Values without markup pass through untouched apart from
// whitespace normalization.
func CleanText(s string) string {
	if strings.ContainsAny(s, "<>") && looksLikeHTML(s) {
		s = stripHTML(s)
	}
	return CollapseWhitespace(s)
}

// CollapseWhitespace trims and folds all whitespace runs, including the
// stray newlines the upstream API scatters through bullet lists.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

func looksLikeHTML(s string) bool {
	open := strings.IndexByte(s, '<')
	if open < 0 {
		return false
	}
	close := strings.IndexByte(s[open:], '>')
	return close > 1
}

// stripHTML extracts the visible text of an HTML fragment, skipping
// script/style subtrees. Upstream records occasionally embed markup in
// their free-text fields.
func stripHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return buf.String()
}
