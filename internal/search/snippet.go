package search

import (
	"strings"
	"unicode/utf8"
)

// snippetRadius is how many characters of context surround the match.
const snippetRadius = 100

// Snippet extracts the content around the first case-insensitive
// occurrence of query: snippetRadius characters before the match
// through snippetRadius characters after it, with an ellipsis on each
// side that was clipped. Returns "" when the query does not occur in
// the content, even if it matched the title or subtitle.
func Snippet(content, query string) string {
	if query == "" {
		return ""
	}
	idx := strings.Index(strings.ToLower(content), strings.ToLower(query))
	if idx < 0 {
		return ""
	}

	// Clip on rune boundaries so the window never splits a multibyte
	// character.
	start := idx - snippetRadius
	if start < 0 {
		start = 0
	}
	for start > 0 && !utf8.RuneStart(content[start]) {
		start--
	}
	end := idx + len(query) + snippetRadius
	if end > len(content) {
		end = len(content)
	}
	for end < len(content) && !utf8.RuneStart(content[end]) {
		end++
	}

	snippet := content[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(content) {
		snippet += "..."
	}
	return snippet
}
