// Package normalize strips markup artifacts out of harvested comment text.
package normalize

import (
	"html"
	"regexp"
	"strings"
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	mentionPattern    = regexp.MustCompile(`@[A-Za-z0-9_]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Clean decodes HTML entities, removes URLs and @-mentions, and collapses
// whitespace runs to single spaces. Empty input comes back unchanged.
func Clean(raw string) string {
	if raw == "" {
		return raw
	}

	s := html.UnescapeString(raw)
	s = urlPattern.ReplaceAllString(s, " ")
	s = mentionPattern.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}
