// Package filter decides whether a normalized comment is noise or a
// candidate review.
package filter

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Filter is a deterministic, side-effect-free noise classifier. Each gate
// short-circuits to noise on match; the final domain gate short-circuits to
// noise on non-match.
type Filter struct {
	vocab        Vocabulary
	glyphPattern *regexp.Regexp
}

func New(vocab Vocabulary) *Filter {
	return &Filter{
		vocab:        vocab,
		glyphPattern: regexp.MustCompile(`^[` + regexp.QuoteMeta(vocab.LowInfoGlyphs) + `\s]+$`),
	}
}

// IsNoise reports whether text is worth discarding. Gates, in order:
// too short, boilerplate phrase (incl. a literal "?"), laughter/emoji only,
// and no camera-domain keyword at all.
func (f *Filter) IsNoise(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return true
	}

	if utf8.RuneCountInString(t) < f.vocab.MinLength {
		return true
	}

	for _, phrase := range f.vocab.NoisePhrases {
		if strings.Contains(t, phrase) {
			return true
		}
	}

	if f.glyphPattern.MatchString(t) {
		return true
	}

	for _, keyword := range f.vocab.DomainKeywords {
		if strings.Contains(t, keyword) {
			return false
		}
	}

	return true
}
