// Package sanitize cleans free text that comes back from a board before it
// is shown to the model.
package sanitize

import (
	"html"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func strictPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Sanitize strips HTML markup and invisible characters from s.
func Sanitize(s string) string {
	return FilterHTMLTags(FilterInvisibleCharacters(s))
}

// FilterHTMLTags removes every HTML element from s, keeping the text inside.
// Long text and update bodies on Monday.com are stored as HTML.
func FilterHTMLTags(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return s
	}
	return html.UnescapeString(strictPolicy().Sanitize(s))
}

// FilterInvisibleCharacters drops zero-width and bidi control characters,
// keeping ordinary whitespace.
func FilterInvisibleCharacters(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return r
		}
		if unicode.Is(unicode.Cf, r) {
			return -1
		}
		return r
	}, s)
}
