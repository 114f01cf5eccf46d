package codetab

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var punctuation = strings.NewReplacer(
	"\u2018", "&lsquo;",
	"\u2019", "&rsquo;",
	"\u201c", "&ldquo;",
	"\u201d", "&rdquo;",
	"\u2013", "&ndash;",
	"\u00a0", "",
)

var nonASCII = runes.Remove(runes.Predicate(func(r rune) bool {
	return r > unicode.MaxASCII
}))

// Normalize rewrites curly quotes and en-dashes as entities, drops
// non-breaking spaces, then drops whatever is still outside ASCII. Input that
// is not valid UTF-8 is returned unchanged.
func Normalize(content string) string {
	if !utf8.ValidString(content) {
		return content
	}

	result, _, err := transform.String(nonASCII, punctuation.Replace(content))
	if err != nil {
		return content
	}

	return result
}
