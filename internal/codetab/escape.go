package codetab

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Escape entity-escapes &, <, > and ". Ampersands are replaced in the same
// single pass, so entities produced here are never escaped again.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}
