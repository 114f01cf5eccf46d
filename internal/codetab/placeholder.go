package codetab

import (
	"log/slog"
	"strconv"
	"strings"
)

const (
	placeholderPrefix = "<!-- codetab-"
	placeholderSuffix = " -->"
	nonceLength       = 12
)

// placeholder formats and recognizes the marker lines that stand in for
// extracted fences. The nonce is chosen so that the marker prefix never
// occurs in the document being processed.
type placeholder struct {
	prefix string
}

func newPlaceholder(text string, nonce func() string, log *slog.Logger) placeholder {
	for {
		prefix := placeholderPrefix + nonce() + "-"
		if !strings.Contains(text, prefix) {
			return placeholder{prefix: prefix}
		}

		log.Debug("regenerated placeholder nonce", "collision", prefix)
	}
}

func (p placeholder) line(index int) string {
	return p.prefix + strconv.Itoa(index) + placeholderSuffix
}

func (p placeholder) parse(line string) (int, bool) {
	rest, ok := strings.CutPrefix(line, p.prefix)
	if !ok {
		return 0, false
	}

	digits, ok := strings.CutSuffix(rest, placeholderSuffix)
	if !ok {
		return 0, false
	}

	index, err := strconv.Atoi(digits)
	if err != nil || index < 0 {
		return 0, false
	}

	return index, true
}
