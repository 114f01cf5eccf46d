package markdown

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// htmlStash keeps rendered fragments for one conversion. Its tokens are
// plain words so goldmark passes them through as paragraph text.
type htmlStash struct {
	prefix    string
	token     *regexp.Regexp
	fragments []string
}

func newNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// newHTMLStash picks a token prefix that does not occur in source.
func newHTMLStash(source string, nonce func() string, log *slog.Logger) *htmlStash {
	for {
		prefix := "codetabstash" + nonce() + "x"
		if !strings.Contains(source, prefix) {
			return &htmlStash{
				prefix: prefix,
				token:  regexp.MustCompile(regexp.QuoteMeta(prefix) + `[0-9]+`),
			}
		}

		log.Debug("regenerated stash nonce", "collision", prefix)
	}
}

// Store implements codetab.Stash.
func (s *htmlStash) Store(html string) string {
	s.fragments = append(s.fragments, html)

	return s.prefix + strconv.Itoa(len(s.fragments)-1)
}

// lookup returns the fragment for a token line.
func (s *htmlStash) lookup(line string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), s.prefix)
	if !ok {
		return "", false
	}

	index, err := strconv.Atoi(rest)
	if err != nil || index < 0 || index >= len(s.fragments) {
		return "", false
	}

	return s.fragments[index], true
}

// restore replaces tokens that reached the output without becoming a
// Stashed node, such as those inside raw HTML blocks.
func (s *htmlStash) restore(output []byte) []byte {
	if len(s.fragments) == 0 {
		return output
	}

	return s.token.ReplaceAllFunc(output, func(token []byte) []byte {
		if fragment, ok := s.lookup(string(token)); ok {
			return []byte(fragment)
		}

		return token
	})
}

// isolate surrounds token lines with blank lines so each one parses as a
// paragraph of its own.
func (s *htmlStash) isolate(lines []string) []string {
	result := make([]string, 0, len(lines))

	for i, line := range lines {
		if _, ok := s.lookup(line); !ok {
			result = append(result, line)

			continue
		}

		if i > 0 && len(strings.TrimSpace(lines[i-1])) != 0 {
			result = append(result, "")
		}

		result = append(result, line)

		if i < len(lines)-1 && len(strings.TrimSpace(lines[i+1])) != 0 {
			result = append(result, "")
		}
	}

	return result
}
