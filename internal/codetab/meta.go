package codetab

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/shlex"
)

var reOpening = regexp.MustCompile("^(~{3,}|`{3,})[ ]*" +
	`(?:\{?\.?([a-zA-Z0-9_+-]*))?[ ]*` +
	`(?:hl_lines=("[^"]*"|'[^']*'))?[ ]*` +
	`\}?[ ]*$`)

type opening struct {
	fence          string
	lang           string
	highlightLines []int
}

// parseOpening reports whether line opens a fence. Malformed hl_lines values
// are ignored rather than rejecting the fence.
func parseOpening(line string) (*opening, bool) {
	all := reOpening.FindStringSubmatch(strings.TrimSuffix(line, "\r"))
	if all == nil {
		return nil, false
	}

	open := &opening{fence: all[1], lang: all[2]}

	if len(all[3]) > 0 {
		lines, err := parseHighlightLines(all[3][1 : len(all[3])-1])
		if err == nil {
			open.highlightLines = lines
		}
	}

	return open, true
}

func parseHighlightLines(value string) ([]int, error) {
	words, err := shlex.Split(value)
	if err != nil {
		return nil, err
	}

	var lines []int

	for _, word := range words {
		n, err := strconv.Atoi(word)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid line number %q", word)
		}

		lines = append(lines, n)
	}

	return lines, nil
}

// isClosing reports whether line is the closer for fence: the same marker
// string followed by nothing but spaces.
func isClosing(line, fence string) bool {
	line = strings.TrimSuffix(line, "\r")

	rest, ok := strings.CutPrefix(line, fence)
	if !ok {
		return false
	}

	return strings.Trim(rest, " ") == ""
}
