package codetab

import "strings"

// extract replaces every well-formed fence in text with a placeholder line
// and queues the corresponding CodeBlock. Fences are matched top to bottom;
// an opening line without a matching closer is left as plain text and
// scanning resumes on the following line. Fences rejected by the language
// filter are copied through whole.
func (s *state) extract(text string) []string {
	lines := strings.Split(text, "\n")
	result := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		open, ok := parseOpening(lines[i])
		if !ok {
			result = append(result, lines[i])

			continue
		}

		end := closingLine(lines, i+1, open.fence)
		if end < 0 {
			result = append(result, lines[i])

			continue
		}

		if !s.filter(s.opts.Language(open.lang)) {
			result = append(result, lines[i:end+1]...)
			i = end

			continue
		}

		block := &CodeBlock{
			Lang:           open.lang,
			HighlightLines: open.highlightLines,
			Code:           body(lines[i+1 : end]),
			StartLine:      i + 1,
			EndLine:        end + 1,
		}

		result = append(result, s.holder.line(len(s.queue)))
		s.queue = append(s.queue, block)
		i = end
	}

	s.log.Debug("extracted fences", "count", len(s.queue))

	return result
}

func closingLine(lines []string, from int, fence string) int {
	for i := from; i < len(lines); i++ {
		if isClosing(lines[i], fence) {
			return i
		}
	}

	return -1
}

// body joins the lines between the fences, keeping the trailing newline of
// the last one.
func body(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	return strings.Join(lines, "\n") + "\n"
}
