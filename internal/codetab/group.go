package codetab

import (
	"fmt"
	"strings"
)

type emitFunc func(group *Group) string

// group walks the annotated lines and collapses each run of placeholder
// lines into the single line returned by emit. Blank lines between two
// placeholders belong to the run; blank lines after the last one are kept,
// as is the line that ends the run.
func (s *state) group(lines []string, emit emitFunc) []string {
	var (
		result = make([]string, 0, len(lines))
		run    int
		blanks []string
	)

	closeRun := func() {
		result = append(result, emit(s.take(run)))
		result = append(result, blanks...)
		run, blanks = 0, nil
	}

	for _, line := range lines {
		if _, ok := s.holder.parse(line); ok {
			run++
			blanks = nil

			continue
		}

		if run > 0 {
			if len(strings.TrimSpace(line)) == 0 {
				blanks = append(blanks, line)

				continue
			}

			closeRun()
		}

		result = append(result, line)
	}

	// Blocks still queued at the end of the document form one last tab set,
	// whatever the ShowAllAsTabs policy.
	if rest := s.pop(len(s.queue) - s.head); len(rest) > 0 {
		result = append(result, emit(s.newTabSet(rest)))
		result = append(result, blanks...)
	}

	return result
}

// take binds the next n queued blocks into a group according to the
// ShowAllAsTabs policy.
func (s *state) take(n int) *Group {
	blocks := s.pop(n)

	if len(blocks) == 1 && !s.opts.ShowAllAsTabs {
		return &Group{TabSet: TabSet{Blocks: blocks}}
	}

	return s.newTabSet(blocks)
}

func (s *state) newTabSet(blocks CodeBlocks) *Group {
	group := &Group{
		Tabbed: true,
		TabSet: TabSet{Prefix: fmt.Sprintf("tab-%d-", s.tabSets), Blocks: blocks},
	}
	s.tabSets++

	return group
}

func (s *state) pop(n int) CodeBlocks {
	if avail := len(s.queue) - s.head; n > avail {
		n = avail
	}

	blocks := s.queue[s.head : s.head+n]
	s.head += n

	return blocks
}
