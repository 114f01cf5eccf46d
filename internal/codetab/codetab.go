// Package codetab turns runs of adjacent fenced code blocks in a Markdown
// document into tabbed HTML widgets.
//
// A Preprocessor works on the raw lines of a document before the host
// Markdown engine parses them. Each fence is first swapped for a placeholder
// line; runs of placeholders (blank lines may separate them) are then
// rendered as one widget, handed to the host's Stash, and replaced by the
// single token line the stash returns.
package codetab

import (
	"encoding/binary"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/ezerfernandes/codetabs/internal/logging"
	"github.com/google/uuid"
)

// Stash stores a rendered HTML fragment and returns the token the host will
// later replace with it. The token must survive Markdown parsing verbatim.
type Stash interface {
	Store(html string) string
}

// ErrInvalidPattern is returned by [New] when a language pattern does not
// compile.
var ErrInvalidPattern = errors.New("invalid language pattern")

// Preprocessor is safe for concurrent use; every call to Run or Analyze gets
// its own state.
type Preprocessor struct {
	opts   Options
	filter filterFunc
	log    *slog.Logger
}

// New returns a Preprocessor for opts.
func New(opts Options) (*Preprocessor, error) {
	filter, err := compileFilter(opts.Languages)
	if err != nil {
		return nil, err
	}

	return &Preprocessor{opts: opts, filter: filter, log: logging.New("codetab")}, nil
}

// Run transforms the lines of one document. Every run of fences becomes one
// line holding the token returned by stash; all other lines pass through.
func (p *Preprocessor) Run(lines []string, stash Stash) []string {
	s, annotated := p.prepare(lines)

	return s.group(annotated, func(group *Group) string {
		return stash.Store(s.render(group))
	})
}

// Analyze extracts and groups the fences of a document without rendering.
func (p *Preprocessor) Analyze(lines []string) []*Group {
	s, annotated := p.prepare(lines)

	var groups []*Group

	s.group(annotated, func(group *Group) string {
		groups = append(groups, group)

		return ""
	})

	return groups
}

func (p *Preprocessor) prepare(lines []string) (*state, []string) {
	text := Normalize(strings.Join(lines, "\n"))
	s := newState(p, text)

	return s, s.extract(text)
}

// state is everything one document pass mutates.
type state struct {
	opts   Options
	filter filterFunc
	log    *slog.Logger
	rand   *rand.Rand
	holder placeholder

	queue   CodeBlocks
	head    int
	tabSets int
}

func newState(p *Preprocessor, text string) *state {
	seed := uuid.New()

	s := &state{
		opts:   p.opts,
		filter: p.filter,
		log:    p.log,
		rand: rand.New(rand.NewPCG( //nolint:gosec
			binary.LittleEndian.Uint64(seed[:8]),
			binary.LittleEndian.Uint64(seed[8:]),
		)),
	}

	s.holder = newPlaceholder(text, func() string {
		return s.randomString(nonceLength)
	}, s.log)

	return s
}
