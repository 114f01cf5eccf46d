// Package markdown is the host side of code tabs: it runs the codetab
// preprocessor over a document, keeps the rendered widgets in a stash and
// renders the rest of the document with goldmark.
package markdown

import (
	"bytes"
	"io"
	"log/slog"
	"strings"

	"github.com/ezerfernandes/codetabs/internal/codetab"
	"github.com/ezerfernandes/codetabs/internal/logging"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

const stashPriority = 100

// Converter renders Markdown documents with tabbed code blocks.
type Converter struct {
	pre *codetab.Preprocessor
	log *slog.Logger
}

// New returns a Converter using opts for every document.
func New(opts codetab.Options) (*Converter, error) {
	pre, err := codetab.New(opts)
	if err != nil {
		return nil, err
	}

	return &Converter{pre: pre, log: logging.New("markdown")}, nil
}

// Convert writes the HTML rendering of source to w.
func (c *Converter) Convert(source []byte, w io.Writer) error {
	lines, stash := c.preprocess(source)

	md := goldmark.New(
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(&stashTransformer{stash: stash}, stashPriority)),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(&stashRenderer{}, stashPriority)),
		),
	)

	var buf bytes.Buffer

	if err := md.Convert([]byte(strings.Join(lines, "\n")), &buf); err != nil {
		return err
	}

	_, err := w.Write(stash.restore(buf.Bytes()))

	return err
}

// Inline returns source as Markdown with every fence run replaced by its raw
// HTML widget, ready for another Markdown engine.
func (c *Converter) Inline(source []byte) []byte {
	lines, stash := c.preprocess(source)

	var buf bytes.Buffer

	for i, line := range lines {
		if i > 0 {
			buf.WriteByte('\n')
		}

		if fragment, ok := stash.lookup(line); ok {
			buf.WriteString(fragment)

			continue
		}

		buf.WriteString(line)
	}

	return buf.Bytes()
}

// Analyze reports how the fences of source are grouped.
func (c *Converter) Analyze(source []byte) []*codetab.Group {
	return c.pre.Analyze(splitLines(source))
}

func (c *Converter) preprocess(source []byte) ([]string, *htmlStash) {
	stash := newHTMLStash(codetab.Normalize(string(source)), newNonce, c.log)
	lines := stash.isolate(c.pre.Run(splitLines(source), stash))

	c.log.Debug("preprocessed document", "lines", len(lines), "widgets", len(stash.fragments))

	return lines, stash
}

func splitLines(source []byte) []string {
	return strings.Split(string(source), "\n")
}
