package markdown

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindStashed is the node kind of a stored HTML fragment.
var KindStashed = ast.NewNodeKind("Stashed")

// Stashed is a block holding a fragment that is written out verbatim.
type Stashed struct {
	ast.BaseBlock
	HTML string
}

// Kind implements ast.Node.
func (n *Stashed) Kind() ast.NodeKind {
	return KindStashed
}

// Dump implements ast.Node.
func (n *Stashed) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"HTML": n.HTML}, nil)
}

// stashTransformer replaces every paragraph made only of stash tokens with
// Stashed nodes.
type stashTransformer struct {
	stash *htmlStash
}

func (t *stashTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var paragraphs []*ast.Paragraph

	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && node.Kind() == ast.KindParagraph {
			if p, ok := node.(*ast.Paragraph); ok {
				paragraphs = append(paragraphs, p)
			}

			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	for _, p := range paragraphs {
		fragments := t.fragments(p, source)
		if fragments == nil {
			continue
		}

		parent := p.Parent()
		for _, fragment := range fragments {
			parent.InsertBefore(parent, p, &Stashed{HTML: fragment})
		}

		parent.RemoveChild(parent, p)
	}
}

func (t *stashTransformer) fragments(p *ast.Paragraph, source []byte) []string {
	lines := p.Lines()
	if lines.Len() == 0 {
		return nil
	}

	fragments := make([]string, 0, lines.Len())

	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)

		fragment, ok := t.stash.lookup(string(seg.Value(source)))
		if !ok {
			return nil
		}

		fragments = append(fragments, fragment)
	}

	return fragments
}

type stashRenderer struct{}

func (r *stashRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindStashed, r.renderStashed)
}

func (r *stashRenderer) renderStashed(
	w util.BufWriter, _ []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString(node.(*Stashed).HTML)
	_ = w.WriteByte('\n')

	return ast.WalkContinue, nil
}
