package codetab

// CodeBlock is one fenced region extracted from a document. Lang is the raw
// tag from the opening fence and may be empty; the configured default is
// applied when the block is rendered.
type CodeBlock struct {
	Lang           string
	HighlightLines []int
	Code           string
	StartLine      int
	EndLine        int
}

type CodeBlocks []*CodeBlock

// TabSet is a run of adjacent blocks rendered as one tabbed widget.
type TabSet struct {
	Prefix string
	Blocks CodeBlocks
}

// Group is a rendered unit: either a TabSet or a single bare block.
type Group struct {
	Tabbed bool
	TabSet
}
