package codetab

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStash struct {
	fragments []string
}

func (s *testStash) Store(html string) string {
	s.fragments = append(s.fragments, html)

	return fmt.Sprintf("STASH-%d", len(s.fragments)-1)
}

func split(doc string) []string {
	return strings.Split(doc, "\n")
}

func run(t *testing.T, opts Options, doc string) ([]string, *testStash) {
	t.Helper()

	p, err := New(opts)
	require.NoError(t, err)

	stash := &testStash{}

	return p.Run(split(doc), stash), stash
}

func TestRunAdjacentFences(t *testing.T) {
	t.Parallel()

	lines, stash := run(t, DefaultOptions(), "```python\nprint(1)\n```\n```javascript\nalert(1)\n```")

	assert.Equal(t, []string{"STASH-0"}, lines)
	require.Len(t, stash.fragments, 1)

	want := `<div>
<ul class="nav nav-tabs" role="tablist">
<li role="presentation" class="active"><a href="#tab-0-python" aria-controls="tab-0-python" role="tab" data-toggle="tab">Python</a></li>
<li role="presentation"><a href="#tab-0-javascript" aria-controls="tab-0-javascript" role="tab" data-toggle="tab">Javascript</a></li>
</ul>
<div class="tab-content">
<div role="tabpanel" class="tab-pane active fade in" id="tab-0-python">
<pre><code class="python">print(1)
</code></pre>
</div>
<div role="tabpanel" class="tab-pane fade in" id="tab-0-javascript">
<pre><code class="javascript">alert(1)
</code></pre>
</div>
</div>
</div>`

	assert.Equal(t, want, stash.fragments[0])
}

func TestRunBlankLinesKeepRun(t *testing.T) {
	t.Parallel()

	lines, stash := run(t, DefaultOptions(), "intro\n\n```python\na\n```\n\n\n```go\nb\n```\n\noutro")

	assert.Equal(t, []string{"intro", "", "STASH-0", "", "outro"}, lines)
	require.Len(t, stash.fragments, 1)
	assert.Contains(t, stash.fragments[0], `id="tab-0-python"`)
	assert.Contains(t, stash.fragments[0], `id="tab-0-go"`)
}

func TestRunProseSplitsRuns(t *testing.T) {
	t.Parallel()

	doc := "```python\na\n```\ntext\n```js\nb\n```"

	t.Run("all as tabs", func(t *testing.T) {
		t.Parallel()

		lines, stash := run(t, DefaultOptions(), doc)

		assert.Equal(t, []string{"STASH-0", "text", "STASH-1"}, lines)
		require.Len(t, stash.fragments, 2)
		assert.Contains(t, stash.fragments[0], `id="tab-0-python"`)
		assert.Contains(t, stash.fragments[1], `id="tab-1-js"`)
		assert.Contains(t, stash.fragments[1], `class="tab-pane active fade in"`)
	})

	t.Run("bare singles", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.ShowAllAsTabs = false

		lines, stash := run(t, opts, doc)

		assert.Equal(t, []string{"STASH-0", "text", "STASH-1"}, lines)
		require.Len(t, stash.fragments, 2)
		assert.Equal(t, "<pre><code class=\"python\">a\n</code></pre>", stash.fragments[0])
		assert.Contains(t, stash.fragments[1], "nav-tabs")
		assert.Contains(t, stash.fragments[1], `id="tab-0-js"`)
	})
}

func TestRunBareSingleKeepsRunsOfTwo(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.ShowAllAsTabs = false

	lines, stash := run(t, opts, "```a\n1\n```\nx\n```b\n2\n```\n```c\n3\n```\ny")

	assert.Equal(t, []string{"STASH-0", "x", "STASH-1", "y"}, lines)
	require.Len(t, stash.fragments, 2)
	assert.NotContains(t, stash.fragments[0], "nav-tabs")
	assert.Contains(t, stash.fragments[1], `href="#tab-0-b"`)
	assert.Contains(t, stash.fragments[1], `href="#tab-0-c"`)
}

func TestRunTrailingRunIsTabSet(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.ShowAllAsTabs = false

	tests := []struct {
		name  string
		doc   string
		lines []string
		bare  []bool
	}{
		{
			name:  "lone fence",
			doc:   "intro\n```go\nx\n```",
			lines: []string{"intro", "STASH-0"},
			bare:  []bool{false},
		},
		{
			name:  "after a bare block",
			doc:   "intro\n```go\nx\n```\nmid\n```py\ny\n```\n",
			lines: []string{"intro", "STASH-0", "mid", "STASH-1", ""},
			bare:  []bool{true, false},
		},
		{
			name:  "trailing blank lines kept",
			doc:   "```go\nx\n```\n\n",
			lines: []string{"STASH-0", "", ""},
			bare:  []bool{false},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines, stash := run(t, opts, tt.doc)

			assert.Equal(t, tt.lines, lines)
			require.Len(t, stash.fragments, len(tt.bare))

			for i, bare := range tt.bare {
				if bare {
					assert.NotContains(t, stash.fragments[i], "nav-tabs")
				} else {
					assert.Contains(t, stash.fragments[i], "nav-tabs")
					assert.Contains(t, stash.fragments[i], `class="tab-pane active fade in"`)
				}
			}
		})
	}
}

func TestRunWithoutFences(t *testing.T) {
	t.Parallel()

	doc := "# Title\n\nSome *text*.\n\n  indented\n\n"

	lines, stash := run(t, DefaultOptions(), doc)

	assert.Equal(t, split(doc), lines)
	assert.Empty(t, stash.fragments)
}

func TestRunUnterminatedFence(t *testing.T) {
	t.Parallel()

	doc := "```python\nprint(1)\nno closer"

	lines, stash := run(t, DefaultOptions(), doc)

	assert.Equal(t, split(doc), lines)
	assert.Empty(t, stash.fragments)
}

func TestRunUnterminatedBeforeValid(t *testing.T) {
	t.Parallel()

	lines, stash := run(t, DefaultOptions(), "~~~ruby\nopen\n```go\nx\n```")

	assert.Equal(t, []string{"~~~ruby", "open", "STASH-0"}, lines)
	require.Len(t, stash.fragments, 1)
	assert.Contains(t, stash.fragments[0], `<code class="go">x`)
}

func TestRunEmptyBodyAndDefaultLanguage(t *testing.T) {
	t.Parallel()

	_, stash := run(t, DefaultOptions(), "```\n```")

	require.Len(t, stash.fragments, 1)
	assert.Contains(t, stash.fragments[0], `<pre><code class="source"></code></pre>`)
	assert.Contains(t, stash.fragments[0], ">Source</a>")
	assert.Contains(t, stash.fragments[0], `id="tab-0-source"`)
}

func TestRunEscapesBodies(t *testing.T) {
	t.Parallel()

	_, stash := run(t, DefaultOptions(), "```c\nif (a < b && c > \"d\") {}\n```")

	require.Len(t, stash.fragments, 1)
	assert.Contains(t, stash.fragments[0],
		"if (a &lt; b &amp;&amp; c &gt; &quot;d&quot;) {}\n</code>")
}

func TestRunFenceVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "braced language",
			doc:  "```{.Python}\nx\n```",
			want: []string{`<code class="python">x`},
		},
		{
			name: "tilde fence",
			doc:  "~~~~ sh\necho\n~~~~  ",
			want: []string{`<code class="sh">echo`},
		},
		{
			name: "highlight lines",
			doc:  "```python hl_lines=\"1 3\"\na\nb\nc\n```",
			want: []string{`<pre data-hl-lines="1 3"><code class="python">`},
		},
		{
			name: "single quoted highlight lines",
			doc:  "```{.go hl_lines='2'}\na\nb\n```",
			want: []string{`<pre data-hl-lines="2"><code class="go">`},
		},
		{
			name: "longer outer fence",
			doc:  "````md\n```go\nx\n```\n````",
			want: []string{"<code class=\"md\">```go\nx\n```\n</code>"},
		},
		{
			name: "crlf",
			doc:  "```go\r\nx\r\n```\r",
			want: []string{"<code class=\"go\">x\r\n</code>"},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines, stash := run(t, DefaultOptions(), tt.doc)

			assert.Equal(t, []string{"STASH-0"}, lines)
			require.Len(t, stash.fragments, 1)

			for _, want := range tt.want {
				assert.Contains(t, stash.fragments[0], want)
			}
		})
	}
}

func TestRunMismatchedCloserIsBody(t *testing.T) {
	t.Parallel()

	_, stash := run(t, DefaultOptions(), "```go\n````\n~~~\n```")

	require.Len(t, stash.fragments, 1)
	assert.Contains(t, stash.fragments[0], "<code class=\"go\">````\n~~~\n</code>")
}

func TestRunDuplicateLanguages(t *testing.T) {
	t.Parallel()

	_, stash := run(t, DefaultOptions(), "```py\na\n```\n```py\nb\n```\n```py\nc\n```")

	require.Len(t, stash.fragments, 1)
	assert.Contains(t, stash.fragments[0], `id="tab-0-py"`)
	assert.Contains(t, stash.fragments[0], `id="tab-0-py-2"`)
	assert.Contains(t, stash.fragments[0], `id="tab-0-py-3"`)
}

func TestRunRandomIdentifierForBlankLanguage(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.DefaultLanguage = ""

	_, stash := run(t, opts, "```\na\n```\n```\nb\n```")

	require.Len(t, stash.fragments, 1)

	ids := regexp.MustCompile(`id="(tab-0-[a-z0-9]{15})"`).FindAllStringSubmatch(stash.fragments[0], -1)
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0][1], ids[1][1])
}

func TestRunLanguageFilter(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.Languages = []string{"PY*"}

	lines, stash := run(t, opts, "```python\na\n```\n```js\n```python\n```\nend")

	assert.Equal(t, []string{"STASH-0", "```js", "```python", "```", "end"}, lines)
	require.Len(t, stash.fragments, 1)
	assert.Contains(t, stash.fragments[0], `id="tab-0-python"`)
}

func TestNewInvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Languages: []string{"[a"}})

	require.ErrorIs(t, err, ErrInvalidPattern)
}

func TestRunNormalizesText(t *testing.T) {
	t.Parallel()

	lines, _ := run(t, DefaultOptions(), "“quoted” café")

	assert.Equal(t, []string{"&ldquo;quoted&rdquo; caf"}, lines)
}

func TestRunFreshStatePerCall(t *testing.T) {
	t.Parallel()

	p, err := New(DefaultOptions())
	require.NoError(t, err)

	doc := split("```go\na\n```\ntext\n```go\nb\n```")

	var wg sync.WaitGroup

	results := make([]*testStash, 8)

	for i := range results {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			stash := &testStash{}
			p.Run(doc, stash)
			results[i] = stash
		}(i)
	}

	wg.Wait()

	for _, stash := range results {
		require.Len(t, stash.fragments, 2)
		assert.Contains(t, stash.fragments[0], `id="tab-0-go"`)
		assert.Contains(t, stash.fragments[1], `id="tab-1-go"`)
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.ShowAllAsTabs = false

	p, err := New(opts)
	require.NoError(t, err)

	groups := p.Analyze(split("# doc\n```go\na\n```\n\n```rust\nb\n```\ntext\n```\nc\n```"))

	require.Len(t, groups, 2)

	assert.True(t, groups[0].Tabbed)
	assert.Equal(t, "tab-0-", groups[0].Prefix)
	require.Len(t, groups[0].Blocks, 2)
	assert.Equal(t, "go", groups[0].Blocks[0].Lang)
	assert.Equal(t, 2, groups[0].Blocks[0].StartLine)
	assert.Equal(t, 4, groups[0].Blocks[0].EndLine)
	assert.Equal(t, "rust", groups[0].Blocks[1].Lang)

	assert.True(t, groups[1].Tabbed)
	assert.Equal(t, "tab-1-", groups[1].Prefix)
	require.Len(t, groups[1].Blocks, 1)
	assert.Empty(t, groups[1].Blocks[0].Lang)
	assert.Equal(t, "c\n", groups[1].Blocks[0].Code)
}

func TestAnalyzeConsumesEveryBlock(t *testing.T) {
	t.Parallel()

	p, err := New(DefaultOptions())
	require.NoError(t, err)

	doc := "```a\n1\n```\n\n```b\n2\n```\nx\n\n```c\n3\n```\n```d\n4\n```\n```e\n5\n```\n"

	var langs []string

	for _, group := range p.Analyze(split(doc)) {
		for _, block := range group.Blocks {
			langs = append(langs, block.Lang)
		}
	}

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, langs)
}
