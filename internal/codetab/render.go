package codetab

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const randomIDLength = 15

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func (s *state) render(group *Group) string {
	if !group.Tabbed {
		return s.renderCode(group.Blocks[0])
	}

	var handles, panes strings.Builder

	seen := make(map[string]bool, len(group.Blocks))

	for i, block := range group.Blocks {
		lang := s.opts.Language(block.Lang)
		id := Escape(s.tabID(group.Prefix, lang, seen))

		active := ""
		handle := `<li role="presentation">`

		if i == 0 {
			active = "active "
			handle = `<li role="presentation" class="active">`
		}

		handles.WriteString(handle + `<a href="#` + id + `" aria-controls="` + id +
			`" role="tab" data-toggle="tab">` + Escape(label(lang)) + "</a></li>\n")

		panes.WriteString(`<div role="tabpanel" class="tab-pane ` + active + `fade in" id="` + id + "\">\n")
		panes.WriteString(s.renderCode(block))
		panes.WriteString("\n</div>\n")
	}

	var b strings.Builder

	b.WriteString("<div>\n")
	b.WriteString("<ul class=\"nav nav-tabs\" role=\"tablist\">\n")
	b.WriteString(handles.String())
	b.WriteString("</ul>\n")
	b.WriteString("<div class=\"tab-content\">\n")
	b.WriteString(panes.String())
	b.WriteString("</div>\n")
	b.WriteString("</div>")

	s.log.Debug("rendered tab set", "prefix", group.Prefix, "tabs", len(group.Blocks))

	return b.String()
}

func (s *state) renderCode(block *CodeBlock) string {
	pre := "<pre>"
	if len(block.HighlightLines) > 0 {
		nums := make([]string, len(block.HighlightLines))
		for i, n := range block.HighlightLines {
			nums[i] = strconv.Itoa(n)
		}

		pre = `<pre data-hl-lines="` + strings.Join(nums, " ") + `">`
	}

	return pre + `<code class="` + Escape(s.opts.Language(block.Lang)) + `">` +
		Escape(block.Code) + "</code></pre>"
}

// tabID returns prefix+lang, or prefix plus a random string when lang is
// blank. Repeats within one tab set get a numeric suffix.
func (s *state) tabID(prefix, lang string, seen map[string]bool) string {
	if len(strings.TrimSpace(lang)) == 0 {
		lang = s.randomString(randomIDLength)
	}

	id := prefix + lang
	for n := 2; seen[id]; n++ {
		id = prefix + lang + "-" + strconv.Itoa(n)
	}

	seen[id] = true

	return id
}

func (s *state) randomString(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = idAlphabet[s.rand.IntN(len(idAlphabet))]
	}

	return string(buf)
}

// label capitalizes the first letter of lang.
func label(lang string) string {
	r, size := utf8.DecodeRuneInString(lang)
	if r == utf8.RuneError {
		return lang
	}

	return string(unicode.ToUpper(r)) + lang[size:]
}
