// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"regexp"

	"github.com/pdiddy/md2docx/internal/document"
)

const (
	monoFont    = "Courier New"
	codeSize    = 9
	codeColor   = "00008B"
	inlineColor = "DC143C"
)

// inlinePattern alternatives are tried left to right: bold, italic, code.
var inlinePattern = regexp.MustCompile("(\\*\\*.*?\\*\\*)|(\\*.*?\\*)|(`.*?`)")

// SpanStyle is the presentation attribute of one inline segment.
type SpanStyle int

const (
	SpanPlain SpanStyle = iota
	SpanBold
	SpanItalic
	SpanCode
)

// Span is one segment of a split paragraph line, delimiters stripped.
type Span struct {
	Text  string
	Style SpanStyle
}

// SplitInline splits line into alternating plain and styled segments.
// Empty segments are dropped.
func SplitInline(line string) []Span {
	var spans []Span
	add := func(text string, style SpanStyle) {
		if text != "" {
			spans = append(spans, Span{Text: text, Style: style})
		}
	}

	last := 0
	for _, m := range inlinePattern.FindAllStringSubmatchIndex(line, -1) {
		add(line[last:m[0]], SpanPlain)
		switch {
		case m[2] >= 0:
			add(line[m[2]+2:m[3]-2], SpanBold)
		case m[4] >= 0:
			add(line[m[4]+1:m[5]-1], SpanItalic)
		case m[6] >= 0:
			add(line[m[6]+1:m[7]-1], SpanCode)
		}
		last = m[1]
	}
	add(line[last:], SpanPlain)
	return spans
}

// addInlineRuns appends one run per span to b.
func addInlineRuns(b *document.Block, line string) {
	for _, sp := range SplitInline(line) {
		r := b.AddRun(sp.Text)
		switch sp.Style {
		case SpanBold:
			r.Bold = true
		case SpanItalic:
			r.Italic = true
		case SpanCode:
			r.Font = monoFont
			r.Color = inlineColor
		}
	}
}

// monospace styles every run of b as a code listing.
func monospace(b *document.Block) {
	for _, r := range b.Runs {
		r.Font = monoFont
		r.Size = codeSize
		r.Color = codeColor
	}
}
