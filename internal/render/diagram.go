// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/md2docx/pkg/types"
)

// PlaceholderMark opens every placeholder line. It is a private-use rune,
// stripped from input before extraction, so author text never reads as a
// placeholder.
const PlaceholderMark = "\uE000"

const placeholderPrefix = PlaceholderMark + "[DIAGRAM #"

// placeholderPattern matches a whole placeholder line written by Extract.
var placeholderPattern = regexp.MustCompile(`^\x{E000}\[DIAGRAM #(\d+)\]$`)

// Diagram is a fenced block tagged with a diagram notation.
type Diagram struct {
	// Number is 1-based and scoped to one source file.
	Number int

	// Tag is the fence notation (e.g. "mermaid").
	Tag string

	// Source is the raw body between the fences, less the fence indent.
	Source string

	// Indent is the whitespace before the opening fence.
	Indent string
}

// fenced rebuilds the original fenced text of the diagram.
func (d Diagram) fenced() string {
	lines := strings.Split(d.Source, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = d.Indent + l
		}
	}
	return d.Indent + "```" + d.Tag + "\n" + strings.Join(lines, "\n") + "\n" + d.Indent + "```"
}

// Extractor pulls diagram blocks out of markdown text.
type Extractor struct {
	pattern *regexp.Regexp
}

// NewExtractor builds an extractor for the given fence tags. An empty list
// uses types.DefaultDiagramTags.
func NewExtractor(tags []string) *Extractor {
	if len(tags) == 0 {
		tags = types.DefaultDiagramTags
	}
	quoted := make([]string, len(tags))
	for i, t := range tags {
		quoted[i] = regexp.QuoteMeta(t)
	}
	// Fences open and close at the start of a line, optionally indented.
	// Non-greedy with (?s) so adjacent diagrams stay separate.
	expr := "(?ms)^([ \t]*)```(" + strings.Join(quoted, "|") + ")[ \t]*\n(.*?)\n[ \t]*```"
	return &Extractor{pattern: regexp.MustCompile(expr)}
}

// Extract replaces each diagram block, in source order, with a numbered
// placeholder line and returns the rewritten text with the diagrams. Text
// without diagrams is returned unchanged with a nil slice.
func (e *Extractor) Extract(text string) (string, []Diagram) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, PlaceholderMark, "")

	matches := e.pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	diagrams := make([]Diagram, 0, len(matches))
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		d := Diagram{
			Number: len(diagrams) + 1,
			Tag:    text[m[4]:m[5]],
			Source: dedent(text[m[6]:m[7]], text[m[2]:m[3]]),
			Indent: text[m[2]:m[3]],
		}
		diagrams = append(diagrams, d)
		b.WriteString(Placeholder(d.Number))
		// Text trailing the closing fence moves to its own line.
		if m[1] < len(text) && text[m[1]] != '\n' {
			b.WriteByte('\n')
		}
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String(), diagrams
}

// ExtractDiagrams runs an extractor with the default diagram tags.
func ExtractDiagrams(text string) (string, []Diagram) {
	return NewExtractor(nil).Extract(text)
}

// Placeholder returns the marker line for diagram n.
func Placeholder(n int) string {
	return fmt.Sprintf("%s%d]", placeholderPrefix, n)
}

// dedent strips the opening fence indentation from every line of source.
func dedent(source, indent string) string {
	if indent == "" {
		return source
	}
	lines := strings.Split(source, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimPrefix(l, indent)
	}
	return strings.Join(lines, "\n")
}

// isPlaceholder reports whether line is a marker written by Extract.
func isPlaceholder(line string) bool {
	return placeholderPattern.MatchString(strings.TrimSpace(line))
}
