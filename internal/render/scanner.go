// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/md2docx/internal/document"
	"github.com/pdiddy/md2docx/pkg/types"
)

const fence = "```"

var (
	bulletPrefixes = []string{"- ", "* ", "+ "}
	numberedItem   = regexp.MustCompile(`^\d+\.\s`)
)

type scanState int

const (
	stateDefault scanState = iota
	stateCode
)

// rule classifies one line in the default state. The first rule whose
// match returns true consumes the line.
type rule struct {
	name  string
	match func(line string) bool
	apply func(s *scanner, line string)
}

// rules is the line classification table in precedence order.
var rules = []rule{
	{name: "diagram", match: isPlaceholder, apply: (*scanner).diagram},
	{name: "heading", match: isHeading, apply: (*scanner).heading},
	{name: "fence", match: isFence, apply: (*scanner).openFence},
	{name: "bullet", match: isBullet, apply: (*scanner).bullet},
	{name: "numbered", match: isNumbered, apply: (*scanner).numbered},
	{name: "paragraph", match: isText, apply: (*scanner).paragraph},
}

// Precedence returns the rule names in the order lines are classified.
func Precedence() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}

// Classify returns the name of the rule that claims line in the default
// state, or "blank" when none does.
func Classify(line string) string {
	for _, r := range rules {
		if r.match(line) {
			return r.name
		}
	}
	return "blank"
}

func isHeading(line string) bool { return strings.HasPrefix(line, "#") }

func isFence(line string) bool { return strings.HasPrefix(line, fence) }

func isBullet(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

func isNumbered(line string) bool {
	return numberedItem.MatchString(strings.TrimSpace(line))
}

func isText(line string) bool { return strings.TrimSpace(line) != "" }

// scanner holds the state of one pass over one file. It is created per
// Render call and never shared.
type scanner struct {
	doc  *document.Document
	opts Options

	state    scanState
	codeLang string
	code     []string

	diagrams []Diagram
	next     int

	counts types.ElementCounts
}

func (s *scanner) run(lines []string) {
	for _, line := range lines {
		if s.state == stateCode {
			s.codeLine(line)
			continue
		}
		for _, r := range rules {
			if r.match(line) {
				r.apply(s, line)
				break
			}
		}
	}
	if s.state == stateCode {
		s.closeFence()
	}
	for s.next < len(s.diagrams) {
		s.emitDiagram(s.diagrams[s.next])
		s.next++
	}
}

func (s *scanner) diagram(string) {
	if s.next >= len(s.diagrams) {
		s.counts.DroppedPlaceholders++
		return
	}
	s.emitDiagram(s.diagrams[s.next])
	s.next++
}

func (s *scanner) emitDiagram(d Diagram) {
	s.doc.AddParagraph(label(s.opts.DiagramLabel, d.Number), document.StyleIntenseQuote)
	monospace(s.doc.AddDiagram(d.Source))
	s.doc.AddParagraph("", "")
	s.counts.Diagrams++
}

func (s *scanner) heading(line string) {
	text := strings.TrimLeft(line, "#")
	level := len(line) - len(text)
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	s.doc.AddHeading(text, level)
	s.counts.Headings++
}

func (s *scanner) openFence(line string) {
	s.state = stateCode
	s.codeLang = strings.TrimSpace(line[len(fence):])
	s.code = s.code[:0]
}

func (s *scanner) codeLine(line string) {
	switch {
	case isFence(line):
		s.closeFence()
	case isPlaceholder(line) && s.next < len(s.diagrams):
		// A diagram nested in a code block stays literal code.
		s.code = append(s.code, strings.Split(s.diagrams[s.next].fenced(), "\n")...)
		s.next++
	default:
		s.code = append(s.code, line)
	}
}

func (s *scanner) closeFence() {
	s.state = stateDefault
	if len(s.code) == 0 {
		return
	}
	if s.codeLang != "" {
		s.doc.AddParagraph(label(s.opts.CodeLabel, s.codeLang), document.StyleIntenseQuote)
	}
	monospace(s.doc.AddCode(strings.Join(s.code, "\n"), s.codeLang))
	s.counts.CodeBlocks++
	s.code = s.code[:0]
}

func (s *scanner) bullet(line string) {
	text := strings.TrimSpace(strings.TrimSpace(line)[2:])
	if text == "" {
		return
	}
	s.doc.AddListItem(text, false)
	s.counts.ListItems++
}

func (s *scanner) numbered(line string) {
	text := strings.TrimSpace(numberedItem.ReplaceAllString(strings.TrimSpace(line), ""))
	if text == "" {
		return
	}
	s.doc.AddListItem(text, true)
	s.counts.ListItems++
}

func (s *scanner) paragraph(line string) {
	addInlineRuns(s.doc.AddParagraph("", ""), line)
	s.counts.Paragraphs++
}

// label formats a caption. Formats without a verb are used as a prefix.
func label(format string, arg any) string {
	if !strings.Contains(format, "%") {
		return fmt.Sprintf("%s %v", format, arg)
	}
	return fmt.Sprintf(format, arg)
}
