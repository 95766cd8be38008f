// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline builds a structural summary of a markdown input with a
// full CommonMark parser. It backs the inspect command and heading-derived
// index titles, independent of the line scanner used for rendering.
package outline

import (
	"bytes"
	"slices"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one heading in document order.
type Heading struct {
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
}

// Outline summarises the structure of one markdown document.
type Outline struct {
	Headings   []Heading `json:"headings" yaml:"headings"`
	CodeBlocks int       `json:"code_blocks" yaml:"code_blocks"`
	Diagrams   int       `json:"diagrams" yaml:"diagrams"`
	Lists      int       `json:"lists" yaml:"lists"`
	ListItems  int       `json:"list_items" yaml:"list_items"`
}

// Title returns the text of the first level-1 heading, or "".
func (o Outline) Title() string {
	for _, h := range o.Headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	return ""
}

// Parse walks the goldmark AST of source. Fenced blocks whose language is
// one of diagramTags count as diagrams rather than code.
func Parse(source []byte, diagramTags []string) Outline {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var o Outline
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			o.Headings = append(o.Headings, Heading{Level: n.Level, Text: inlineText(n, source)})
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			if slices.Contains(diagramTags, string(n.Language(source))) {
				o.Diagrams++
			} else {
				o.CodeBlocks++
			}
		case *ast.CodeBlock:
			o.CodeBlocks++
		case *ast.List:
			o.Lists++
		case *ast.ListItem:
			o.ListItems++
		}
		return ast.WalkContinue, nil
	})
	return o
}

// inlineText concatenates the literal text under node, dropping markup.
func inlineText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *ast.Text:
				buf.Write(c.Segment.Value(source))
				if c.SoftLineBreak() {
					buf.WriteByte(' ')
				}
			case *ast.String:
				buf.Write(c.Value)
			default:
				walk(c)
			}
		}
	}
	walk(node)
	return buf.String()
}
