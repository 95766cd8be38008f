// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document holds the in-memory word-processor model that the
// renderer builds and the docx writer persists. A Document is an ordered
// list of blocks; once a block is appended only its runs may be restyled.
package document

import (
	"strconv"
	"strings"
)

// Kind identifies the structural role of a block.
type Kind string

const (
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindListItem  Kind = "list_item"
	KindCode      Kind = "code"
	KindDiagram   Kind = "diagram"
	KindPageBreak Kind = "page_break"
)

// Paragraph style names. They match the style IDs written to styles.xml.
const (
	StyleNormal       = "Normal"
	StyleTitle        = "Title"
	StyleListBullet   = "ListBullet"
	StyleListNumber   = "ListNumber"
	StyleIntenseQuote = "IntenseQuote"
	StyleNoSpacing    = "NoSpacing"
)

// MaxHeadingLevel is the deepest heading style the format supports.
const MaxHeadingLevel = 9

// Alignment is the horizontal justification of a paragraph.
type Alignment string

const (
	AlignDefault Alignment = ""
	AlignCenter  Alignment = "center"
)

// Metadata holds the core properties stored alongside the body.
type Metadata struct {
	Title    string
	Author   string
	Comments string
}

// Run is an inline styled span.
type Run struct {
	Text   string
	Bold   bool
	Italic bool

	// Font is the typeface name; empty inherits the paragraph style.
	Font string

	// Size is the font size in points; zero inherits.
	Size float64

	// Color is an RRGGBB hex string; empty inherits.
	Color string
}

// Block is one block-level element.
type Block struct {
	Kind  Kind
	Style string

	// Level is the heading level (0 is the document title).
	Level int

	Align Alignment
	Runs  []*Run

	// Language is the fence language of a code block, if any.
	Language string
}

// AddRun appends a plain run to the block and returns it for styling.
func (b *Block) AddRun(text string) *Run {
	r := &Run{Text: text}
	b.Runs = append(b.Runs, r)
	return r
}

// Text returns the concatenated text of all runs.
func (b *Block) Text() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Document is the accumulated output of a build.
type Document struct {
	Meta   Metadata
	Blocks []*Block
}

// New returns an empty document with the given metadata.
func New(meta Metadata) *Document {
	return &Document{Meta: meta}
}

// HeadingStyle returns the style ID for a heading level.
func HeadingStyle(level int) string {
	if level <= 0 {
		return StyleTitle
	}
	return "Heading" + strconv.Itoa(ClampHeading(level))
}

// ClampHeading limits level to the supported heading depth.
func ClampHeading(level int) int {
	return min(level, MaxHeadingLevel)
}

// AddHeading appends a heading. Level 0 is the document title; levels
// beyond MaxHeadingLevel are clamped.
func (d *Document) AddHeading(text string, level int) *Block {
	level = max(ClampHeading(level), 0)
	b := &Block{Kind: KindHeading, Style: HeadingStyle(level), Level: level}
	if text != "" {
		b.AddRun(text)
	}
	return d.append(b)
}

// AddParagraph appends a paragraph with the given style. Non-empty text
// becomes a single plain run. An empty style means Normal.
func (d *Document) AddParagraph(text, style string) *Block {
	if style == "" {
		style = StyleNormal
	}
	b := &Block{Kind: KindParagraph, Style: style}
	if text != "" {
		b.AddRun(text)
	}
	return d.append(b)
}

// AddListItem appends a bullet or numbered list entry.
func (d *Document) AddListItem(text string, numbered bool) *Block {
	style := StyleListBullet
	if numbered {
		style = StyleListNumber
	}
	b := &Block{Kind: KindListItem, Style: style}
	b.AddRun(text)
	return d.append(b)
}

// AddCode appends a preformatted block holding text verbatim. Lines are
// separated by "\n" inside the single run.
func (d *Document) AddCode(text, language string) *Block {
	b := &Block{Kind: KindCode, Style: StyleNormal, Language: language}
	b.AddRun(text)
	return d.append(b)
}

// AddDiagram appends the body of a diagram as a preformatted block.
func (d *Document) AddDiagram(text string) *Block {
	b := &Block{Kind: KindDiagram, Style: StyleNoSpacing}
	b.AddRun(text)
	return d.append(b)
}

// AddPageBreak appends a hard page break.
func (d *Document) AddPageBreak() {
	d.append(&Block{Kind: KindPageBreak})
}

// Last returns the most recently appended block, or nil.
func (d *Document) Last() *Block {
	if len(d.Blocks) == 0 {
		return nil
	}
	return d.Blocks[len(d.Blocks)-1]
}

// Count returns the number of blocks of the given kind.
func (d *Document) Count(k Kind) int {
	n := 0
	for _, b := range d.Blocks {
		if b.Kind == k {
			n++
		}
	}
	return n
}

// Filter returns the blocks of the given kind in document order.
func (d *Document) Filter(k Kind) []*Block {
	var out []*Block
	for _, b := range d.Blocks {
		if b.Kind == k {
			out = append(out, b)
		}
	}
	return out
}

func (d *Document) append(b *Block) *Block {
	d.Blocks = append(d.Blocks, b)
	return b
}
