// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render converts the markdown text of one input file into blocks
// appended to a document.Document. Diagram-tagged fences are extracted
// first and replaced by placeholder lines; a single-pass line scanner then
// classifies every line against a fixed rule table:
//
//	diagram placeholder > heading > code fence > bullet > numbered > paragraph
//
// Scanner state lives for one Render call, so a Renderer may be reused
// across files.
package render

import (
	"strings"

	"github.com/pdiddy/md2docx/internal/document"
	"github.com/pdiddy/md2docx/pkg/types"
)

// Options configures a Renderer. Zero fields take the package defaults.
type Options struct {
	// DiagramTags lists the fence tags rendered as diagrams.
	DiagramTags []string

	// DiagramLabel is the caption format for diagrams; it receives the number.
	DiagramLabel string

	// CodeLabel is the caption format for tagged code blocks; it receives the language.
	CodeLabel string
}

// Renderer appends rendered markdown to a document.
type Renderer struct {
	opts      Options
	extractor *Extractor
}

// New returns a Renderer for the given options.
func New(opts Options) *Renderer {
	if opts.DiagramLabel == "" {
		opts.DiagramLabel = types.DefaultDiagramLabel
	}
	if opts.CodeLabel == "" {
		opts.CodeLabel = types.DefaultCodeLabel
	}
	return &Renderer{
		opts:      opts,
		extractor: NewExtractor(opts.DiagramTags),
	}
}

// Render appends the blocks for content to doc and returns what it added.
// Every extracted diagram is rendered exactly once, in source order.
func (r *Renderer) Render(doc *document.Document, content string) types.ElementCounts {
	text, diagrams := r.extractor.Extract(content)
	s := &scanner{
		doc:      doc,
		opts:     r.opts,
		diagrams: diagrams,
	}
	s.run(strings.Split(text, "\n"))
	return s.counts
}
