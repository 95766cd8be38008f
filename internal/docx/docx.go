// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx persists a document.Document as an Office Open XML
// word-processing file (.docx). The package parts come from an embedded
// template carrying the styles and list numbering; the body is built
// paragraph by paragraph with go-docx.
package docx

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	wml "github.com/fumiama/go-docx"

	"github.com/pdiddy/md2docx/internal/document"
)

// A4 portrait with one-inch margins, in twentieths of a point.
const (
	pageWidth    = 11906
	pageHeight   = 16838
	pageMargin   = 1440
	headerMargin = 708
)

// Save writes doc to path, replacing any existing file.
func Save(doc *document.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Encode(f, doc, time.Now().UTC()); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// Encode writes doc as a .docx archive to w, stamping created as the
// creation and modification time.
func Encode(w io.Writer, doc *document.Document, created time.Time) error {
	tmpl, err := packTemplate(doc.Meta, created)
	if err != nil {
		return fmt.Errorf("packing template: %w", err)
	}
	out, err := wml.Parse(bytes.NewReader(tmpl), int64(len(tmpl)))
	if err != nil {
		return fmt.Errorf("loading template: %w", err)
	}

	for _, b := range doc.Blocks {
		addBlock(out, b)
	}
	out.Document.Body.Items = append(out.Document.Body.Items, &wml.SectPr{
		PgSz: &wml.PgSz{W: pageWidth, H: pageHeight},
		PgMar: &wml.PgMar{
			Top: pageMargin, Left: pageMargin, Bottom: pageMargin, Right: pageMargin,
			Header: headerMargin, Footer: headerMargin,
		},
	})

	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return nil
}

func addBlock(out *wml.Docx, b *document.Block) {
	p := out.AddParagraph()
	if b.Kind == document.KindPageBreak {
		p.AddPageBreaks()
		return
	}
	if b.Style != "" && b.Style != document.StyleNormal {
		p.Style(b.Style)
	}
	if b.Align != document.AlignDefault {
		p.Justification(string(b.Align))
	}
	for _, r := range b.Runs {
		addRun(p, r)
	}
}

// addRun maps one model run onto a WordprocessingML run. Embedded newlines
// become line breaks and tabs become tab stops.
func addRun(p *wml.Paragraph, r *document.Run) {
	if r.Text == "" {
		return
	}
	run := p.AddText(r.Text)
	for _, c := range run.Children {
		if t, ok := c.(*wml.Text); ok {
			t.XMLSpace = "preserve"
		}
	}

	if r.Font != "" {
		run.Font(r.Font, r.Font, r.Font, "")
	}
	if r.Bold {
		run.Bold()
	}
	if r.Italic {
		run.Italic()
	}
	if r.Color != "" {
		run.Color(r.Color)
	}
	if r.Size > 0 {
		// w:sz is measured in half-points.
		run.Size(strconv.Itoa(int(math.Round(r.Size * 2))))
	}
}
