// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package consolidate drives a build: it loads the configured inputs in
// order, lays out the title page and section index, renders each input
// into one document, and saves it as a .docx file.
//
// Inputs that are missing or unreadable are skipped with a warning; a
// failure to create or write the output aborts the build.
package consolidate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"github.com/pdiddy/md2docx/internal/document"
	"github.com/pdiddy/md2docx/internal/docx"
	"github.com/pdiddy/md2docx/internal/outline"
	"github.com/pdiddy/md2docx/internal/render"
	"github.com/pdiddy/md2docx/internal/source"
	"github.com/pdiddy/md2docx/pkg/types"
)

const (
	subtitleSize  = 18
	subtitleColor = "444444"
	infoSize      = 12
)

var warnColor = color.New(color.FgYellow)

// input pairs a configured section with its loaded content. src is nil
// and err set when the file could not be loaded.
type input struct {
	section types.Section
	src     *source.Source
	err     error
	title   string
}

// Build runs one consolidation with cfg, writing progress lines to w. It
// returns the report of what was rendered and skipped.
func Build(cfg types.BuildConfig, w io.Writer) (types.BuildReport, error) {
	cfg = cfg.WithDefaults()
	start := time.Now()

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return types.BuildReport{}, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	doc, report, err := compose(cfg, w)
	if err != nil {
		return report, err
	}
	report.StartedAt = start.UTC()

	if err := docx.Save(doc, report.Output); err != nil {
		return report, err
	}
	report.Duration = time.Since(start)

	fmt.Fprintf(w, "\nBuild summary: %d rendered, %d skipped (total: %d)\n",
		report.Rendered(), report.Skipped(), len(report.Sections))
	fmt.Fprintf(w, "Output: %s\n", report.Output)

	if cfg.ReportFile != "" {
		if err := WriteReport(cfg.ReportFile, report); err != nil {
			return report, err
		}
	}
	return report, nil
}

// compose builds the in-memory document for cfg without touching the
// output directory. cfg must already have defaults applied.
func compose(cfg types.BuildConfig, w io.Writer) (*document.Document, types.BuildReport, error) {
	report := types.BuildReport{Output: filepath.Join(cfg.OutputDir, cfg.OutputFile)}

	inputs := loadInputs(cfg)

	doc := document.New(document.Metadata{
		Title:    cfg.Metadata.Title,
		Author:   cfg.Metadata.Author,
		Comments: cfg.Metadata.Comments,
	})
	addTitlePage(doc, cfg.TitlePage)

	titles := make([]string, len(inputs))
	for i, in := range inputs {
		titles[i] = in.title
	}
	addIndex(doc, cfg.Index, titles)

	r := render.New(render.Options{
		DiagramTags:  cfg.DiagramTags,
		DiagramLabel: cfg.Labels.Diagram,
		CodeLabel:    cfg.Labels.Code,
	})

	rendered := 0
	for _, in := range inputs {
		sr := types.SectionReport{File: in.section.File, Title: in.title}
		if in.src == nil {
			sr.Status = types.SectionSkipped
			sr.Warning = skipWarning(in)
			warnColor.Fprintf(w, "warning: %s\n", sr.Warning)
			report.Sections = append(report.Sections, sr)
			continue
		}

		if rendered > 0 {
			doc.AddPageBreak()
		}
		sr.Status = types.SectionRendered
		sr.Elements = r.Render(doc, in.src.Body)
		report.Sections = append(report.Sections, sr)
		rendered++
		fmt.Fprintf(w, "rendered: %s\n", in.section.File)
	}
	return doc, report, nil
}

// loadInputs reads every configured section once. A file that cannot be
// loaded yields an input with a nil source and the load error.
func loadInputs(cfg types.BuildConfig) []input {
	inputs := make([]input, 0, len(cfg.Sections))
	for _, sec := range cfg.Sections {
		src, err := source.Load(cfg.InputDir, sec.File)
		inputs = append(inputs, input{
			section: sec,
			src:     src,
			err:     err,
			title:   sectionTitle(sec, src, cfg),
		})
	}
	return inputs
}

func skipWarning(in input) string {
	if errors.Is(in.err, source.ErrNotFound) {
		return fmt.Sprintf("%s not found, skipping", in.section.File)
	}
	return fmt.Sprintf("%v, skipping", in.err)
}

// sectionTitle picks the index entry for a section: configured title,
// frontmatter title, first level-1 heading (when enabled), then filename.
func sectionTitle(sec types.Section, src *source.Source, cfg types.BuildConfig) string {
	if sec.Title != "" {
		return sec.Title
	}
	if src != nil {
		if src.Title != "" {
			return src.Title
		}
		if cfg.Index.TitleFromHeading {
			if t := outline.Parse([]byte(src.Body), cfg.DiagramTags).Title(); t != "" {
				return t
			}
		}
	}
	return source.DeriveTitle(sec.File)
}

func addTitlePage(doc *document.Document, tp types.TitlePage) {
	doc.AddHeading(tp.Title, 0).Align = document.AlignCenter

	if tp.Subtitle != "" {
		sub := doc.AddParagraph(tp.Subtitle, "")
		sub.Align = document.AlignCenter
		sub.Runs[0].Size = subtitleSize
		sub.Runs[0].Color = subtitleColor
	}

	doc.AddParagraph("", "")

	if len(tp.Lines) > 0 {
		info := doc.AddParagraph("", "")
		info.Align = document.AlignCenter
		for i, line := range tp.Lines {
			if i < len(tp.Lines)-1 {
				line += "\n"
			}
			info.AddRun(line).Size = infoSize
		}
	}

	doc.AddPageBreak()
}

func addIndex(doc *document.Document, idx types.IndexConfig, titles []string) {
	doc.AddHeading(idx.Heading, 1)
	doc.AddParagraph("", "").AddRun(idx.Note).Italic = true
	doc.AddParagraph("", "")
	for _, t := range titles {
		doc.AddListItem(t, true)
	}
	doc.AddPageBreak()
}
