// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package consolidate

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	wml "github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/md2docx/internal/document"
	"github.com/pdiddy/md2docx/pkg/types"
)

// writeInputs creates dir/name for every entry and returns dir.
func writeInputs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "docs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func texts(blocks []*document.Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Text()
	}
	return out
}

func TestComposeSkipsMissingSection(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"README.md": "# Overview\n\nHello **world**.\n",
	})
	cfg := types.BuildConfig{
		InputDir: dir,
		Sections: types.SectionsFromFiles([]string{"README.md", "missing.md"}),
	}.WithDefaults()

	var log bytes.Buffer
	doc, report, err := compose(cfg, &log)
	require.NoError(t, err)

	// Title page: title, spacer, break. Index: heading, note, spacer, two
	// entries, break. Content: heading, paragraph.
	want := []document.Kind{
		document.KindHeading, document.KindParagraph, document.KindPageBreak,
		document.KindHeading, document.KindParagraph, document.KindParagraph,
		document.KindListItem, document.KindListItem, document.KindPageBreak,
		document.KindHeading, document.KindParagraph,
	}
	got := make([]document.Kind, len(doc.Blocks))
	for i, b := range doc.Blocks {
		got[i] = b.Kind
	}
	assert.Equal(t, want, got)

	assert.Equal(t, []string{"Readme", "Missing"}, texts(doc.Filter(document.KindListItem)))
	assert.Equal(t, "Hello world.", doc.Last().Text())

	assert.Equal(t, 1, report.Rendered())
	assert.Equal(t, 1, report.Skipped())
	assert.Equal(t, []string{"missing.md not found, skipping"}, report.Warnings())
	assert.Contains(t, log.String(), "rendered: README.md")
	assert.Contains(t, log.String(), "warning: missing.md not found, skipping")
}

func TestComposePageBreaksBetweenRenderedSections(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"a.md": "# A\n",
		"b.md": "# B\n",
	})
	cfg := types.BuildConfig{
		InputDir: dir,
		Sections: types.SectionsFromFiles([]string{"gone.md", "a.md", "b.md"}),
	}.WithDefaults()

	doc, _, err := compose(cfg, &bytes.Buffer{})
	require.NoError(t, err)

	// Two boilerplate breaks plus one between a.md and b.md.
	assert.Equal(t, 3, doc.Count(document.KindPageBreak))

	// The first rendered section follows the index break directly.
	var afterIndex *document.Block
	for i, b := range doc.Blocks {
		if b.Kind == document.KindListItem && doc.Blocks[i+1].Kind == document.KindPageBreak {
			afterIndex = doc.Blocks[i+2]
			break
		}
	}
	require.NotNil(t, afterIndex)
	assert.Equal(t, "A", afterIndex.Text())
}

func TestComposeTitlePage(t *testing.T) {
	cfg := types.BuildConfig{
		InputDir: writeInputs(t, nil),
		TitlePage: types.TitlePage{
			Title:    "GanaderaSoft",
			Subtitle: "Consolidated",
			Lines:    []string{"one", "two"},
		},
		Metadata: types.Metadata{Author: "Team"},
	}.WithDefaults()

	doc, _, err := compose(cfg, &bytes.Buffer{})
	require.NoError(t, err)

	title := doc.Blocks[0]
	assert.Equal(t, document.StyleTitle, title.Style)
	assert.Equal(t, document.AlignCenter, title.Align)
	assert.Equal(t, "GanaderaSoft", title.Text())

	sub := doc.Blocks[1]
	assert.Equal(t, "Consolidated", sub.Text())
	assert.Equal(t, float64(subtitleSize), sub.Runs[0].Size)
	assert.Equal(t, subtitleColor, sub.Runs[0].Color)

	info := doc.Blocks[3]
	assert.Equal(t, "one\ntwo", info.Text())
	assert.Equal(t, document.AlignCenter, info.Align)

	assert.Equal(t, "GanaderaSoft", doc.Meta.Title)
	assert.Equal(t, "Team", doc.Meta.Author)
}

func TestComposeSkipsUnreadableSection(t *testing.T) {
	dir := writeInputs(t, nil)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.md"), 0o755))

	cfg := types.BuildConfig{
		InputDir: dir,
		Sections: types.SectionsFromFiles([]string{"folder.md"}),
	}.WithDefaults()

	var log bytes.Buffer
	doc, report, err := compose(cfg, &log)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Skipped())
	require.Len(t, report.Warnings(), 1)
	assert.Contains(t, report.Warnings()[0], "reading ")
	assert.Contains(t, log.String(), "warning: reading ")
	assert.Zero(t, doc.Count(document.KindCode))
	assert.Equal(t, []string{"Folder"}, texts(doc.Filter(document.KindListItem)))
}

func TestSectionTitle(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"front.md":       "---\ntitle: From Frontmatter\n---\n# Heading\n",
		"heading.md":     "Intro.\n\n# From Heading\n",
		"plain_notes.md": "no headings here\n",
	})

	tests := []struct {
		name    string
		section types.Section
		byHead  bool
		want    string
	}{
		{name: "configured", section: types.Section{File: "front.md", Title: "Configured"}, want: "Configured"},
		{name: "frontmatter", section: types.Section{File: "front.md"}, byHead: true, want: "From Frontmatter"},
		{name: "heading enabled", section: types.Section{File: "heading.md"}, byHead: true, want: "From Heading"},
		{name: "heading disabled", section: types.Section{File: "heading.md"}, want: "Heading"},
		{name: "filename fallback", section: types.Section{File: "plain_notes.md"}, byHead: true, want: "Plain Notes"},
		{name: "missing file", section: types.Section{File: "base-datos.md"}, want: "Base Datos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := types.BuildConfig{
				InputDir: dir,
				Sections: []types.Section{tt.section},
				Index:    types.IndexConfig{TitleFromHeading: tt.byHead},
			}.WithDefaults()

			inputs := loadInputs(cfg)
			require.Len(t, inputs, 1)
			assert.Equal(t, tt.want, inputs[0].title)
		})
	}
}

func TestBuild(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"README.md": "# Overview\n\n```mermaid\ngraph TD\n```\n",
	})
	out := filepath.Join(t.TempDir(), "nested", "Word")
	reportPath := filepath.Join(t.TempDir(), "report.json")

	var log bytes.Buffer
	report, err := Build(types.BuildConfig{
		InputDir:   dir,
		OutputDir:  out,
		OutputFile: "out.docx",
		Sections:   types.SectionsFromFiles([]string{"README.md", "gone.md"}),
		ReportFile: reportPath,
	}, &log)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, "out.docx"), report.Output)
	assert.False(t, report.StartedAt.IsZero())
	assert.Equal(t, 1, report.Sections[0].Elements.Diagrams)
	assert.Contains(t, log.String(), "Build summary: 1 rendered, 1 skipped (total: 2)")

	f, err := os.Open(report.Output)
	require.NoError(t, err)
	defer f.Close()
	info, err := f.Stat()
	require.NoError(t, err)
	saved, err := wml.Parse(f, info.Size())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.Document.Body.Items)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var decoded types.BuildReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Sections, 2)
}

func TestBuildOutputDirIsFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "Word")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Build(types.BuildConfig{
		InputDir:  writeInputs(t, nil),
		OutputDir: blocker,
	}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating output directory")
}

func TestWriteReport(t *testing.T) {
	r := types.BuildReport{
		Output: "Word/out.docx",
		Sections: []types.SectionReport{
			{File: "README.md", Title: "Overview", Status: types.SectionRendered},
		},
	}

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reports", "build.yml")
		require.NoError(t, WriteReport(path, r))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got types.BuildReport
		require.NoError(t, yaml.Unmarshal(data, &got))
		assert.Equal(t, r.Output, got.Output)
		assert.Equal(t, types.SectionRendered, got.Sections[0].Status)
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "build.JSON")
		require.NoError(t, WriteReport(path, r))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(string(data), "}\n"))
	})

	t.Run("unsupported", func(t *testing.T) {
		err := WriteReport(filepath.Join(t.TempDir(), "build.txt"), r)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported report format")
	})
}
