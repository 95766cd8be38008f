// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDefaults(t *testing.T) {
	c := BuildConfig{}.WithDefaults()

	assert.Equal(t, DefaultInputDir, c.InputDir)
	assert.Equal(t, DefaultOutputDir, c.OutputDir)
	assert.Equal(t, DefaultOutputFile, c.OutputFile)
	assert.Equal(t, DefaultTitle, c.TitlePage.Title)
	assert.Equal(t, DefaultTitle, c.Metadata.Title)
	assert.Equal(t, DefaultIndexHeading, c.Index.Heading)
	assert.Equal(t, DefaultIndexNote, c.Index.Note)
	assert.Equal(t, DefaultDiagramLabel, c.Labels.Diagram)
	assert.Equal(t, DefaultCodeLabel, c.Labels.Code)
	assert.Equal(t, []string{"mermaid"}, c.DiagramTags)

	// The default tag list is cloned, not shared.
	c.DiagramTags[0] = "plantuml"
	assert.Equal(t, []string{"mermaid"}, DefaultDiagramTags)
}

func TestWithDefaultsKeepsSetFields(t *testing.T) {
	c := BuildConfig{
		InputDir:    "in",
		TitlePage:   TitlePage{Title: "GanaderaSoft"},
		Metadata:    Metadata{Title: "Consolidated"},
		DiagramTags: []string{"plantuml"},
	}.WithDefaults()

	assert.Equal(t, "in", c.InputDir)
	assert.Equal(t, "GanaderaSoft", c.TitlePage.Title)
	assert.Equal(t, "Consolidated", c.Metadata.Title)
	assert.Equal(t, []string{"plantuml"}, c.DiagramTags)
}

func TestMetadataTitleFollowsTitlePage(t *testing.T) {
	c := BuildConfig{TitlePage: TitlePage{Title: "GanaderaSoft"}}.WithDefaults()
	assert.Equal(t, "GanaderaSoft", c.Metadata.Title)
}

func TestSectionsFromFiles(t *testing.T) {
	assert.Equal(t, []Section{{File: "a.md"}, {File: "b.md"}}, SectionsFromFiles([]string{"a.md", "b.md"}))
	assert.Empty(t, SectionsFromFiles(nil))
}

func TestBuildReportTallies(t *testing.T) {
	r := BuildReport{Sections: []SectionReport{
		{File: "a.md", Status: SectionRendered},
		{File: "b.md", Status: SectionSkipped, Warning: "b.md not found, skipping"},
		{File: "c.md", Status: SectionRendered},
	}}

	assert.Equal(t, 2, r.Rendered())
	assert.Equal(t, 1, r.Skipped())
	assert.Equal(t, []string{"b.md not found, skipping"}, r.Warnings())
	assert.Nil(t, BuildReport{}.Warnings())
}
