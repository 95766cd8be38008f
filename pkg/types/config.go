// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "slices"

const (
	DefaultInputDir   = "docs"
	DefaultOutputDir  = "Word"
	DefaultOutputFile = "Documentation.docx"
	DefaultTitle      = "Documentation"

	DefaultDiagramLabel = "Diagram #%d:"
	DefaultCodeLabel    = "Code (%s):"
	DefaultIndexHeading = "Contents"
	DefaultIndexNote    = "This section lists the documents consolidated below."
)

// DefaultDiagramTags lists the fence tags treated as diagram notation.
var DefaultDiagramTags = []string{"mermaid"}

// Section names one input document in the consolidated output.
type Section struct {
	// File is the input filename relative to the input directory (e.g. "README.md").
	File string `json:"file" yaml:"file" mapstructure:"file"`

	// Title overrides the entry shown in the index. Empty means derive it
	// from frontmatter, the first heading, or the filename.
	Title string `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
}

// TitlePage holds the content of the cover page.
type TitlePage struct {
	Title    string   `json:"title" yaml:"title" mapstructure:"title"`
	Subtitle string   `json:"subtitle" yaml:"subtitle" mapstructure:"subtitle"`
	Lines    []string `json:"lines" yaml:"lines" mapstructure:"lines"`
}

// Metadata holds the document core properties.
type Metadata struct {
	Title    string `json:"title" yaml:"title" mapstructure:"title"`
	Author   string `json:"author" yaml:"author" mapstructure:"author"`
	Comments string `json:"comments" yaml:"comments" mapstructure:"comments"`
}

// IndexConfig controls the generated section listing.
type IndexConfig struct {
	Heading string `json:"heading" yaml:"heading" mapstructure:"heading"`
	Note    string `json:"note" yaml:"note" mapstructure:"note"`

	// TitleFromHeading uses the first level-1 heading of each input as its
	// index entry when no explicit or frontmatter title is present.
	TitleFromHeading bool `json:"title_from_heading" yaml:"title_from_heading" mapstructure:"title_from_heading"`
}

// Labels holds the format strings for generated captions.
type Labels struct {
	// Diagram takes the 1-based diagram number (e.g. "Diagram #%d:").
	Diagram string `json:"diagram" yaml:"diagram" mapstructure:"diagram"`

	// Code takes the fence language (e.g. "Code (%s):").
	Code string `json:"code" yaml:"code" mapstructure:"code"`
}

// BuildConfig holds settings for one consolidation run.
type BuildConfig struct {
	// InputDir is the directory containing the markdown inputs.
	InputDir string `json:"input_dir" yaml:"input_dir" mapstructure:"input_dir"`

	// OutputDir is created if missing and receives OutputFile.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// OutputFile is the DOCX filename inside OutputDir.
	OutputFile string `json:"output_file" yaml:"output_file" mapstructure:"output_file"`

	// Sections is the ordered list of inputs.
	Sections []Section `json:"sections" yaml:"sections" mapstructure:"sections"`

	TitlePage TitlePage   `json:"title_page" yaml:"title_page" mapstructure:"title_page"`
	Metadata  Metadata    `json:"metadata" yaml:"metadata" mapstructure:"metadata"`
	Index     IndexConfig `json:"index" yaml:"index" mapstructure:"index"`
	Labels    Labels      `json:"labels" yaml:"labels" mapstructure:"labels"`

	// DiagramTags lists fence tags rendered as diagrams (default "mermaid").
	DiagramTags []string `json:"diagram_tags" yaml:"diagram_tags" mapstructure:"diagram_tags"`

	// ReportFile, when set, receives a YAML or JSON build report (by extension).
	ReportFile string `json:"report_file,omitempty" yaml:"report_file,omitempty" mapstructure:"report_file"`

	// LedgerPath, when set, is the SQLite database recording build history.
	LedgerPath string `json:"ledger_path,omitempty" yaml:"ledger_path,omitempty" mapstructure:"ledger_path"`
}

// WithDefaults returns a copy of c with zero-valued fields filled in.
func (c BuildConfig) WithDefaults() BuildConfig {
	if c.InputDir == "" {
		c.InputDir = DefaultInputDir
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.OutputFile == "" {
		c.OutputFile = DefaultOutputFile
	}
	if c.Index.Heading == "" {
		c.Index.Heading = DefaultIndexHeading
	}
	if c.Index.Note == "" {
		c.Index.Note = DefaultIndexNote
	}
	if c.Labels.Diagram == "" {
		c.Labels.Diagram = DefaultDiagramLabel
	}
	if c.Labels.Code == "" {
		c.Labels.Code = DefaultCodeLabel
	}
	if len(c.DiagramTags) == 0 {
		c.DiagramTags = slices.Clone(DefaultDiagramTags)
	}
	if c.TitlePage.Title == "" {
		c.TitlePage.Title = DefaultTitle
	}
	if c.Metadata.Title == "" {
		c.Metadata.Title = c.TitlePage.Title
	}
	return c
}

// SectionsFromFiles builds an ordered section list from bare filenames.
func SectionsFromFiles(files []string) []Section {
	sections := make([]Section, len(files))
	for i, f := range files {
		sections[i] = Section{File: f}
	}
	return sections
}
