// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SectionStatus indicates what happened to one input during a build.
type SectionStatus string

const (
	SectionRendered SectionStatus = "rendered"
	SectionSkipped  SectionStatus = "skipped"
)

// ElementCounts tallies the elements a section contributed to the document.
type ElementCounts struct {
	Headings            int `json:"headings" yaml:"headings"`
	Paragraphs          int `json:"paragraphs" yaml:"paragraphs"`
	ListItems           int `json:"list_items" yaml:"list_items"`
	CodeBlocks          int `json:"code_blocks" yaml:"code_blocks"`
	Diagrams            int `json:"diagrams" yaml:"diagrams"`
	DroppedPlaceholders int `json:"dropped_placeholders,omitempty" yaml:"dropped_placeholders,omitempty"`
}

// SectionReport records the outcome for one configured section.
type SectionReport struct {
	File     string        `json:"file" yaml:"file"`
	Title    string        `json:"title" yaml:"title"`
	Status   SectionStatus `json:"status" yaml:"status"`
	Warning  string        `json:"warning,omitempty" yaml:"warning,omitempty"`
	Elements ElementCounts `json:"elements" yaml:"elements"`
}

// BuildReport summarises one consolidation run.
type BuildReport struct {
	Output    string          `json:"output" yaml:"output"`
	StartedAt time.Time       `json:"started_at" yaml:"started_at"`
	Duration  time.Duration   `json:"duration" yaml:"duration"`
	Sections  []SectionReport `json:"sections" yaml:"sections"`
}

// Rendered returns the number of sections written to the document.
func (r BuildReport) Rendered() int {
	n := 0
	for _, s := range r.Sections {
		if s.Status == SectionRendered {
			n++
		}
	}
	return n
}

// Skipped returns the number of sections omitted from the document.
func (r BuildReport) Skipped() int {
	return len(r.Sections) - r.Rendered()
}

// Warnings returns the warning text of every skipped section, in order.
func (r BuildReport) Warnings() []string {
	var out []string
	for _, s := range r.Sections {
		if s.Warning != "" {
			out = append(out, s.Warning)
		}
	}
	return out
}
