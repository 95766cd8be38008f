// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/md2docx/internal/outline"
	"github.com/pdiddy/md2docx/internal/render"
	"github.com/pdiddy/md2docx/internal/source"
	"github.com/pdiddy/md2docx/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [files...]",
	Short: "Show the structure of the input files",
	Long: `Inspect parses each input with a CommonMark parser and prints its
headings, list, code block, and diagram counts. Use it to check a
documentation set before building.

With --lines, every line is shown with the rule the build scanner would
apply to it.`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().String("input-dir", "", "directory containing the markdown inputs (default: docs)")
	inspectCmd.Flags().Bool("json", false, "output outlines as JSON")
	inspectCmd.Flags().Bool("yaml", false, "output outlines as YAML")
	inspectCmd.Flags().Bool("lines", false, "print the scanner rule for every line")

	rootCmd.AddCommand(inspectCmd)
}

// inspection is the outline of one input.
type inspection struct {
	File    string          `json:"file" yaml:"file"`
	Missing bool            `json:"missing,omitempty" yaml:"missing,omitempty"`
	Outline outline.Outline `json:"outline" yaml:"outline"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadBuildConfig(cmd, args)
	if err != nil {
		return err
	}

	lines, _ := cmd.Flags().GetBool("lines")
	if lines {
		return printLineRules(os.Stdout, cfg)
	}

	results, err := inspectSections(cfg)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	yamlOutput, _ := cmd.Flags().GetBool("yaml")
	switch {
	case jsonOutput:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case yamlOutput:
		data, err := yaml.Marshal(results)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	formatInspectTable(os.Stdout, results)
	return nil
}

func inspectSections(cfg types.BuildConfig) ([]inspection, error) {
	results := make([]inspection, 0, len(cfg.Sections))
	for _, sec := range cfg.Sections {
		src, err := source.Load(cfg.InputDir, sec.File)
		if errors.Is(err, source.ErrNotFound) {
			results = append(results, inspection{File: sec.File, Missing: true})
			continue
		}
		if err != nil {
			return nil, err
		}
		results = append(results, inspection{
			File:    sec.File,
			Outline: outline.Parse([]byte(src.Body), cfg.DiagramTags),
		})
	}
	return results, nil
}

func formatInspectTable(w io.Writer, results []inspection) {
	fmt.Fprintf(w, "%-28s  %-32s  %8s  %5s  %4s  %8s\n",
		"File", "Title", "Headings", "Lists", "Code", "Diagrams")
	fmt.Fprintln(w, strings.Repeat("-", 96))

	for _, r := range results {
		if r.Missing {
			fmt.Fprintf(w, "%-28s  %s\n", truncate(r.File, 28), "(missing)")
			continue
		}
		o := r.Outline
		fmt.Fprintf(w, "%-28s  %-32s  %8d  %5d  %4d  %8d\n",
			truncate(r.File, 28), truncate(o.Title(), 32),
			len(o.Headings), o.Lists, o.CodeBlocks, o.Diagrams)
	}
}

// printLineRules shows the scanner rule chosen for each line of every
// input, after diagram extraction.
func printLineRules(w io.Writer, cfg types.BuildConfig) error {
	ex := render.NewExtractor(cfg.DiagramTags)
	for _, sec := range cfg.Sections {
		src, err := source.Load(cfg.InputDir, sec.File)
		if errors.Is(err, source.ErrNotFound) {
			fmt.Fprintf(w, "== %s (missing)\n", sec.File)
			continue
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "== %s\n", sec.File)
		text, _ := ex.Extract(src.Body)
		inCode := false
		for i, line := range strings.Split(text, "\n") {
			rule := render.Classify(line)
			switch {
			case rule == "fence":
				inCode = !inCode
			case inCode:
				rule = "code"
			}
			fmt.Fprintf(w, "%4d  %-9s  %s\n", i+1, rule, strings.TrimPrefix(line, render.PlaceholderMark))
		}
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
