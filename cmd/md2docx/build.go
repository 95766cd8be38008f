// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/md2docx/internal/consolidate"
	"github.com/pdiddy/md2docx/internal/ledger"
	"github.com/pdiddy/md2docx/internal/source"
	"github.com/pdiddy/md2docx/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build [files...]",
	Short: "Consolidate markdown files into a single .docx",
	Long: `Build reads the configured sections from the input directory in order
and writes one Word document with a title page, an index of sections, and
the rendered content of every file that exists.

Positional files replace the configured section order. With neither, every
*.md file in the input directory is used, README.md first.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("input-dir", "", "directory containing the markdown inputs (default: docs)")
	buildCmd.Flags().String("output-dir", "", "directory receiving the .docx (default: Word)")
	buildCmd.Flags().StringP("output", "o", "", "output filename inside output-dir")
	buildCmd.Flags().String("report", "", "write a build report (.yaml or .json)")
	buildCmd.Flags().String("ledger", "", "record the build in this SQLite database")
	buildCmd.Flags().Bool("title-from-heading", false, "use each file's first level-1 heading as its index entry")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadBuildConfig(cmd, args)
	if err != nil {
		return err
	}

	report, err := consolidate.Build(cfg, os.Stdout)
	if err != nil {
		return err
	}

	if cfg.LedgerPath != "" {
		id, err := recordBuild(cmd.Context(), cfg.LedgerPath, report)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Recorded build #%d in %s\n", id, cfg.LedgerPath)
	}
	return nil
}

// loadBuildConfig decodes the viper configuration, applies flag overrides,
// and resolves the section list.
func loadBuildConfig(cmd *cobra.Command, args []string) (types.BuildConfig, error) {
	var cfg types.BuildConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("input-dir") {
		cfg.InputDir, _ = flags.GetString("input-dir")
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("output") {
		cfg.OutputFile, _ = flags.GetString("output")
	}
	if flags.Changed("report") {
		cfg.ReportFile, _ = flags.GetString("report")
	}
	if flags.Changed("ledger") {
		cfg.LedgerPath, _ = flags.GetString("ledger")
	}
	if flags.Changed("title-from-heading") {
		cfg.Index.TitleFromHeading, _ = flags.GetBool("title-from-heading")
	}

	cfg = cfg.WithDefaults()
	sections, err := resolveSections(cfg, args)
	if err != nil {
		return cfg, err
	}
	cfg.Sections = sections
	return cfg, nil
}

// resolveSections picks the inputs for a run: positional files (keeping any
// configured titles), then the configured list, then directory discovery.
func resolveSections(cfg types.BuildConfig, files []string) ([]types.Section, error) {
	if len(files) > 0 {
		titles := make(map[string]string, len(cfg.Sections))
		for _, s := range cfg.Sections {
			titles[s.File] = s.Title
		}
		sections := types.SectionsFromFiles(files)
		for i := range sections {
			sections[i].Title = titles[sections[i].File]
		}
		return sections, nil
	}
	if len(cfg.Sections) > 0 {
		return cfg.Sections, nil
	}

	discovered, err := source.Discover(cfg.InputDir)
	if err != nil {
		return nil, err
	}
	if len(discovered) == 0 {
		return nil, fmt.Errorf("no markdown files found in %s", cfg.InputDir)
	}
	return types.SectionsFromFiles(discovered), nil
}

func recordBuild(ctx context.Context, path string, report types.BuildReport) (int64, error) {
	l, err := ledger.Open(path)
	if err != nil {
		return 0, err
	}
	defer l.Close()

	return l.Record(ctx, report)
}
