// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/md2docx/internal/ledger"
	"github.com/pdiddy/md2docx/internal/render"
	"github.com/pdiddy/md2docx/pkg/types"
)

// newBuildFlags returns a command carrying the build flags, detached from
// rootCmd so tests can set them freely.
func newBuildFlags(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "build"}
	cmd.Flags().String("input-dir", "", "")
	cmd.Flags().String("output-dir", "", "")
	cmd.Flags().StringP("output", "o", "", "")
	cmd.Flags().String("report", "", "")
	cmd.Flags().String("ledger", "", "")
	cmd.Flags().Bool("title-from-heading", false, "")
	return cmd
}

func writeDocs(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("# "+n+"\n"), 0o644))
	}
	return dir
}

func TestLoadBuildConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(bytes.NewBufferString(`
input_dir: from-config
output_file: Config.docx
sections:
  - file: README.md
    title: Vision General
  - file: modulos.md
title_page:
  title: GanaderaSoft
labels:
  diagram: "Diagrama #%d:"
`)))

	cmd := newBuildFlags(t)
	require.NoError(t, cmd.Flags().Set("output", "Flag.docx"))

	cfg, err := loadBuildConfig(cmd, nil)
	require.NoError(t, err)

	assert.Equal(t, "from-config", cfg.InputDir)
	assert.Equal(t, "Flag.docx", cfg.OutputFile)
	assert.Equal(t, types.DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, []types.Section{
		{File: "README.md", Title: "Vision General"},
		{File: "modulos.md"},
	}, cfg.Sections)
	assert.Equal(t, "GanaderaSoft", cfg.Metadata.Title)
	assert.Equal(t, "Diagrama #%d:", cfg.Labels.Diagram)
	assert.Equal(t, types.DefaultCodeLabel, cfg.Labels.Code)
}

func TestResolveSections(t *testing.T) {
	dir := writeDocs(t, "zeta.md", "README.md", "alpha.md")

	tests := []struct {
		name       string
		configured []types.Section
		args       []string
		want       []types.Section
	}{
		{
			name:       "args keep configured titles",
			configured: []types.Section{{File: "alpha.md", Title: "Alpha Title"}},
			args:       []string{"zeta.md", "alpha.md"},
			want:       []types.Section{{File: "zeta.md"}, {File: "alpha.md", Title: "Alpha Title"}},
		},
		{
			name:       "configured order",
			configured: []types.Section{{File: "zeta.md"}, {File: "README.md"}},
			want:       []types.Section{{File: "zeta.md"}, {File: "README.md"}},
		},
		{
			name: "discovered with README first",
			want: []types.Section{{File: "README.md"}, {File: "alpha.md"}, {File: "zeta.md"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := types.BuildConfig{InputDir: dir, Sections: tt.configured}
			got, err := resolveSections(cfg, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSectionsEmptyDir(t *testing.T) {
	_, err := resolveSections(types.BuildConfig{InputDir: t.TempDir()}, nil)
	assert.ErrorContains(t, err, "no markdown files")
}

func TestPrintLineRules(t *testing.T) {
	dir := t.TempDir()
	body := "# Title\n\n```mermaid\ngraph TD\n```\n\n```go\n- not a bullet\n```\n- item\n[DIAGRAM #9]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte(body), 0o644))

	cfg := types.BuildConfig{
		InputDir: dir,
		Sections: []types.Section{{File: "a.md"}, {File: "gone.md"}},
	}.WithDefaults()

	var buf bytes.Buffer
	require.NoError(t, printLineRules(&buf, cfg))

	out := buf.String()
	assert.Contains(t, out, "== a.md\n")
	assert.Contains(t, out, "heading    # Title")
	assert.Contains(t, out, "diagram    [DIAGRAM #1]")
	assert.Contains(t, out, "code       - not a bullet")
	assert.Contains(t, out, "bullet     - item")
	assert.Contains(t, out, "paragraph  [DIAGRAM #9]")
	assert.NotContains(t, out, render.PlaceholderMark)
	assert.Contains(t, out, "== gone.md (missing)")
}

func TestInspectSections(t *testing.T) {
	dir := writeDocs(t, "a.md")
	cfg := types.BuildConfig{
		InputDir: dir,
		Sections: []types.Section{{File: "a.md"}, {File: "gone.md"}},
	}.WithDefaults()

	results, err := inspectSections(cfg)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a.md", results[0].Outline.Title())
	assert.True(t, results[1].Missing)

	var buf bytes.Buffer
	formatInspectTable(&buf, results)
	assert.Contains(t, buf.String(), "(missing)")
}

func TestFormatHistoryTable(t *testing.T) {
	var buf bytes.Buffer
	formatHistoryTable(&buf, nil)
	assert.Equal(t, "No builds recorded.\n", buf.String())

	buf.Reset()
	formatHistoryTable(&buf, []ledger.Build{{
		ID:        7,
		Output:    "Word/Doc.docx",
		StartedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Duration:  1234567 * time.Microsecond,
		Rendered:  3,
		Skipped:   1,
		Sections:  []types.SectionReport{{File: "x.md", Warning: "x.md not found, skipping"}},
	}})
	out := buf.String()
	assert.Contains(t, out, "Word/Doc.docx")
	assert.Contains(t, out, "1.235s")
	assert.Contains(t, out, "warning: x.md not found, skipping")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Documen...", truncate("Documentación", 10))
}
