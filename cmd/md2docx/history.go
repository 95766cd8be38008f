// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/md2docx/internal/ledger"
)

const defaultLedgerPath = ".md2docx/builds.db"

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded builds",
	Long: `History reads the build ledger written by "build --ledger" and lists
past runs, newest first, with rendered and skipped section counts.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("ledger", "", "SQLite build ledger (default: ledger_path from config or "+defaultLedgerPath+")")
	historyCmd.Flags().Int("limit", 0, "maximum builds to list (0 = use default)")
	historyCmd.Flags().Bool("json", false, "output builds as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("ledger")
	if path == "" {
		path = viper.GetString("ledger_path")
	}
	if path == "" {
		path = defaultLedgerPath
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no build ledger at %s: run build with --ledger first", path)
	}

	l, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer l.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	builds, err := l.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(builds)
	}
	formatHistoryTable(os.Stdout, builds)
	return nil
}

func formatHistoryTable(w io.Writer, builds []ledger.Build) {
	if len(builds) == 0 {
		fmt.Fprintln(w, "No builds recorded.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-20s  %-40s  %8s  %7s  %8s\n",
		"ID", "Started", "Output", "Rendered", "Skipped", "Duration")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, b := range builds {
		fmt.Fprintf(w, "%-5d  %-20s  %-40s  %8d  %7d  %8s\n",
			b.ID, b.StartedAt.Local().Format("2006-01-02 15:04:05"),
			truncate(b.Output, 40), b.Rendered, b.Skipped, b.Duration.Round(time.Millisecond))
		for _, s := range b.Sections {
			if s.Warning != "" {
				fmt.Fprintf(w, "       warning: %s\n", s.Warning)
			}
		}
	}
}
