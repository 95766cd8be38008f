// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the md2docx CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the md2docx CLI.
var rootCmd = &cobra.Command{
	Use:   "md2docx",
	Short: "Consolidate markdown documentation into one Word document",
	Long: `md2docx merges an ordered set of markdown files into a single .docx
file with a title page, a section index, and one page per input.

Headings, bullet and numbered lists, inline bold/italic/code, fenced code
blocks, and diagram blocks (mermaid by default) are carried over. Inputs
that are missing are skipped with a warning.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./md2docx.yaml or ~/.config/md2docx/md2docx.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("md2docx")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "md2docx"))
		}
	}

	viper.SetEnvPrefix("MD2DOCX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "warning: reading config %s: %v\n", cfgFile, err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
