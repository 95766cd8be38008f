// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source reads markdown inputs from the input directory. A missing
// file is reported as ErrNotFound so the caller can skip it; any other read
// failure is returned as-is.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNotFound indicates that a named input does not exist.
var ErrNotFound = errors.New("input not found")

const readmeFile = "README.md"

// Source is one loaded input document.
type Source struct {
	// File is the name relative to the input directory.
	File string

	// Path is the full path the content was read from.
	Path string

	// Title is the frontmatter title, if the file declares one.
	Title string

	// Body is the markdown content with any frontmatter removed.
	Body string
}

type frontMatter struct {
	Title string `yaml:"title" toml:"title"`
}

// Load reads file from dir. A missing file returns an error wrapping
// ErrNotFound.
func Load(dir, file string) (*Source, error) {
	path := filepath.Join(dir, file)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", file, ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	title, body := splitFrontMatter(data)
	return &Source{
		File:  file,
		Path:  path,
		Title: title,
		Body:  body,
	}, nil
}

// splitFrontMatter removes a leading YAML or TOML frontmatter block. Content
// whose leading block does not parse is returned whole, since a document may
// open with a thematic break.
func splitFrontMatter(data []byte) (string, string) {
	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return "", string(data)
	}
	return strings.TrimSpace(meta.Title), string(body)
}

// DeriveTitle turns a filename into an index entry: extension dropped,
// dashes and underscores become spaces, words title-cased.
func DeriveTitle(file string) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return cases.Title(language.Und).String(strings.TrimSpace(base))
}

// Discover lists the markdown files directly inside dir, sorted by name
// with README.md first.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			files = append(files, e.Name())
		}
	}
	sort.SliceStable(files, func(i, j int) bool {
		ri, rj := strings.EqualFold(files[i], readmeFile), strings.EqualFold(files[j], readmeFile)
		if ri != rj {
			return ri
		}
		return files[i] < files[j]
	})
	return files, nil
}
