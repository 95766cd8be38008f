// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile is a test helper that creates a file with the given content.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "modules.md", "# Modules\n\nBody text.\n")

	src, err := Load(dir, "modules.md")
	require.NoError(t, err)
	assert.Equal(t, "modules.md", src.File)
	assert.Equal(t, filepath.Join(dir, "modules.md"), src.Path)
	assert.Empty(t, src.Title)
	assert.Equal(t, "# Modules\n\nBody text.\n", src.Body)
}

func TestLoadFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "api.md", "---\ntitle: API Services\nowner: backend\n---\n# Endpoints\n")

	src, err := Load(dir, "api.md")
	require.NoError(t, err)
	assert.Equal(t, "API Services", src.Title)
	assert.NotContains(t, src.Body, "owner:")
	assert.Contains(t, src.Body, "# Endpoints")
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir(), "absent.md")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadUnreadable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.md"), 0o755))

	_, err := Load(dir, "folder.md")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{file: "arquitectura.md", want: "Arquitectura"},
		{file: "estrategia-offline.md", want: "Estrategia Offline"},
		{file: "api-servicios.md", want: "Api Servicios"},
		{file: "base_datos.md", want: "Base Datos"},
		{file: "nested/testing.md", want: "Testing"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTitle(tt.file))
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"testing.md", "README.md", "arquitectura.md", "notes.txt", ".hidden.md"} {
		writeFile(t, dir, name, "x")
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.md"), 0o755))

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "arquitectura.md", "testing.md"}, files)
}

func TestDiscoverMissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
