package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "xdgtheme"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "xdgtheme", "config.yaml"), []byte(content), 0o644))
}

func TestLoadConfig(t *testing.T) {
	writeConfig(t, "theme: Papirus\nsearch_dirs:\n  - /opt/icons\nextensions:\n  - svg\n  - png\n")

	cfg := loadConfig()
	assert.Equal(t, "Papirus", cfg.Theme)
	assert.Equal(t, []string{"/opt/icons"}, cfg.SearchDirs)
	assert.Equal(t, []string{"svg", "png"}, cfg.Extensions)
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	assert.Equal(t, Config{}, loadConfig())
}

func TestLoadConfigMalformed(t *testing.T) {
	writeConfig(t, "theme: [unclosed\n")
	assert.Equal(t, Config{}, loadConfig())
}
