package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/pkg/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscover_FindsInWorkDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := filepath.Join(dir, ".mdtree.yml")
	writeFile(t, want, "features:\n  disable: []\n")

	got, err := config.Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDiscover_WalksUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	want := filepath.Join(root, "mdtree.yaml")
	writeFile(t, want, "")

	nested := filepath.Join(root, "docs", "guides")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := config.Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDiscover_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".mdtree.yml"), "")

	project := filepath.Join(root, "project")
	require.NoError(t, os.MkdirAll(filepath.Join(project, ".git"), 0o755))

	got, err := config.Discover(project)
	require.NoError(t, err)
	assert.Empty(t, got, "search should stop at the repo boundary")
}

func TestDiscover_PrefersHiddenName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	hidden := filepath.Join(dir, ".mdtree.yml")
	writeFile(t, hidden, "")
	writeFile(t, filepath.Join(dir, "mdtree.yml"), "")

	got, err := config.Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, hidden, got)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".mdtree.yml")
	writeFile(t, path, "features:\n  disable:\n    - emoji\n")

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"emoji"}, cfg.Features.Disable)
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFile(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_ExplicitPathWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".mdtree.yml"), "features:\n  disable:\n    - table\n")

	explicit := filepath.Join(dir, "other.yml")
	writeFile(t, explicit, "features:\n  disable:\n    - emoji\n")

	cfg, err := config.Load(dir, explicit)
	require.NoError(t, err)
	assert.Equal(t, []string{"emoji"}, cfg.Features.Disable)
}

func TestLoad_DefaultsWhenNothingFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))

	cfg, err := config.Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, config.FormatTree, cfg.Format)
	assert.Empty(t, cfg.Features.Disable)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))

	t.Setenv("MDTREE_FORMAT", "json")
	t.Setenv("MDTREE_JOBS", "4")
	t.Setenv("MDTREE_DISABLE", "emoji, table")

	cfg, err := config.Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, []string{"emoji", "table"}, cfg.Features.Disable)
}

func TestLoad_EnvErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad format", map[string]string{"MDTREE_FORMAT": "xml"}, "unknown output format"},
		{"bad jobs", map[string]string{"MDTREE_JOBS": "lots"}, "non-negative integer"},
		{"negative jobs", map[string]string{"MDTREE_JOBS": "-2"}, "non-negative integer"},
		{"unknown disable", map[string]string{"MDTREE_DISABLE": "blink"}, "unrecognized feature tag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load(dir, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
