package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/pkg/feature"
	"github.com/yaklabco/mdtree/pkg/parser"
	"github.com/yaklabco/mdtree/pkg/runner"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func newRunner() *runner.Runner {
	return runner.New(parser.New(feature.AllEnabled()))
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"readme.md":          "# a\n",
		"docs/guide.md":      "# b\n",
		"docs/old.markdown":  "# c\n",
		"docs/notes.txt":     "not markdown\n",
		"main.go":            "package main\n",
		".hidden/secret.md":  "# d\n",
		"vendor/dep/copy.md": "# e\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   root,
		ExcludeGlobs: []string{"vendor/"},
	})
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}

	assert.Equal(t, []string{"docs/guide.md", "docs/old.markdown", "readme.md"}, rels)
}

func TestDiscover_ExplicitFileBypassesExtensionFilter(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"notes.txt": "plain\n"})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: root,
		Paths:      []string{"notes.txt"},
	})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "notes.txt", filepath.Base(files[0]))
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"absent.md"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat")
}

func TestDiscover_ExcludeGlobVariants(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"keep.md":            "# k\n",
		"skip.md":            "# s\n",
		"build/artifact.md":  "# a\n",
		"deep/sub/genned.md": "# g\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   root,
		ExcludeGlobs: []string{"skip.md", "build/", "genned.md"},
	})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "keep.md", filepath.Base(files[0]))
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"page.mdx": "# x\n",
		"page.md":  "# y\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: root,
		Extensions: []string{".mdx"},
	})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "page.mdx", filepath.Base(files[0]))
}

func TestDiscover_DeduplicatesOverlappingPaths(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"docs/one.md": "# 1\n"})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: root,
		Paths:      []string{".", "docs", "docs/one.md"},
	})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestRun(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.md": "# First\n\nbody\n",
		"b.md": "# Second\n",
		"c.md": "```\nunterminated\n",
	})

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesParsed)
	assert.Zero(t, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.DiagnosticsTotal)
	assert.Equal(t, map[string]int{"unterminated-fence": 1}, result.Stats.DiagnosticsByKind)
	assert.Positive(t, result.Stats.NodesTotal)
	assert.True(t, result.HasDiagnostics())
	assert.False(t, result.HasErrors())

	// Outcomes come back in discovery order regardless of worker timing.
	require.Len(t, result.Files, 3)
	for i, want := range []string{"a.md", "b.md", "c.md"} {
		assert.Equal(t, want, filepath.Base(result.Files[i].Path))
		require.NotNil(t, result.Files[i].Doc)
	}
}

func TestRun_EmptyDirectory(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)

	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasDiagnostics())
}

func TestRun_UnreadableFileCountsAsError(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"ok.md": "fine\n"})
	require.NoError(t, os.Symlink(filepath.Join(root, "absent"), filepath.Join(root, "bad.md")))

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root})
	require.NoError(t, err, "per-file failures should not fail the run")

	assert.Equal(t, 1, result.Stats.FilesParsed)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.True(t, result.HasErrors())

	var failed *runner.FileOutcome
	for i := range result.Files {
		if result.Files[i].Error != nil {
			failed = &result.Files[i]
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, "bad.md", filepath.Base(failed.Path))
	assert.Nil(t, failed.Doc)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"a.md": "x\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{WorkingDir: root})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_SingleWorker(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.md": "one\n",
		"b.md": "two\n",
	})

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Jobs: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Stats.FilesParsed)
}

func TestRun_InferLanguages(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"code.md": "```\n#!/bin/bash\necho hi\n```\n",
	})

	r := newRunner()
	r.InferLanguages = true

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: root})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	doc := result.Files[0].Doc
	block := doc.Root.FirstChild
	require.NotNil(t, block)
	assert.Equal(t, "bash", block.Block.CodeBlock.Language)
}
