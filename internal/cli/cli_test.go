package cli_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/internal/cli"
	"github.com/yaklabco/mdtree/pkg/runner"
)

func buildInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test", Commit: "none", Date: "unknown"}
}

// execute runs the root command with args from workDir, with stdout
// redirected to a pipe to keep test output clean.
func execute(t *testing.T, workDir string, args ...string) error {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(workDir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(wd))
	})

	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = devNull.Close()
	})

	stdout := os.Stdout
	os.Stdout = devNull
	t.Cleanup(func() {
		os.Stdout = stdout
	})

	cmd := cli.NewRootCommand(buildInfo())
	cmd.SetArgs(args)
	cmd.SetOut(devNull)
	cmd.SetErr(devNull)
	return cmd.Execute()
}

func writeMarkdown(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	// A VCS marker keeps config discovery from walking above the
	// fixture directory.
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestParse_CleanRun(t *testing.T) {
	root := writeMarkdown(t, map[string]string{"a.md": "# Title\n"})

	err := execute(t, root, "parse")
	require.NoError(t, err)
	assert.Equal(t, cli.ExitSuccess, cli.ExitCode(err))
}

func TestParse_StrictWithDiagnostics(t *testing.T) {
	root := writeMarkdown(t, map[string]string{"a.md": "```\nnever closed\n"})

	err := execute(t, root, "parse", "--strict")
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrDiagnosticsFound)
	assert.Equal(t, cli.ExitDiagnostics, cli.ExitCode(err))
}

func TestParse_DiagnosticsWithoutStrict(t *testing.T) {
	root := writeMarkdown(t, map[string]string{"a.md": "```\nnever closed\n"})

	err := execute(t, root, "parse")
	assert.NoError(t, err, "diagnostics only fail the run in strict mode")
}

func TestParse_FileErrors(t *testing.T) {
	root := writeMarkdown(t, map[string]string{"ok.md": "fine\n"})
	require.NoError(t, os.Symlink(filepath.Join(root, "absent"), filepath.Join(root, "broken.md")))

	err := execute(t, root, "parse")
	require.Error(t, err)
	assert.Equal(t, cli.ExitFileErrors, cli.ExitCode(err))
	assert.NotErrorIs(t, err, cli.ErrDiagnosticsFound)
}

func TestParse_UnknownFormat(t *testing.T) {
	root := writeMarkdown(t, map[string]string{"a.md": "x\n"})

	err := execute(t, root, "parse", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
	assert.Equal(t, cli.ExitInternalError, cli.ExitCode(err))
}

func TestParse_UnknownFeatureTag(t *testing.T) {
	root := writeMarkdown(t, map[string]string{"a.md": "x\n"})

	err := execute(t, root, "parse", "--disable", "blink")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized feature tag")
}

func TestParse_ConfigFileApplies(t *testing.T) {
	root := writeMarkdown(t, map[string]string{
		"a.md":        "| a |\n|---|\n",
		".mdtree.yml": "features:\n  disable:\n    - blink\n",
	})

	err := execute(t, root, "parse")
	require.Error(t, err, "bad config should fail before parsing")
	assert.Contains(t, err.Error(), "unrecognized feature tag")
}

func TestParse_OutputFile(t *testing.T) {
	root := writeMarkdown(t, map[string]string{"a.md": "# Title\n"})
	outPath := filepath.Join(root, "trees.json")

	err := execute(t, root, "parse", "a.md", "--format", "json", "--output", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"heading"`)
}

func TestParse_MissingPath(t *testing.T) {
	root := writeMarkdown(t, nil)

	err := execute(t, root, "parse", "no-such-file.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat")
}

func TestVersionCommand(t *testing.T) {
	err := execute(t, writeMarkdown(t, nil), "version")
	assert.NoError(t, err)
}

func TestFeaturesCommand(t *testing.T) {
	err := execute(t, writeMarkdown(t, nil), "features")
	assert.NoError(t, err)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitInternalError, cli.ExitCode(errors.New("boom")))
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	clean := &runner.Result{}
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(clean, false))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil, true))

	diags := &runner.Result{Stats: runner.Stats{FilesParsed: 1, DiagnosticsTotal: 2}}
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(diags, false))
	assert.Equal(t, cli.ExitDiagnostics, cli.ExitCodeFromResult(diags, true))

	failed := &runner.Result{Stats: runner.Stats{FilesErrored: 1, DiagnosticsTotal: 2}}
	assert.Equal(t, cli.ExitFileErrors, cli.ExitCodeFromResult(failed, false))
	assert.Equal(t, cli.ExitFileErrors, cli.ExitCodeFromResult(failed, true),
		"file errors outrank diagnostics")
}

func TestHelp_RendersSections(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cmd := cli.NewRootCommand(buildInfo())
	cmd.SetArgs([]string{"--help"})
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "Flags:")
	assert.Contains(t, out, "parse")
}
