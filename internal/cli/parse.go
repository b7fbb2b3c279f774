package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/pkg/config"
	"github.com/yaklabco/mdtree/pkg/export"
	"github.com/yaklabco/mdtree/pkg/fsutil"
	"github.com/yaklabco/mdtree/pkg/parser"
	"github.com/yaklabco/mdtree/pkg/runner"
)

// ErrDiagnosticsFound signals a strict-mode run that parsed with
// diagnostics; the Execute wrapper maps it to an exit code.
var ErrDiagnosticsFound = errors.New("parse diagnostics found")

type parseFlags struct {
	format     string
	output     string
	enable     []string
	disable    []string
	ignore     []string
	jobs       int
	inferLangs bool
	compact    bool
	noDiag     bool
	strict     bool
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Parse Markdown files into node trees",
		Long:  parseLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "",
		"output format: tree, json, markdown")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"write rendered output to a file instead of stdout")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil,
		"parse only these feature tags")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil,
		"feature tags to treat as plain text")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil,
		"glob patterns for files to skip")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0,
		"number of parallel workers (0 = one per CPU)")
	cmd.Flags().BoolVar(&flags.inferLangs, "infer-languages", false,
		"detect languages for fenced code blocks without an info string")
	cmd.Flags().BoolVar(&flags.compact, "compact", false,
		"minified JSON output")
	cmd.Flags().BoolVar(&flags.noDiag, "no-diagnostics", false,
		"suppress parse diagnostics in output")
	cmd.Flags().BoolVar(&flags.strict, "strict", false,
		"exit non-zero when any diagnostic is produced")

	return cmd
}

const parseLongDescription = `Parse Markdown files into typed node trees.

By default, parses all .md and .markdown files in the current directory
and subdirectories, rendering each tree to the terminal. Specify paths
to parse specific files or directories.

Examples:
  mdtree parse                         # Parse current directory
  mdtree parse README.md               # Parse a single file
  mdtree parse docs/ --format json     # JSON trees for tooling
  mdtree parse -f json -o trees.json   # Write output to a file
  mdtree parse --format markdown       # Canonical re-serialization
  mdtree parse --disable table,emoji   # Treat tables and emoji as text
  mdtree parse --strict                # Fail on any diagnostic`

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}

	feats, err := cfg.FeatureSet()
	if err != nil {
		return err
	}

	logger.Debug("configuration resolved",
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldFeatures, len(feats.List()),
	)

	run := runner.New(parser.New(feats))
	run.InferLanguages = cfg.Parse.InferLanguages

	result, err := run.Run(ctx, runner.Options{
		Paths:        args,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
	})
	if err != nil {
		return err
	}

	logger.Debug("run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldNodesTotal, result.Stats.NodesTotal,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldDuration, result.Stats.Duration,
	)

	color, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("get color flag: %w", err)
	}

	writer := io.Writer(os.Stdout)
	var fileBuf *bytes.Buffer
	if flags.output != "" {
		fileBuf = &bytes.Buffer{}
		writer = fileBuf
		if color == "auto" {
			color = "never"
		}
	}

	exporter, err := export.New(export.Options{
		Writer:          writer,
		Format:          cfg.Format,
		Color:           color,
		Compact:         flags.compact,
		ShowDiagnostics: !flags.noDiag,
	})
	if err != nil {
		return err
	}

	for _, outcome := range result.Files {
		if outcome.Error != nil {
			logger.Error("parse failed",
				logging.FieldPath, outcome.Path,
				logging.FieldError, outcome.Error,
			)
			continue
		}
		if err := exporter.Export(ctx, outcome.Path, outcome.Doc); err != nil {
			return err
		}
	}

	if fileBuf != nil {
		if err := fsutil.WriteAtomic(ctx, flags.output, fileBuf.Bytes(), 0); err != nil {
			return exitError{code: ExitIOError, err: err}
		}
		logger.Debug("output written",
			logging.FieldPath, flags.output,
			logging.FieldBytes, fileBuf.Len(),
		)
	}

	if code := ExitCodeFromResult(result, flags.strict); code != ExitSuccess {
		signal := ErrDiagnosticsFound
		if code == ExitFileErrors {
			signal = fmt.Errorf("%d files failed", result.Stats.FilesErrored)
		}
		return exitError{code: code, err: signal}
	}

	return nil
}

// resolveConfig loads configuration and layers the parse command's
// flags over it.
func resolveConfig(cmd *cobra.Command, flags *parseFlags) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := config.Load(workDir, configPath)
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	if flags.format != "" {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if len(flags.enable) > 0 {
		cfg.Features.Enable = flags.enable
	}
	cfg.Features.Disable = append(cfg.Features.Disable, flags.disable...)
	cfg.Ignore = append(cfg.Ignore, flags.ignore...)
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if cmd.Flags().Changed("infer-languages") {
		cfg.Parse.InferLanguages = flags.inferLangs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// exitError carries an explicit exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string { return e.err.Error() }
func (e exitError) Unwrap() error { return e.err }

// ExitCode extracts the exit code from an Execute error, defaulting to
// ExitInternalError for plain errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitInternalError
}
