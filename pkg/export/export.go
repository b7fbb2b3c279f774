// Package export renders parsed documents for consumption outside the
// process: a styled tree view for terminals, JSON for tooling, and
// canonical markdown for round-tripping.
package export

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/yaklabco/mdtree/pkg/config"
	"github.com/yaklabco/mdtree/pkg/mdtree"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Exporter renders one parsed document to the configured writer.
type Exporter interface {
	// Export writes the rendered document. path is the source file
	// name used in headers and diagnostics; it may be empty.
	Export(ctx context.Context, path string, doc *mdtree.Document) error
}

// Options configures exporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized output: "auto", "always", "never".
	Color string

	// Compact uses minified output where applicable (JSON).
	Compact bool

	// ShowDiagnostics appends parse diagnostics after the rendering.
	ShowDiagnostics bool
}

// DefaultOptions returns options rendering a colored tree to stdout.
func DefaultOptions() Options {
	return Options{
		Writer:          os.Stdout,
		Format:          config.FormatTree,
		Color:           "auto",
		ShowDiagnostics: true,
	}
}

// New creates an Exporter for the specified options.
func New(opts Options) (Exporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = config.FormatTree
	}

	switch opts.Format {
	case config.FormatTree:
		return NewTreeExporter(opts), nil
	case config.FormatJSON:
		return NewJSONExporter(opts), nil
	case config.FormatMarkdown:
		return NewMarkdownExporter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", opts.Format)
	}
}
