package export

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdtree/pkg/mdtree"
)

// JSONExporter serializes documents as JSON, one object per document.
type JSONExporter struct {
	opts Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts Options) *JSONExporter {
	return &JSONExporter{opts: opts}
}

// jsonDocument is the top-level JSON structure for one file.
type jsonDocument struct {
	Path     string           `json:"path,omitempty"`
	Document *mdtree.Document `json:"document"`
}

// Export implements Exporter.
func (e *JSONExporter) Export(_ context.Context, path string, doc *mdtree.Document) (err error) {
	bw := bufio.NewWriterSize(e.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(bw)
	if !e.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(jsonDocument{Path: path, Document: doc}); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
