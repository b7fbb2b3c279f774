package runner

import (
	"time"

	"github.com/yaklabco/mdtree/pkg/mdtree"
)

// FileOutcome is the parse result for a single file.
type FileOutcome struct {
	// Path is the file that was parsed.
	Path string

	// Doc is the parsed document. Nil when Error is set.
	Doc *mdtree.Document

	// Error is set when the file could not be read or parsed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files successfully parsed.
	FilesParsed int

	// FilesErrored is the number of files that could not be processed.
	FilesErrored int

	// NodesTotal is the total node count across all parsed trees.
	NodesTotal int

	// DiagnosticsTotal is the total number of parse diagnostics.
	DiagnosticsTotal int

	// DiagnosticsByKind maps diagnostic kind names to counts.
	DiagnosticsByKind map[string]int

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// Result is the overall runner result. Files are ordered
// deterministically by path.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasDiagnostics reports whether any file produced parse diagnostics.
func (r *Result) HasDiagnostics() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

// HasErrors reports whether any file failed outright.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{
		DiagnosticsByKind: make(map[string]int),
	}
}

// accumulate folds one file outcome into the aggregate.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesParsed++
	r.Stats.NodesTotal += countNodes(outcome.Doc.Root)
	r.Stats.DiagnosticsTotal += len(outcome.Doc.Diagnostics)

	for _, diag := range outcome.Doc.Diagnostics {
		r.Stats.DiagnosticsByKind[diag.Kind.String()]++
	}
}

func countNodes(root *mdtree.Node) int {
	count := 0
	//nolint:errcheck // the callback never fails
	mdtree.Walk(root, func(*mdtree.Node) error {
		count++
		return nil
	})
	return count
}
