package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/snapdiff/internal/model"
)

// SimpleWriter outputs a plain text report, one line per changed page
// followed by a summary line.
type SimpleWriter struct {
	baseWriter

	// showUnchanged lists unchanged pages after the changed ones.
	showUnchanged bool

	// verbose prints the compared archives before the listing.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowUnchanged configures the writer to list unchanged pages too.
func WithShowUnchanged(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showUnchanged = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	if w.verbose {
		w.writeHeader(&sb, report)
	}

	if !report.HasChanges() {
		sb.WriteString(noChangesMessage)
		sb.WriteString("\n")
	} else {
		for _, e := range report.Changed() {
			w.writeEntry(&sb, e)
		}
	}

	if w.showUnchanged {
		for _, e := range report.ByStatus(model.StatusUnchanged) {
			w.writeEntry(&sb, e)
		}
	}

	w.writeSummary(&sb, report.Summary)

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the names of the compared archives.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	if report.Baseline.Name != "" {
		fmt.Fprintf(sb, "Baseline: %s\n", report.Baseline.Name)
	}
	if report.Current.Name != "" {
		fmt.Fprintf(sb, "Current:  %s\n", report.Current.Name)
	}
	sb.WriteString("\n")
}

// writeEntry writes one "STATUS: Title <url>" line and the indented diff.
func (w *SimpleWriter) writeEntry(sb *strings.Builder, e model.Entry) {
	fmt.Fprintf(sb, "%s: %s", e.Status, e.Title)
	if e.URL != "" {
		fmt.Fprintf(sb, " <%s>", e.URL)
	}
	if w.verbose {
		fmt.Fprintf(sb, " (%s)", e.Name)
	}
	sb.WriteString("\n")

	if e.Diff == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(e.Diff, "\n"), "\n") {
		sb.WriteString("    ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}

// writeSummary writes the per-status counts.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, s model.Summary) {
	fmt.Fprintf(sb, "\nSummary: %d modified, %d added, %d removed, %d unchanged\n",
		s.Modified, s.Added, s.Removed, s.Unchanged)
}
