package report

import (
	"io"

	"github.com/nao1215/snapdiff/internal/model"
)

// Exit statuses returned by Render.
const (
	// ExitOK is returned whenever the report was written, with or without changes.
	ExitOK = 0
	// ExitFailure is returned when the output could not be written.
	ExitFailure = 1
)

// noChangesMessage is printed when no page was modified, added or removed.
const noChangesMessage = "No changes detected"

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.Report) (int, error)
}

// MultiWriter writes to multiple Writers in order.
// It is used to print to the terminal and a file at the same time.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Render writes report with w and returns the process exit status.
// The comparison has already completed at this point, so the status is
// ExitOK regardless of whether changes were found.
func Render(w Writer, report *model.Report) int {
	if _, err := w.Write(report); err != nil {
		return ExitFailure
	}
	return ExitOK
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
