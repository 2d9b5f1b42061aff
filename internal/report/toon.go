package report

import (
	"io"

	"github.com/alpkeskin/gotoon"
	"github.com/nao1215/snapdiff/internal/model"
)

// ToonWriter outputs reports in TOON (Token-Oriented Object Notation),
// a compact format for feeding reports to language models.
type ToonWriter struct {
	baseWriter
}

// NewToonWriter creates a ToonWriter that outputs to the given writer.
func NewToonWriter(output io.Writer) *ToonWriter {
	return &ToonWriter{
		baseWriter: newBaseWriter(output),
	}
}

// toonReport is the flattened shape encoded by ToonWriter.
// Only changed pages are listed.
type toonReport struct {
	Baseline string        `json:"baseline,omitempty"`
	Current  string        `json:"current,omitempty"`
	Days     int           `json:"days"`
	Changes  []toonEntry   `json:"changes"`
	Summary  model.Summary `json:"summary"`
}

type toonEntry struct {
	Status string `json:"status"`
	Name   string `json:"name"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}

// Write outputs the report in TOON format.
func (w *ToonWriter) Write(report *model.Report) (int, error) {
	out := toonReport{
		Baseline: report.Baseline.Name,
		Current:  report.Current.Name,
		Days:     report.Days,
		Changes:  []toonEntry{},
		Summary:  report.Summary,
	}
	for _, e := range report.Changed() {
		out.Changes = append(out.Changes, toonEntry{
			Status: e.Status.String(),
			Name:   e.Name,
			Title:  e.Title,
			URL:    e.URL,
		})
	}

	encoded, err := gotoon.Encode(out)
	if err != nil {
		return 0, err
	}
	return io.WriteString(w.output, encoded+"\n")
}
