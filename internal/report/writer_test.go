package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/snapdiff/internal/model"
)

// createTestReport creates a report with one entry per status.
func createTestReport() *model.Report {
	r := model.NewReport([]model.Entry{
		{Name: "guide.md", Status: model.StatusModified, Metadata: model.Metadata{Title: "Guide", URL: "https://example.com/guide"}, Diff: "-old\n+new\n"},
		{Name: "new.md", Status: model.StatusAdded, Metadata: model.Metadata{Title: "New Page", URL: "https://example.com/new"}},
		{Name: "gone.md", Status: model.StatusRemoved, Metadata: model.Metadata{Title: "Gone"}},
		{Name: "same.md", Status: model.StatusUnchanged, Metadata: model.Metadata{Title: "Same"}},
	})
	r.Baseline = model.Snapshot{Name: "2025-01-01_00-00-00.tar.gz", Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	r.Current = model.Snapshot{Name: "2025-01-10_00-00-00.tar.gz", Timestamp: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)}
	r.Days = 7
	return r
}

// createUnchangedReport creates a report where nothing changed.
func createUnchangedReport() *model.Report {
	return model.NewReport([]model.Entry{
		{Name: "same.md", Status: model.StatusUnchanged, Metadata: model.Metadata{Title: "Same"}},
	})
}

type failingWriter struct{}

func (failingWriter) Write(*model.Report) (int, error) {
	return 0, errors.New("disk full")
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("returns zero when changes exist", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if got := Render(NewSimpleWriter(&buf), createTestReport()); got != ExitOK {
			t.Errorf("got exit %d, expected %d", got, ExitOK)
		}
	})

	t.Run("returns zero when nothing changed", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if got := Render(NewSimpleWriter(&buf), createUnchangedReport()); got != ExitOK {
			t.Errorf("got exit %d, expected %d", got, ExitOK)
		}
	})

	t.Run("returns one when output fails", func(t *testing.T) {
		t.Parallel()
		if got := Render(failingWriter{}, createTestReport()); got != ExitFailure {
			t.Errorf("got exit %d, expected %d", got, ExitFailure)
		}
	})
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("lists changed pages in report order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "MODIFIED: Guide <https://example.com/guide>\n" +
			"    -old\n" +
			"    +new\n" +
			"ADDED: New Page <https://example.com/new>\n" +
			"REMOVED: Gone\n" +
			"\nSummary: 1 modified, 1 added, 1 removed, 1 unchanged\n"
		if diff := cmp.Diff(want, buf.String()); diff != "" {
			t.Errorf("output mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("prints no changes message", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createUnchangedReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "No changes detected") {
			t.Errorf("expected no changes message, got %q", output)
		}
		if strings.Contains(output, "UNCHANGED:") {
			t.Errorf("unchanged pages must not be listed by default, got %q", output)
		}
	})

	t.Run("lists unchanged pages when requested", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithShowUnchanged(true))
		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "UNCHANGED: Same\n") {
			t.Errorf("expected unchanged entry, got %q", buf.String())
		}
	})

	t.Run("verbose output names the archives", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))
		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"Baseline: 2025-01-01_00-00-00.tar.gz", "Current:  2025-01-10_00-00-00.tar.gz", "(guide.md)"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got struct {
			Entries []struct {
				Name   string `json:"name"`
				Status string `json:"status"`
				Title  string `json:"title"`
				URL    string `json:"url"`
			} `json:"entries"`
			Summary model.Summary `json:"summary"`
		}
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(got.Entries) != 4 {
			t.Fatalf("expected 4 entries, got %d", len(got.Entries))
		}
		if got.Entries[0].Status != "MODIFIED" || got.Entries[0].URL != "https://example.com/guide" {
			t.Errorf("unexpected first entry %+v", got.Entries[0])
		}
		if got.Summary.Changes() != 3 {
			t.Errorf("expected 3 changes, got %d", got.Summary.Changes())
		}
	})

	t.Run("pretty print indents output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"baseline\"") {
			t.Errorf("expected indented output, got %q", buf.String())
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes sections per status", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Snapshot Diff Report",
			"### MODIFIED",
			"### ADDED",
			"### REMOVED",
			"[Guide](https://example.com/guide)",
			"```diff",
			"## Summary",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
		if strings.Contains(output, "### UNCHANGED") {
			t.Error("unchanged pages must not get a section")
		}
	})

	t.Run("writes tip when nothing changed", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createUnchangedReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No changes detected") {
			t.Errorf("expected no changes message, got %q", buf.String())
		}
	})
}

func TestToonWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewToonWriter(&buf).Write(createTestReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"guide.md", "New Page", "REMOVED"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got %q", want, output)
		}
	}
	if strings.Contains(output, "same.md") {
		t.Error("unchanged pages must not be listed")
	}
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	m := NewMultiWriter(NewSimpleWriter(&a), NewJSONWriter(&b))
	if _, err := m.Write(createTestReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Len() == 0 || b.Len() == 0 {
		t.Error("expected both writers to receive the report")
	}

	if _, err := NewMultiWriter(failingWriter{}, NewSimpleWriter(&a)).Write(createTestReport()); err == nil {
		t.Error("expected error from failing writer")
	}
}
