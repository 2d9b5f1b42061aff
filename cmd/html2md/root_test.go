package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/snapdiff/internal/archive"
)

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// writeCSV writes a page list pointing at the local sample page.
func writeCSV(t *testing.T, rows ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pages.csv")
	content := "# title|url|date\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func sampleURL(t *testing.T) string {
	t.Helper()

	abs, err := filepath.Abs(filepath.Join("testdata", "minimal_mw.html"))
	if err != nil {
		t.Fatal(err)
	}
	return "file://" + filepath.ToSlash(abs)
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("no arguments prints usage to stderr", func(t *testing.T) {
		t.Parallel()

		code, stdout, stderr := execute(t)
		if code != 1 {
			t.Errorf("expected exit 1, got %d", code)
		}
		if !strings.Contains(stderr, "Usage") || !strings.Contains(stderr, "csv") {
			t.Errorf("expected usage on stderr, got %q", stderr)
		}
		if stdout != "" {
			t.Errorf("expected nothing on stdout, got %q", stdout)
		}
	})

	t.Run("missing csv file is an error", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "missing.csv")
		code, _, stderr := execute(t, missing, t.TempDir())
		if code != 1 {
			t.Errorf("expected exit 1, got %d", code)
		}
		if !strings.Contains(stderr, "not found") {
			t.Errorf("expected not found error, got %q", stderr)
		}
	})

	t.Run("local page is converted into an archive", func(t *testing.T) {
		t.Parallel()

		csvPath := writeCSV(t, "Sample Page|"+sampleURL(t)+"|2025-01-01")
		outDir := filepath.Join(t.TempDir(), "snapshots")

		code, stdout, stderr := execute(t, csvPath, outDir)
		if code != 0 {
			t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr)
		}
		for _, want := range []string{"Converted", "sample_page.md", "Archive created"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected %q in output, got %q", want, stdout)
			}
		}

		refs, err := archive.List(outDir)
		if err != nil {
			t.Fatal(err)
		}
		if len(refs) != 1 {
			t.Fatalf("expected one archive, got %d", len(refs))
		}
		files, err := archive.Extract(refs[0])
		if err != nil {
			t.Fatal(err)
		}
		md, ok := files["sample_page.md"]
		if !ok {
			t.Fatalf("expected sample_page.md in archive, got %v", files)
		}
		if !strings.HasPrefix(md, "<!-- URL: "+sampleURL(t)+" -->\n# Sample Page\n") {
			t.Errorf("unexpected markdown header %q", md)
		}
	})

	t.Run("failed pages are skipped", func(t *testing.T) {
		t.Parallel()

		missing := "file://" + filepath.ToSlash(filepath.Join(t.TempDir(), "gone.html"))
		csvPath := writeCSV(t,
			"Sample Page|"+sampleURL(t)+"|2025-01-01",
			"Gone Page|"+missing+"|2025-01-01",
		)

		code, stdout, stderr := execute(t, csvPath, t.TempDir())
		if code != 0 {
			t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr)
		}
		if !strings.Contains(stderr, "Failed: Gone Page") {
			t.Errorf("expected failure report, got %q", stderr)
		}
		if strings.Contains(stdout, "gone_page.md") {
			t.Errorf("failed page must not be converted, got %q", stdout)
		}
	})

	t.Run("no convertible pages is an error", func(t *testing.T) {
		t.Parallel()

		csvPath := writeCSV(t, "Bad|ftp://example.com/page|2025-01-01")
		outDir := filepath.Join(t.TempDir(), "snapshots")

		code, _, stderr := execute(t, csvPath, outDir)
		if code != 1 {
			t.Errorf("expected exit 1, got %d", code)
		}
		if !strings.Contains(stderr, "Error: no pages were converted") {
			t.Errorf("expected no pages error, got %q", stderr)
		}
		if _, err := os.Stat(outDir); !os.IsNotExist(err) {
			t.Errorf("expected no output directory, got %v", err)
		}
	})

	t.Run("invalid concurrency is rejected", func(t *testing.T) {
		t.Parallel()

		code, _, stderr := execute(t, writeCSV(t), t.TempDir(), "--concurrency", "0")
		if code != 1 || !strings.Contains(stderr, "configuration error") {
			t.Errorf("expected configuration error, got %d %q", code, stderr)
		}
	})
}

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	for _, name := range []string{"verbose", "config", "concurrency", "timeout", "user-agent", "max-body-size"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
	if cmd.Version == "" {
		t.Error("expected non-empty version")
	}
}
