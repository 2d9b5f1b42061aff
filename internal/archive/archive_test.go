package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/morikuni/failure/v2"
)

// member describes one tar entry written by writeArchive.
type member struct {
	name    string
	content string
	dir     bool
}

// writeArchive writes a gzip-compressed tar with the given members into dir.
func writeArchive(t *testing.T, dir, name string, members ...member) string {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, m := range members {
		hdr := &tar.Header{Name: m.name, Mode: 0o644, Size: int64(len(m.content)), Typeflag: tar.TypeReg}
		if m.dir {
			hdr = &tar.Header{Name: m.name, Mode: 0o755, Typeflag: tar.TypeDir}
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("failed to write header: %v", err)
		}
		if !m.dir {
			if _, err := tw.Write([]byte(m.content)); err != nil {
				t.Fatalf("failed to write member: %v", err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("failed to close tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to close gzip: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("failed to write archive: %v", err)
	}
	return path
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

// TestParseName tests archive file name parsing.
func TestParseName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		valid bool
		want  time.Time
	}{
		{"2025-01-02_03-04-05.tar.gz", true, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"2024-12-31_23-59-59.tar.gz", true, time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)},
		{"2025-13-02_03-04-05.tar.gz", false, time.Time{}},
		{"2025-01-02_03-04-05.tar", false, time.Time{}},
		{"2025-01-02.tar.gz", false, time.Time{}},
		{"backup-2025-01-02_03-04-05.tar.gz", false, time.Time{}},
		{"notes.md", false, time.Time{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseName(tc.name)
			if ok != tc.valid {
				t.Fatalf("expected valid=%v, got %v", tc.valid, ok)
			}
			if !got.Equal(tc.want) {
				t.Errorf("got %v, expected %v", got, tc.want)
			}
		})
	}
}

// TestFormatName verifies FormatName and ParseName agree.
func TestFormatName(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC)
	name := FormatName(ts)
	if name != "2025-06-07_08-09-10.tar.gz" {
		t.Fatalf("unexpected name %q", name)
	}
	got, ok := ParseName(name)
	if !ok || !got.Equal(ts) {
		t.Errorf("round trip failed: %v %v", got, ok)
	}
}

// TestLocate tests archive selection.
func TestLocate(t *testing.T) {
	t.Parallel()

	t.Run("selects newest and closest qualifying baseline", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		touch(t, dir, "2025-01-10_12-00-00.tar.gz")
		touch(t, dir, "2025-01-09_12-00-00.tar.gz")
		touch(t, dir, "2025-01-07_12-00-00.tar.gz")
		touch(t, dir, "2025-01-03_12-00-00.tar.gz")
		touch(t, dir, "README.md")

		current, baseline, err := Locate(dir, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if current.Name() != "2025-01-10_12-00-00.tar.gz" {
			t.Errorf("unexpected current %s", current.Name())
		}
		if baseline.Name() != "2025-01-07_12-00-00.tar.gz" {
			t.Errorf("unexpected baseline %s", baseline.Name())
		}
	})

	t.Run("baseline exactly N days older qualifies", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		touch(t, dir, "2025-01-10_12-00-00.tar.gz")
		touch(t, dir, "2025-01-08_12-00-00.tar.gz")

		_, baseline, err := Locate(dir, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if baseline.Name() != "2025-01-08_12-00-00.tar.gz" {
			t.Errorf("unexpected baseline %s", baseline.Name())
		}
	})

	t.Run("zero days selects the previous archive", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		touch(t, dir, "2025-01-10_12-00-01.tar.gz")
		touch(t, dir, "2025-01-10_12-00-00.tar.gz")
		touch(t, dir, "2025-01-01_12-00-00.tar.gz")

		_, baseline, err := Locate(dir, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if baseline.Name() != "2025-01-10_12-00-00.tar.gz" {
			t.Errorf("unexpected baseline %s", baseline.Name())
		}
	})

	t.Run("no archive old enough", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		touch(t, dir, "2025-01-10_12-00-00.tar.gz")
		touch(t, dir, "2025-01-09_12-00-01.tar.gz")

		_, _, err := Locate(dir, 1)
		if !failure.Is(err, ErrArchiveNotFound) {
			t.Errorf("expected ErrArchiveNotFound, got %v", err)
		}
	})

	t.Run("single archive", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		touch(t, dir, "2025-01-10_12-00-00.tar.gz")

		_, _, err := Locate(dir, 0)
		if !failure.Is(err, ErrArchiveNotFound) {
			t.Errorf("expected ErrArchiveNotFound, got %v", err)
		}
	})

	t.Run("unparsable names are ignored", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		touch(t, dir, "2025-01-10_12-00-00.tar.gz")
		touch(t, dir, "2025-99-01_12-00-00.tar.gz")
		if err := os.Mkdir(filepath.Join(dir, "2025-01-01_12-00-00.tar.gz"), 0o750); err != nil {
			t.Fatal(err)
		}

		_, _, err := Locate(dir, 0)
		if !failure.Is(err, ErrArchiveNotFound) {
			t.Errorf("expected ErrArchiveNotFound, got %v", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := Locate(filepath.Join(t.TempDir(), "missing"), 1)
		if !failure.Is(err, ErrArchiveNotFound) {
			t.Errorf("expected ErrArchiveNotFound, got %v", err)
		}
	})

	t.Run("negative days", func(t *testing.T) {
		t.Parallel()

		_, _, err := Locate(t.TempDir(), -1)
		if !failure.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

// TestSelectProperty checks the selection rule against a brute-force search.
func TestSelectProperty(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	offsets := []time.Duration{0, 5 * time.Hour, 30 * time.Hour, 49 * time.Hour, 72 * time.Hour, 200 * time.Hour}
	refs := make([]Ref, 0, len(offsets))
	for _, off := range offsets {
		ts := base.Add(-off)
		refs = append(refs, Ref{Path: FormatName(ts), Timestamp: ts})
	}

	for days := 0; days <= 10; days++ {
		current, baseline, err := Select(refs, days)

		cutoff := refs[0].Timestamp.AddDate(0, 0, -days)
		var want *Ref
		for i := 1; i < len(refs); i++ {
			if !refs[i].Timestamp.After(cutoff) && (want == nil || refs[i].Timestamp.After(want.Timestamp)) {
				want = &refs[i]
			}
		}

		if want == nil {
			if !failure.Is(err, ErrArchiveNotFound) {
				t.Errorf("days=%d: expected ErrArchiveNotFound, got %v", days, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("days=%d: unexpected error: %v", days, err)
		}
		for _, r := range refs {
			if r.Timestamp.After(current.Timestamp) {
				t.Errorf("days=%d: %s is newer than current", days, r.Name())
			}
		}
		if !baseline.Timestamp.Equal(want.Timestamp) {
			t.Errorf("days=%d: got baseline %s, expected %s", days, baseline.Name(), want.Name())
		}
	}
}

// TestExtract tests reading archive members.
func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("reads regular members and skips directories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeArchive(t, dir, "2025-01-01_00-00-00.tar.gz",
			member{name: "pages/", dir: true},
			member{name: "./a.md", content: "# A\n"},
			member{name: "pages/b.md", content: "# B\n"},
		)
		ref, _ := NewRef(path)

		got, err := Extract(ref)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := map[string]string{"a.md": "# A\n", "pages/b.md": "# B\n"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("last duplicate member wins", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeArchive(t, dir, "2025-01-01_00-00-00.tar.gz",
			member{name: "a.md", content: "first"},
			member{name: "a.md", content: "second"},
		)

		got, err := Extract(Ref{Path: path})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got["a.md"] != "second" {
			t.Errorf("expected last member to win, got %q", got["a.md"])
		}
	})

	t.Run("invalid UTF-8 is replaced", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeArchive(t, dir, "2025-01-01_00-00-00.tar.gz",
			member{name: "a.md", content: "ok \xff\xfe end"},
		)

		got, err := Extract(Ref{Path: path})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got["a.md"] != "ok \uFFFD end" {
			t.Errorf("unexpected content %q", got["a.md"])
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Extract(Ref{Path: filepath.Join(t.TempDir(), "2025-01-01_00-00-00.tar.gz")})
		if !failure.Is(err, ErrArchiveRead) {
			t.Errorf("expected ErrArchiveRead, got %v", err)
		}
	})

	t.Run("not a gzip file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		touch(t, dir, "2025-01-01_00-00-00.tar.gz")

		_, err := Extract(Ref{Path: filepath.Join(dir, "2025-01-01_00-00-00.tar.gz")})
		if !failure.Is(err, ErrArchiveRead) {
			t.Errorf("expected ErrArchiveRead, got %v", err)
		}
		want := "archive is not a valid gzip stream: 2025-01-01_00-00-00.tar.gz"
		if got := failure.MessageOf(err).String(); got != want {
			t.Errorf("message = %q, want %q", got, want)
		}
	})

	t.Run("gzip without tar content", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		_, _ = gz.Write(bytes.Repeat([]byte("not a tar header "), 64))
		_ = gz.Close()

		_, err := ExtractFrom(Ref{Path: "memory"}, &buf)
		if !failure.Is(err, ErrArchiveRead) {
			t.Errorf("expected ErrArchiveRead, got %v", err)
		}
	})
}

// TestCreate tests writing archives.
func TestCreate(t *testing.T) {
	t.Parallel()

	t.Run("round trips through Extract", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		now := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
		files := []File{
			{Name: "a.md", Content: []byte("<!-- URL: https://example.com -->\n# A\n")},
			{Name: "b.md", Content: []byte("# B\n")},
		}

		ref, err := Create(dir, now, files)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ref.Name() != "2025-02-03_04-05-06.tar.gz" {
			t.Errorf("unexpected name %s", ref.Name())
		}
		if !ref.Timestamp.Equal(now) {
			t.Errorf("unexpected timestamp %v", ref.Timestamp)
		}

		got, err := Extract(ref)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := map[string]string{
			"a.md": "<!-- URL: https://example.com -->\n# A\n",
			"b.md": "# B\n",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		now := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
		if _, err := Create(dir, now, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := Create(dir, now, nil)
		if !failure.Is(err, ErrArchiveWrite) {
			t.Errorf("expected ErrArchiveWrite, got %v", err)
		}
		if _, statErr := os.Stat(filepath.Join(dir, FormatName(now))); statErr != nil {
			t.Errorf("existing archive should be kept: %v", statErr)
		}
	})
}
