package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/snapdiff/internal/config"
)

func TestInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("writes a loadable template", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", ".snapdiff")
		code, stdout, stderr := execute(t, "init", "-o", path)
		if code != 0 {
			t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr)
		}
		if !strings.Contains(stdout, "Created configuration file") {
			t.Errorf("unexpected output %q", stdout)
		}

		f, err := config.LoadConfigFile(path)
		if err != nil {
			t.Fatalf("template does not load: %v", err)
		}
		cfg := config.NewConfig()
		if err := f.Apply(cfg, nil); err != nil {
			t.Fatalf("template does not apply: %v", err)
		}
		if cfg.Format() != config.FormatText {
			t.Errorf("expected text format from template, got %s", cfg.Format())
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".snapdiff")
		if err := os.WriteFile(path, []byte("format: json\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		code, _, stderr := execute(t, "init", "-o", path)
		if code != 1 || !strings.Contains(stderr, "already exists") {
			t.Errorf("expected already exists error, got %d %q", code, stderr)
		}

		code, _, _ = execute(t, "init", "-o", path, "-f")
		if code != 0 {
			t.Errorf("expected overwrite with -f to succeed, got %d", code)
		}
	})
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	code, stdout, _ := execute(t, "version")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	for _, want := range []string{"diffcheck version", "commit:", "built:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output, got %q", want, stdout)
		}
	}
}
