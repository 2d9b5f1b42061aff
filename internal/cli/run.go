package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/morikuni/failure/v2"
	"github.com/nao1215/snapdiff/internal/config"
)

// UserMessage returns the failure message of err, or err.Error() when err
// carries none.
func UserMessage(err error) string {
	if fmsg := failure.MessageOf(err); fmsg != "" {
		return fmsg.String()
	}
	return err.Error()
}

// PrintError writes "Error: <message>" to w.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", UserMessage(err))
}

// LoadConfig merges the configuration file into cfg. An explicit
// cfg.ConfigFilePath must exist; otherwise a missing file is not an error.
// changed reports flags given on the command line, which take precedence.
func LoadConfig(cfg *config.Config, changed func(flag string) bool) error {
	path := config.FindConfigFile(cfg.ConfigFilePath)
	if path == "" {
		if cfg.ConfigFilePath != "" {
			return failure.New(ErrInvalidConfig,
				failure.Message("configuration file not found: "+cfg.ConfigFilePath),
			)
		}
		return nil
	}

	f, err := config.LoadConfigFile(path)
	if err != nil {
		return failure.Wrap(err, failure.WithCode(ErrInvalidConfig),
			failure.Message("failed to load config file "+path+": "+err.Error()),
		)
	}
	if err := f.Apply(cfg, changed); err != nil {
		return failure.Wrap(err, failure.WithCode(ErrInvalidConfig),
			failure.Message("invalid config file "+path+": "+err.Error()),
		)
	}
	return nil
}

// Validate wraps cfg.Validate with ErrInvalidConfig.
func Validate(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return failure.Wrap(err, failure.WithCode(ErrInvalidConfig),
			failure.Message("configuration error: "+err.Error()),
		)
	}
	return nil
}

// OpenOutput returns the report destination: stdout when path is empty,
// otherwise a truncated file with missing parent directories created.
// The returned close function must be called when done.
func OpenOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, failure.Wrap(err, failure.WithCode(ErrOutput),
				failure.Message("failed to create output directory: "+dir))
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return nil, nil, failure.Wrap(err, failure.WithCode(ErrOutput),
			failure.Message("failed to create output file: "+path))
	}
	return f, f.Close, nil
}
