package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "snapdiff"

	// DefaultContextLines is the number of unchanged lines shown around a
	// change when line diffs are enabled.
	DefaultContextLines = 2

	// DefaultConcurrency is the number of pages html2md fetches at once.
	DefaultConcurrency = 4

	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies html2md in HTTP requests.
	DefaultUserAgent = "snapdiff-html2md/1.0 (+https://github.com/nao1215/snapdiff)"

	// DefaultMaxBodySize limits how much of a response body is read.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB
)

// Format is a report output format.
type Format string

// Report formats.
const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatToon     Format = "toon"
)

// Config holds all options for one invocation. It is populated from the
// config file and CLI flags and passed down explicitly.
type Config struct {
	// Days is the minimum age in days of the baseline archive relative to
	// the newest archive.
	Days int

	// ArchiveDir is the directory holding timestamped snapshot archives.
	// diffcheck reads it, html2md writes to it.
	ArchiveDir string

	// JSONReport selects JSON output. Mutually exclusive with the other formats.
	JSONReport bool

	// MarkdownReport selects Markdown output.
	MarkdownReport bool

	// ToonReport selects TOON output.
	ToonReport bool

	// ShowDiff attaches a line diff to every modified page.
	ShowDiff bool

	// ContextLines is the number of unchanged lines kept around each change.
	// -1 keeps all of them.
	ContextLines int

	// Verbose enables debug logging and extra report detail.
	Verbose bool

	// ConfigFilePath is an explicit configuration file. When empty the
	// default locations are searched.
	ConfigFilePath string

	// ReportFile writes the report to this file instead of stdout.
	ReportFile string

	// Concurrency is the number of pages html2md processes at once.
	Concurrency int

	// Timeout bounds a single page fetch.
	Timeout time.Duration

	// UserAgent is sent with every HTTP request.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes.
	// 0 means DefaultMaxBodySize.
	MaxBodySize int64
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		ContextLines: DefaultContextLines,
		Concurrency:  DefaultConcurrency,
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		MaxBodySize:  DefaultMaxBodySize,
	}
}

// Format returns the selected report format.
func (c *Config) Format() Format {
	switch {
	case c.JSONReport:
		return FormatJSON
	case c.MarkdownReport:
		return FormatMarkdown
	case c.ToonReport:
		return FormatToon
	default:
		return FormatText
	}
}

// SetFormat selects f as the only report format.
func (c *Config) SetFormat(f Format) error {
	switch f {
	case FormatText, "":
	case FormatJSON, FormatMarkdown, FormatToon:
	default:
		return ErrInvalidFormat
	}
	c.JSONReport = f == FormatJSON
	c.MarkdownReport = f == FormatMarkdown
	c.ToonReport = f == FormatToon
	return nil
}

// EffectiveMaxBodySize returns MaxBodySize, or the default when unset.
func (c *Config) EffectiveMaxBodySize() int64 {
	if c.MaxBodySize == 0 {
		return DefaultMaxBodySize
	}
	return c.MaxBodySize
}

// XDGConfigDir returns the XDG config directory for snapdiff,
// e.g. ~/.config/snapdiff on Linux.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.Days < 0 {
		return ErrInvalidDays
	}
	if c.ArchiveDir == "" {
		return ErrNoArchiveDir
	}

	formats := 0
	for _, on := range []bool{c.JSONReport, c.MarkdownReport, c.ToonReport} {
		if on {
			formats++
		}
	}
	if formats > 1 {
		return ErrConflictingReportFormats
	}

	if c.ContextLines < -1 {
		return ErrInvalidContextLines
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	return nil
}
