package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file name searched in the
// current and home directories.
const DefaultConfigFile = ".snapdiff"

// xdgConfigFile is the configuration file name inside XDGConfigDir.
const xdgConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the configuration file.
//
//	format: markdown
//	show_diff: true
//	producer:
//	  concurrency: 8
//	  timeout: 1m
type File struct {
	// Format is the default report format: text, json, markdown or toon.
	Format string `yaml:"format,omitempty"`

	// ShowDiff enables line diffs by default.
	ShowDiff *bool `yaml:"show_diff,omitempty"`

	// ContextLines overrides DefaultContextLines.
	ContextLines *int `yaml:"context_lines,omitempty"`

	// Producer holds html2md settings.
	Producer ProducerFile `yaml:"producer,omitempty"`
}

// ProducerFile holds the html2md section of the configuration file.
type ProducerFile struct {
	Concurrency int           `yaml:"concurrency,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
	UserAgent   string        `yaml:"user_agent,omitempty"`
	MaxBodySize int64         `yaml:"max_body_size,omitempty"`
}

// LoadConfigFile loads the configuration file at path.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. configPath, when specified
//  2. .snapdiff in the current directory
//  3. .snapdiff in the user's home directory
//  4. config.yaml in XDGConfigDir
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), xdgConfigFile))

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// Apply copies the file values into c. Settings for which changed reports
// true were given on the command line and are left alone. changed may be nil.
func (f *File) Apply(c *Config, changed func(flag string) bool) error {
	if changed == nil {
		changed = func(string) bool { return false }
	}

	if f.Format != "" && !changed("json") && !changed("markdown") && !changed("toon") {
		if err := c.SetFormat(Format(f.Format)); err != nil {
			return err
		}
	}
	if f.ShowDiff != nil && !changed("diff") {
		c.ShowDiff = *f.ShowDiff
	}
	if f.ContextLines != nil && !changed("context") {
		c.ContextLines = *f.ContextLines
	}

	p := f.Producer
	if p.Concurrency != 0 && !changed("concurrency") {
		c.Concurrency = p.Concurrency
	}
	if p.Timeout != 0 && !changed("timeout") {
		c.Timeout = p.Timeout
	}
	if p.UserAgent != "" && !changed("user-agent") {
		c.UserAgent = p.UserAgent
	}
	if p.MaxBodySize != 0 && !changed("max-body-size") {
		c.MaxBodySize = p.MaxBodySize
	}
	return nil
}
