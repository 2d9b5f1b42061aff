package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidDays is returned when the minimum archive age is negative.
	ErrInvalidDays = errors.New("invalid days: must be non-negative")

	// ErrNoArchiveDir is returned when no archive directory is given.
	ErrNoArchiveDir = errors.New("archive directory is required")

	// ErrConflictingReportFormats is returned when more than one of
	// --json, --markdown and --toon is specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: only one of --json, --markdown and --toon can be used")

	// ErrInvalidFormat is returned when the config file names an unknown format.
	ErrInvalidFormat = errors.New("invalid format: must be one of text, json, markdown, toon")

	// ErrInvalidContextLines is returned when fewer than -1 context lines are requested.
	ErrInvalidContextLines = errors.New("invalid context lines: must be -1 or greater")

	// ErrInvalidConcurrency is returned when the producer concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidTimeout is returned when the producer fetch timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)
