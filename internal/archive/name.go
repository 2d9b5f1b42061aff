package archive

import (
	"path/filepath"
	"regexp"
	"time"
)

const (
	// Extension is the suffix of every snapshot archive.
	Extension = ".tar.gz"

	// TimestampLayout is the time layout encoded in archive file names.
	TimestampLayout = "2006-01-02_15-04-05"
)

var namePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2})\.tar\.gz$`)

// Ref points at a snapshot archive on disk.
type Ref struct {
	// Path is the filesystem path of the archive.
	Path string

	// Timestamp is parsed from the file name, in UTC.
	Timestamp time.Time
}

// Name returns the archive file name.
func (r Ref) Name() string {
	return filepath.Base(r.Path)
}

// String implements fmt.Stringer.
func (r Ref) String() string {
	return r.Path
}

// ParseName parses an archive file name into its timestamp.
// It returns false for names that do not match YYYY-MM-DD_HH-MM-SS.tar.gz
// or that encode an impossible date.
func ParseName(name string) (time.Time, bool) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}
	ts, err := time.ParseInLocation(TimestampLayout, m[1], time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// FormatName returns the archive file name for t, using t's wall clock.
func FormatName(t time.Time) string {
	return t.Format(TimestampLayout) + Extension
}

// NewRef builds a Ref from a path whose base name is a valid archive name.
func NewRef(path string) (Ref, bool) {
	ts, ok := ParseName(filepath.Base(path))
	if !ok {
		return Ref{}, false
	}
	return Ref{Path: path, Timestamp: ts}, true
}
