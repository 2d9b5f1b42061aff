package model

// Status is the change status of a single page between the baseline and
// the current snapshot. The numeric order is the report order: modified
// pages first, unchanged pages last.
type Status int

const (
	// StatusModified means the page exists in both snapshots with different content.
	StatusModified Status = iota

	// StatusAdded means the page exists only in the current snapshot.
	StatusAdded

	// StatusRemoved means the page exists only in the baseline snapshot.
	StatusRemoved

	// StatusUnchanged means the page exists in both snapshots with identical content.
	StatusUnchanged
)

// Statuses lists every status in report order.
var Statuses = []Status{StatusModified, StatusAdded, StatusRemoved, StatusUnchanged}

// String returns the upper-case label used in reports.
func (s Status) String() string {
	switch s {
	case StatusModified:
		return "MODIFIED"
	case StatusAdded:
		return "ADDED"
	case StatusRemoved:
		return "REMOVED"
	case StatusUnchanged:
		return "UNCHANGED"
	default:
		return "UNKNOWN"
	}
}

// IsChange reports whether the status represents a content change.
func (s Status) IsChange() bool {
	return s == StatusModified || s == StatusAdded || s == StatusRemoved
}

// MarshalText encodes the status as its label.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
