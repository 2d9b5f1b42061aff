package model

import "time"

// Metadata is the information extracted from a markdown snapshot file.
type Metadata struct {
	// Title is the first level-one heading, or a title derived from the file name.
	Title string `json:"title"`

	// URL is the source URL recorded in the "<!-- URL: ... -->" marker.
	// Empty when the file carries no marker.
	URL string `json:"url,omitempty"`
}

// Entry is the classification of one file name across two snapshots.
// Metadata is taken from the current snapshot when the file exists there,
// otherwise from the baseline.
type Entry struct {
	// Name is the archive member name, e.g. "my_page.md".
	Name string `json:"name"`

	// Status is the change status of the page.
	Status Status `json:"status"`

	Metadata

	// Diff is an optional line diff between the two versions.
	// Only populated for modified entries when line diffs were requested.
	Diff string `json:"diff,omitempty"`
}

// Summary counts entries per status.
type Summary struct {
	Modified  int `json:"modified"`
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
}

// Count returns the number of entries with the given status.
func (s Summary) Count(status Status) int {
	switch status {
	case StatusModified:
		return s.Modified
	case StatusAdded:
		return s.Added
	case StatusRemoved:
		return s.Removed
	case StatusUnchanged:
		return s.Unchanged
	default:
		return 0
	}
}

// Changes returns the number of modified, added and removed entries.
func (s Summary) Changes() int {
	return s.Modified + s.Added + s.Removed
}

// Total returns the number of entries of any status.
func (s Summary) Total() int {
	return s.Changes() + s.Unchanged
}

// add increments the counter for status.
func (s *Summary) add(status Status) {
	switch status {
	case StatusModified:
		s.Modified++
	case StatusAdded:
		s.Added++
	case StatusRemoved:
		s.Removed++
	case StatusUnchanged:
		s.Unchanged++
	}
}

// Snapshot identifies one of the two compared archives.
type Snapshot struct {
	// Name is the archive file name.
	Name string `json:"name"`

	// Timestamp is the time encoded in the archive file name.
	Timestamp time.Time `json:"timestamp"`
}

// Report is the result of comparing a baseline snapshot with a current one.
type Report struct {
	// Baseline is the older archive. Zero when the report was built from raw mappings.
	Baseline Snapshot `json:"baseline"`

	// Current is the newest archive.
	Current Snapshot `json:"current"`

	// Days is the minimum age difference requested between the two archives.
	Days int `json:"days"`

	// Entries holds every entry, including unchanged ones, in report order.
	Entries []Entry `json:"entries"`

	// Summary counts Entries per status.
	Summary Summary `json:"summary"`
}

// NewReport builds a report from entries that are already in report order
// and computes the summary.
func NewReport(entries []Entry) *Report {
	r := &Report{Entries: entries}
	for _, e := range entries {
		r.Summary.add(e.Status)
	}
	if r.Entries == nil {
		r.Entries = []Entry{}
	}
	return r
}

// Changed returns the modified, added and removed entries in report order.
func (r *Report) Changed() []Entry {
	changed := make([]Entry, 0, r.Summary.Changes())
	for _, e := range r.Entries {
		if e.Status.IsChange() {
			changed = append(changed, e)
		}
	}
	return changed
}

// HasChanges reports whether any page was modified, added or removed.
func (r *Report) HasChanges() bool {
	return r.Summary.Changes() > 0
}

// ByStatus returns the entries with the given status in report order.
func (r *Report) ByStatus(status Status) []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out
}
