package diff

import (
	"sort"

	"github.com/nao1215/snapdiff/internal/model"
	"github.com/nao1215/snapdiff/internal/page"
	"github.com/samber/lo"
)

// Option configures Classify.
type Option func(*options)

type options struct {
	lineDiff    bool
	contextSize int
}

// WithLineDiff attaches a line diff to every MODIFIED entry.
// contextLines is the number of unchanged lines kept around each change;
// negative values keep all of them.
func WithLineDiff(contextLines int) Option {
	return func(o *options) {
		o.lineDiff = true
		o.contextSize = contextLines
	}
}

// Classify compares baseline and current and returns a report whose entries
// are ordered MODIFIED, ADDED, REMOVED, UNCHANGED and by name within a group.
// Nil mappings are treated as empty.
func Classify(baseline, current map[string]string, opts ...Option) *model.Report {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	names := lo.Uniq(append(lo.Keys(baseline), lo.Keys(current)...))
	entries := make([]model.Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, classify(name, baseline, current, o))
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Status != entries[j].Status {
			return entries[i].Status < entries[j].Status
		}
		return entries[i].Name < entries[j].Name
	})

	return model.NewReport(entries)
}

// classify builds the entry for a single name present in at least one side.
func classify(name string, baseline, current map[string]string, o options) model.Entry {
	oldContent, inBaseline := baseline[name]
	newContent, inCurrent := current[name]

	switch {
	case !inBaseline:
		return model.Entry{Name: name, Status: model.StatusAdded, Metadata: page.Parse(name, newContent)}
	case !inCurrent:
		return model.Entry{Name: name, Status: model.StatusRemoved, Metadata: page.Parse(name, oldContent)}
	case oldContent == newContent:
		return model.Entry{Name: name, Status: model.StatusUnchanged, Metadata: page.Parse(name, newContent)}
	}

	entry := model.Entry{Name: name, Status: model.StatusModified, Metadata: page.Parse(name, newContent)}
	if o.lineDiff {
		entry.Diff = LineDiff(oldContent, newContent, o.contextSize)
	}
	return entry
}
