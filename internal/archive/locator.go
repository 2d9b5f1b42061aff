package archive

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/morikuni/failure/v2"
)

// List returns every timestamp-named archive in dir, newest first.
// Subdirectories and files with other names are ignored.
func List(dir string) ([]Ref, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, failure.New(ErrArchiveNotFound,
			failure.Message("cannot read archive directory"),
			failure.Context{
				"dir":   dir,
				"error": err.Error(),
			},
		)
	}

	refs := make([]Ref, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		ref, ok := NewRef(filepath.Join(dir, e.Name()))
		if !ok {
			continue
		}
		refs = append(refs, ref)
	}

	sort.Slice(refs, func(i, j int) bool {
		return refs[i].Timestamp.After(refs[j].Timestamp)
	})
	return refs, nil
}

// Locate selects the archives to compare in dir.
//
// current is the archive with the newest timestamp. baseline is the newest
// archive whose timestamp is at or before current minus days calendar days.
func Locate(dir string, days int) (current, baseline Ref, err error) {
	if days < 0 {
		return Ref{}, Ref{}, failure.New(ErrInvalidArgument,
			failure.Message("number of days must be a non-negative integer"),
			failure.Context{"days": strconv.Itoa(days)},
		)
	}

	refs, err := List(dir)
	if err != nil {
		return Ref{}, Ref{}, err
	}
	return Select(refs, days)
}

// Select applies the baseline rule to refs, which must be sorted newest first.
func Select(refs []Ref, days int) (current, baseline Ref, err error) {
	if len(refs) < 2 {
		return Ref{}, Ref{}, failure.New(ErrArchiveNotFound,
			failure.Message("at least two archives are required for comparison"),
			failure.Context{"found": strconv.Itoa(len(refs))},
		)
	}

	current = refs[0]
	cutoff := current.Timestamp.AddDate(0, 0, -days)
	for _, ref := range refs[1:] {
		if !ref.Timestamp.After(cutoff) {
			return current, ref, nil
		}
	}

	return Ref{}, Ref{}, failure.New(ErrArchiveNotFound,
		failure.Message("no baseline archive found at least the requested number of days older than the current archive"),
		failure.Context{
			"current": current.Name(),
			"days":    strconv.Itoa(days),
		},
	)
}
