// Package diff classifies the pages of two snapshots.
//
// Classify performs an outer join of two name-to-content mappings. A name
// found only in the current mapping is ADDED, only in the baseline is
// REMOVED, and in both is UNCHANGED when the contents are byte-for-byte
// equal and MODIFIED otherwise. Entries are ordered by status group and
// then by name, independent of map iteration order.
package diff
