// Package model defines the data structures shared by the snapshot producer
// and the archive diff engine.
//
// This package contains the following main types:
//   - Status: The change status of a page across two snapshots
//   - Metadata: The title and source URL embedded in a markdown snapshot
//   - Entry: One page's classification in a comparison
//   - Report: The ordered, summarized result of comparing two archives
//   - Page: A page moving through the producer pipeline
//
// The types live in their own package so that the diff, report and snapshot
// packages can share them without import cycles. Report and Entry are
// serializable to JSON and Toon for machine-readable output.
package model
