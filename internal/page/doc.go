// Package page extracts metadata from markdown snapshot files.
//
// A snapshot file optionally starts with a source marker and a level-one
// heading:
//
//	<!-- URL: https://example.com/page -->
//	# Page Title
//
//	body...
//
// Parse reads these with line-oriented matching only; it never parses the
// markdown itself and never fails.
package page
