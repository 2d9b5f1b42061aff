// Package main provides the entry point for the html2md CLI.
//
// html2md reads a pipe-delimited CSV listing wiki pages, converts each page
// to Markdown and bundles the results into a timestamped snapshot archive
// that diffcheck can compare later.
//
// Usage:
//
//	html2md <csv_file> <output_dir>
//	html2md pages.csv ./snapshots --concurrency 8
//
// See --help for all available options.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
