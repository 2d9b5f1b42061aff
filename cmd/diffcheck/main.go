// Package main provides the entry point for the diffcheck CLI.
//
// diffcheck compares the newest snapshot archive in a directory with an
// archive at least N days older and lists the pages that were modified,
// added or removed.
//
// Usage:
//
//	diffcheck <N_days> <output_dir>
//	diffcheck 7 ./snapshots --markdown -o report.md
//
// See --help for all available options.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
