// Package snapshot produces snapshot archives from a list of web pages.
//
// The producer reads a pipe-delimited list of pages (Title|URL|Date),
// fetches each page over HTTP(S) or from a file:// URL, converts the main
// content to markdown and stores every page as "<slug>.md" in a new
// timestamped archive. Each markdown file starts with the source URL marker
// and a level-one title so the diff engine can recover them:
//
//	<!-- URL: https://en.wikipedia.org/wiki/Go_(programming_language) -->
//	# Go (programming language)
//
//	Go is a high-level general purpose programming language...
package snapshot
