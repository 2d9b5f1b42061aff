// Package report renders a diff report and decides the process exit status.
//
// Writers for each output format implement the Writer interface:
//   - SimpleWriter: plain text for terminal display (default)
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: GitHub flavored markdown for sharing
//   - ToonWriter: TOON output for LLM consumption
//
// Writers only reflect what the classifier produced. Unchanged pages feed
// the summary counts but are never listed as changed pages.
package report
