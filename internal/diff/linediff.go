package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContextLines is the number of unchanged lines shown around a change.
const DefaultContextLines = 2

// LineDiff renders a line-oriented diff of two texts. Removed lines are
// prefixed with "-", added lines with "+" and context lines with a space.
// Runs of unchanged lines longer than twice contextLines are collapsed to
// "...". A negative contextLines keeps every unchanged line.
func LineDiff(oldText, newText string, contextLines int) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for i, d := range diffs {
		chunk := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			writePrefixed(&sb, "-", chunk)
		case diffmatchpatch.DiffInsert:
			writePrefixed(&sb, "+", chunk)
		case diffmatchpatch.DiffEqual:
			writeContext(&sb, chunk, contextLines, i == 0, i == len(diffs)-1)
		}
	}
	return sb.String()
}

// writeContext writes unchanged lines, keeping only the lines adjacent to
// the surrounding changes.
func writeContext(sb *strings.Builder, lines []string, n int, first, last bool) {
	if n < 0 {
		writePrefixed(sb, " ", lines)
		return
	}

	head, tail := n, n
	if first {
		head = 0
	}
	if last {
		tail = 0
	}
	if head+tail >= len(lines) {
		writePrefixed(sb, " ", lines)
		return
	}

	writePrefixed(sb, " ", lines[:head])
	sb.WriteString("...\n")
	writePrefixed(sb, " ", lines[len(lines)-tail:])
}

func writePrefixed(sb *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		sb.WriteString(prefix)
		sb.WriteString(l)
		sb.WriteString("\n")
	}
}

// splitLines splits text into lines without their terminators.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
