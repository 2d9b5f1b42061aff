package report

import (
	"bytes"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/snapdiff/internal/model"
)

// MarkdownWriter outputs reports in GitHub flavored markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	w.writeHeader(md, report)
	w.writeChanges(md, report)
	w.writeSummary(md, report.Summary)

	if err := md.Build(); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}

// writeHeader writes the title and the compared archives.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Snapshot Diff Report")
	md.PlainText("")

	if report.Baseline.Name == "" && report.Current.Name == "" {
		return
	}
	md.Table(markdown.TableSet{
		Header: []string{"Archive", "Name"},
		Rows: [][]string{
			{"Baseline", "`" + report.Baseline.Name + "`"},
			{"Current", "`" + report.Current.Name + "`"},
			{"Minimum age (days)", strconv.Itoa(report.Days)},
		},
	})
	md.PlainText("")
}

// writeChanges writes one section per change status.
func (w *MarkdownWriter) writeChanges(md *markdown.Markdown, report *model.Report) {
	md.H2("Changes")
	md.PlainText("")

	if !report.HasChanges() {
		md.Tip(noChangesMessage + ".")
		md.PlainText("")
		return
	}

	for _, status := range model.Statuses {
		if !status.IsChange() {
			continue
		}
		entries := report.ByStatus(status)
		if len(entries) == 0 {
			continue
		}

		md.H3(status.String())
		md.PlainText("")

		items := make([]string, 0, len(entries))
		for _, e := range entries {
			items = append(items, entryLink(e))
		}
		md.BulletList(items...)
		md.PlainText("")

		for _, e := range entries {
			if e.Diff == "" {
				continue
			}
			md.PlainText("**" + e.Title + "**")
			md.PlainText("")
			md.CodeBlocks(markdown.SyntaxHighlight("diff"), e.Diff)
			md.PlainText("")
		}
	}
}

// writeSummary writes the per-status count table.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, s model.Summary) {
	md.H2("Summary")
	md.PlainText("")

	rows := make([][]string, 0, len(model.Statuses)+1)
	for _, status := range model.Statuses {
		rows = append(rows, []string{status.String(), strconv.Itoa(s.Count(status))})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(s.Total()) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Status", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// entryLink renders an entry title, linked to its source URL when known.
func entryLink(e model.Entry) string {
	if e.URL == "" {
		return e.Title + " (`" + e.Name + "`)"
	}
	return markdown.Link(e.Title, e.URL) + " (`" + e.Name + "`)"
}
