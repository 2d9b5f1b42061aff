package snapshot

import "strings"

// Render builds a snapshot markdown file: the source URL marker, the
// title heading, a blank line and the body.
func Render(title, pageURL, body string) string {
	var sb strings.Builder
	sb.WriteString("<!-- URL: ")
	sb.WriteString(pageURL)
	sb.WriteString(" -->\n# ")
	sb.WriteString(title)
	sb.WriteString("\n\n")
	if body = strings.TrimSpace(body); body != "" {
		sb.WriteString(body)
		sb.WriteString("\n")
	}
	return sb.String()
}
