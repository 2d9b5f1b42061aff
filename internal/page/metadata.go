package page

import (
	"path"
	"regexp"
	"strings"

	"github.com/nao1215/snapdiff/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HeaderLines is the number of leading lines searched for the URL marker.
const HeaderLines = 5

var urlMarker = regexp.MustCompile(`^<!--\s*URL:\s*(.*?)\s*-->$`)

// Parse extracts the title and source URL of a markdown snapshot.
// name is the archive member name, used for the fallback title.
func Parse(name, content string) model.Metadata {
	meta := model.Metadata{}

	line := -1
	for raw := range strings.SplitSeq(content, "\n") {
		line++
		text := strings.TrimRight(raw, " \t\r")
		if line == 0 {
			text = strings.TrimPrefix(text, "\uFEFF")
		}

		if meta.URL == "" && line < HeaderLines {
			if m := urlMarker.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
				meta.URL = m[1]
				continue
			}
		}
		if meta.Title == "" {
			if title, ok := heading(text); ok {
				meta.Title = title
			}
		}
		if meta.Title != "" && (meta.URL != "" || line >= HeaderLines) {
			break
		}
	}

	if meta.Title == "" {
		meta.Title = TitleFromName(name)
	}
	return meta
}

// heading returns the text of a "# " heading line.
func heading(line string) (string, bool) {
	if !strings.HasPrefix(line, "# ") {
		return "", false
	}
	title := strings.TrimSpace(strings.TrimPrefix(line, "# "))
	if title == "" {
		return "", false
	}
	return title, true
}

// TitleFromName derives a display title from a file name:
// "my_page.md" becomes "My Page".
func TitleFromName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	words := strings.Fields(strings.ReplaceAll(base, "_", " "))
	return cases.Title(language.Und).String(strings.Join(words, " "))
}
