package snapshot

import (
	"strconv"
	"strings"
	"unicode"
)

// Slug turns a title into a file name stem: lowercased, with every run of
// characters other than letters and digits replaced by "_".
func Slug(title string) string {
	var sb strings.Builder
	pending := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			pending = false
			sb.WriteRune(r)
			continue
		}
		pending = true
	}
	if sb.Len() == 0 {
		return "page"
	}
	return sb.String()
}

// fileNamer hands out unique markdown file names. A repeated slug gets a
// numeric suffix: "page.md", "page_2.md", "page_3.md".
type fileNamer struct {
	used map[string]bool
}

func newFileNamer() *fileNamer {
	return &fileNamer{used: make(map[string]bool)}
}

func (n *fileNamer) name(title string) string {
	stem := Slug(title)
	candidate := stem
	for i := 2; n.used[candidate]; i++ {
		candidate = stem + "_" + strconv.Itoa(i)
	}
	n.used[candidate] = true
	return candidate + ".md"
}
