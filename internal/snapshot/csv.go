package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/morikuni/failure/v2"
)

var validate = validator.New()

// Entry is one row of the page list.
type Entry struct {
	// Title is the page title used for the heading and the file name.
	Title string `validate:"required"`

	// URL is the page location.
	URL string `validate:"required,uri"`

	// Date is the optional date column, formatted YYYY-MM-DD.
	Date string `validate:"omitempty,datetime=2006-01-02"`

	// Line is the 1-based line number in the list.
	Line int `validate:"-"`

	// Err is set when the row failed validation.
	Err error `validate:"-"`
}

// ReadEntries reads the page list at path.
func ReadEntries(path string) ([]Entry, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, failure.New(ErrCSVNotFound,
				failure.Message("CSV file not found: "+path),
				failure.Context{"path": path},
			)
		}
		return nil, failure.Wrap(err, failure.WithCode(ErrCSVRead), failure.Context{"path": path})
	}
	defer f.Close()

	return ParseEntries(f)
}

// ParseEntries parses a pipe-delimited page list. Blank lines and lines
// starting with "#" are skipped. Rows failing validation are returned with
// Err set so that callers can report and skip them.
func ParseEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.Comma = '|'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var entries []Entry
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, failure.Wrap(err, failure.WithCode(ErrCSVRead))
		}

		line, _ := cr.FieldPos(0)
		entries = append(entries, newEntry(record, line))
	}
	return entries, nil
}

func newEntry(record []string, line int) Entry {
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	e := Entry{
		Title: field(0),
		URL:   field(1),
		Date:  field(2),
		Line:  line,
	}
	if err := validate.Struct(e); err != nil {
		e.Err = failure.New(ErrInvalidEntry,
			failure.Message(invalidMessage(err)),
			failure.Context{"line": strconv.Itoa(line)},
		)
	}
	return e
}

// invalidMessage names the first failing column.
func invalidMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid entry"
	}
	switch fe := verrs[0]; fe.Field() {
	case "Title":
		return "title is required"
	case "URL":
		if fe.Tag() == "required" {
			return "url is required"
		}
		return "invalid url: " + fmt.Sprint(fe.Value())
	case "Date":
		return "invalid date, expected YYYY-MM-DD: " + fmt.Sprint(fe.Value())
	default:
		return fe.Error()
	}
}
