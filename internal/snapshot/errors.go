package snapshot

// ErrorCode defines error types for snapshot production.
type ErrorCode string

const (
	// ErrCSVNotFound is returned when the page list does not exist.
	ErrCSVNotFound ErrorCode = "CSVNotFound"

	// ErrCSVRead is returned when the page list cannot be read or parsed.
	ErrCSVRead ErrorCode = "CSVReadError"

	// ErrInvalidEntry is recorded on a list row that fails validation.
	ErrInvalidEntry ErrorCode = "InvalidEntry"

	// ErrUnsupportedScheme is returned for URLs that are neither http(s) nor file.
	ErrUnsupportedScheme ErrorCode = "UnsupportedScheme"

	// ErrFetch is returned when a page cannot be fetched.
	ErrFetch ErrorCode = "FetchError"

	// ErrConvert is returned when a page cannot be converted to markdown.
	ErrConvert ErrorCode = "ConvertError"

	// ErrNoPages is returned when no page could be converted.
	ErrNoPages ErrorCode = "NoPagesConverted"
)

// ErrorCode returns the code as a string.
func (c ErrorCode) ErrorCode() string {
	return string(c)
}
