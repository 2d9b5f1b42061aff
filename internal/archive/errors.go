package archive

// ErrorCode defines error types for archive operations.
type ErrorCode string

const (
	// ErrInvalidArgument is returned when the day window is negative.
	ErrInvalidArgument ErrorCode = "InvalidArgument"

	// ErrArchiveNotFound is returned when no qualifying current/baseline
	// pair exists or the archive directory cannot be read.
	ErrArchiveNotFound ErrorCode = "ArchiveNotFound"

	// ErrArchiveRead is returned when a selected archive cannot be opened
	// or is not a valid compressed tar stream.
	ErrArchiveRead ErrorCode = "ArchiveReadError"

	// ErrArchiveWrite is returned when a new archive cannot be created.
	ErrArchiveWrite ErrorCode = "ArchiveWriteError"
)

// ErrorCode returns the code as a string.
func (c ErrorCode) ErrorCode() string {
	return string(c)
}
