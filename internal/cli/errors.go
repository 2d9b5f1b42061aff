package cli

// ErrorCode defines error types for command line operations.
type ErrorCode string

const (
	// ErrUsage is returned when required arguments are missing.
	// Commands print their usage text instead of an error message.
	ErrUsage ErrorCode = "Usage"

	// ErrInvalidArgument is returned when a positional argument is malformed.
	ErrInvalidArgument ErrorCode = "InvalidArgument"

	// ErrInvalidConfig is returned when flags or the config file are invalid.
	ErrInvalidConfig ErrorCode = "InvalidConfig"

	// ErrOutput is returned when the report cannot be written.
	ErrOutput ErrorCode = "OutputError"
)

// ErrorCode returns the code as a string.
func (c ErrorCode) ErrorCode() string {
	return string(c)
}
