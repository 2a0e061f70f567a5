package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by AppError values.
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe JSON data to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrInvalidPointer  = errors.New("invalid JSON pointer")
	ErrPointerNotFound = errors.New("JSON pointer does not resolve to a value")
	ErrNotAnObject     = errors.New("value is not an object")
)

// ErrorType says which stage of a command failed.
type ErrorType string

const (
	ErrorTypeInput     ErrorType = "input"
	ErrorTypeParsing   ErrorType = "parsing"
	ErrorTypeQuery     ErrorType = "query"
	ErrorTypeTransform ErrorType = "transform"
	ErrorTypeConfig    ErrorType = "config"
	ErrorTypeOutput    ErrorType = "output"
	ErrorTypeUnknown   ErrorType = "unknown"
)

// labels prefix the message shown to users for each error type.
var labels = map[ErrorType]string{
	ErrorTypeInput:     "Input error",
	ErrorTypeParsing:   "JSON parsing error",
	ErrorTypeQuery:     "Query error",
	ErrorTypeTransform: "Transform error",
	ErrorTypeConfig:    "Configuration error",
	ErrorTypeOutput:    "Output error",
}

// hints replace bare sentinel errors that reach the user unwrapped.
var hints = []struct {
	err  error
	hint string
}{
	{ErrEmptyInput, "The input is empty. Please provide valid JSON data."},
	{ErrFileNotFound, "The specified file could not be found. Please check the file path."},
	{ErrFileEmpty, "The specified file is empty. Please provide a file with valid JSON content."},
	{ErrNoInput, "No input provided. Please specify a file with -i or pipe JSON data to stdin."},
	{ErrInvalidFilePath, "Invalid file path. Please provide a valid file path."},
	{ErrInvalidPointer, "Invalid JSON pointer. Pointers look like /key/0/other."},
	{ErrPointerNotFound, "Nothing found at the given JSON pointer."},
	{ErrNotAnObject, "The value is not an object."},
}

// AppError carries the failing stage along with a message and the cause.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError of the same type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Type == t.Type
}

// NewInputError reports a failure to read input.
func NewInputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInput, Message: message, Err: err}
}

// NewParsingError reports malformed input.
func NewParsingError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeParsing, Message: message, Err: err}
}

// NewQueryError reports a pointer or key lookup that could not be answered.
func NewQueryError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeQuery, Message: message, Err: err}
}

// NewTransformError reports a rewrite that would lose data or is misconfigured.
func NewTransformError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeTransform, Message: message, Err: err}
}

func NewConfigError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeConfig, Message: message, Err: err}
}

func NewOutputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeOutput, Message: message, Err: err}
}

// TypeOf returns the type of the outermost AppError in err's chain, or
// ErrorTypeUnknown.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// UserFriendlyError returns the message printed for err on the command line.
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if label, ok := labels[appErr.Type]; ok {
			return fmt.Sprintf("%s: %s", label, appErr.Message)
		}
		return fmt.Sprintf("Error: %s", appErr.Message)
	}

	for _, h := range hints {
		if errors.Is(err, h.err) {
			return "Error: " + h.hint
		}
	}
	return fmt.Sprintf("Error: %v", err)
}
