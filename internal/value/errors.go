package value

import (
	"fmt"
)

// UsageError reports an accessor or mutator called on a Value whose kind
// does not support it, an out of range index, or a missing key on a read
// only lookup. It is raised with panic; see Catch.
type UsageError struct {
	Msg string
}

// Error implements error interface
func (e *UsageError) Error() string {
	return "json: usage error: " + e.Msg
}

// StreamError reports malformed input found while decoding.
type StreamError struct {
	// Offset is the byte offset of the offending input.
	Offset int64
	Msg    string
	// Err is the underlying read error, if the failure came from the source.
	Err error
}

// Error implements error interface
func (e *StreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("json: syntax error at offset %d: %s: %v", e.Offset, e.Msg, e.Err)
	}
	return fmt.Sprintf("json: syntax error at offset %d: %s", e.Offset, e.Msg)
}

// Unwrap returns wrapped error
func (e *StreamError) Unwrap() error {
	return e.Err
}

func usagef(format string, args ...any) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// Catch runs fn and converts a *UsageError panic into a returned error.
// Any other panic is propagated unchanged.
func Catch(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if ue, ok := r.(*UsageError); ok {
			err = ue
			return
		}
		panic(r)
	}()
	fn()
	return nil
}

// describeChar renders a byte from the input (or eof, as -1) for humans:
// 'x' for printable characters, '\n' style for the common escapes, eof for
// the end of input and 0x1f style hex for everything else.
func describeChar(c int) string {
	switch c {
	case -1:
		return "eof"
	case '\\':
		return `'\\'`
	case '\'':
		return `'\''`
	case '\b':
		return `'\b'`
	case '\f':
		return `'\f'`
	case '\n':
		return `'\n'`
	case '\r':
		return `'\r'`
	case '\t':
		return `'\t'`
	}
	if c >= 0x20 && c < 0x7f {
		return "'" + string(rune(c)) + "'"
	}
	return fmt.Sprintf("0x%02x", c)
}
