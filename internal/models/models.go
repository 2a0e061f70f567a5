package models

import "github.com/mcncl/jsonv/internal/value"

// Document is a decoded JSON input passed between the jsonv stages.
type Document struct {
	Root value.Value
	// Source names where the document came from: a file path, "stdin" or
	// "string".
	Source string
	// Size is the number of input bytes that were decoded.
	Size int64
}

// RootKind returns the kind of the root value.
func (d Document) RootKind() value.Kind {
	return d.Root.Kind()
}

// StringFormat names a well known textual format recognised in string
// values.
type StringFormat string

const (
	FormatNone     StringFormat = ""
	FormatUUID     StringFormat = "uuid"
	FormatDateTime StringFormat = "date-time"
	FormatDate     StringFormat = "date"
)

// PathInfo summarises every value found at one path of a document. Keys
// are pointer escaped, array elements share the segment "*" and a key
// that is literally "*" is written "~*".
type PathInfo struct {
	Path  string
	Kinds []value.Kind
	// Count is the number of values seen at the path.
	Count int
	// Optional is set when some objects holding the path lack the key.
	Optional bool
	// Integer is set when every number seen is integral.
	Integer bool
	// Format is shared by every string seen, if any.
	Format StringFormat
}

// Shape is the structural summary of a document, ordered by path.
type Shape struct {
	Paths []PathInfo
}
