package value

// Kind identifies the active alternative of a Value.
// The declaration order is also the primary sort key used by Compare.
type Kind uint8

const (
	KindNull Kind = iota
	KindArray
	KindBoolean
	KindNumber
	KindObject
	KindString
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindObject:
		return "object"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}
