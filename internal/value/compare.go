package value

import (
	"math"
	"strings"
)

// Compare orders two values and returns -1, 0 or +1.
//
// Values of different kinds order by kind: null < array < boolean < number <
// object < string. Within a kind: nulls are equal, arrays and objects compare
// lexicographically (object fields by key, then by value), false sorts before
// true, numbers by value, strings bytewise. NaN equals NaN and sorts before
// every other number.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	switch a.kind {
	case KindArray:
		return compareArrays(a.array, b.array)
	case KindBoolean:
		return compareBooleans(a.boolean, b.boolean)
	case KindNumber:
		return compareNumbers(a.number, b.number)
	case KindObject:
		return compareObjects(a.object, b.object)
	case KindString:
		return strings.Compare(string(a.str), string(b.str))
	default:
		return 0
	}
}

func compareArrays(a, b Array) int {
	for i := 0; ; i++ {
		switch {
		case i == len(a) && i == len(b):
			return 0
		case i == len(a):
			return -1
		case i == len(b):
			return 1
		}
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
}

func compareObjects(a, b Object) int {
	for i := 0; ; i++ {
		switch {
		case i == len(a.fields) && i == len(b.fields):
			return 0
		case i == len(a.fields):
			return -1
		case i == len(b.fields):
			return 1
		}
		if c := strings.Compare(a.fields[i].Key, b.fields[i].Key); c != 0 {
			return c
		}
		if c := Compare(a.fields[i].Value, b.fields[i].Value); c != 0 {
			return c
		}
	}
}

func compareBooleans(a, b Boolean) int {
	switch {
	case a == b:
		return 0
	case !bool(a):
		return -1
	default:
		return 1
	}
}

func compareNumbers(a, b Number) int {
	x, y := float64(a), float64(b)
	switch xn, yn := math.IsNaN(x), math.IsNaN(y); {
	case xn && yn:
		return 0
	case xn:
		return -1
	case yn:
		return 1
	}
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// Compare is shorthand for Compare(v, w).
func (v Value) Compare(w Value) int { return Compare(v, w) }

// Equal reports whether v and w compare equal.
func (v Value) Equal(w Value) bool { return Compare(v, w) == 0 }

// NotEqual reports whether v and w differ.
func (v Value) NotEqual(w Value) bool { return Compare(v, w) != 0 }

// Less reports whether v sorts before w.
func (v Value) Less(w Value) bool { return Compare(v, w) < 0 }

// LessOrEqual reports whether v does not sort after w.
func (v Value) LessOrEqual(w Value) bool { return Compare(v, w) <= 0 }

// Greater reports whether v sorts after w.
func (v Value) Greater(w Value) bool { return Compare(v, w) > 0 }

// GreaterOrEqual reports whether v does not sort before w.
func (v Value) GreaterOrEqual(w Value) bool { return Compare(v, w) >= 0 }

// Equal reports whether a and b compare equal. It is suitable for
// cmp.Comparer.
func Equal(a, b Value) bool { return Compare(a, b) == 0 }
