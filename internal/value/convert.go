package value

import (
	"golang.org/x/exp/constraints"
)

// Native lists every Go type a Value can be built from or converted to.
// The set is closed: numeric types map to the number kind, string to the
// string kind, bool to the boolean kind, and the payload types to their own
// kind.
type Native interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64 |
		string | bool |
		Null | Array | Boolean | Number | Object | String
}

// From converts a native value into a Value. Arrays and objects are adopted,
// not copied.
func From[T Native](x T) Value {
	switch x := any(x).(type) {
	case int:
		return fromNumber(x)
	case int8:
		return fromNumber(x)
	case int16:
		return fromNumber(x)
	case int32:
		return fromNumber(x)
	case int64:
		return fromNumber(x)
	case uint:
		return fromNumber(x)
	case uint8:
		return fromNumber(x)
	case uint16:
		return fromNumber(x)
	case uint32:
		return fromNumber(x)
	case uint64:
		return fromNumber(x)
	case float32:
		return fromNumber(x)
	case float64:
		return fromNumber(x)
	case string:
		return Value{kind: KindString, str: String(x)}
	case bool:
		return Value{kind: KindBoolean, boolean: Boolean(x)}
	case Null:
		return Value{}
	case Array:
		return ArrayOf(x...)
	case Boolean:
		return Value{kind: KindBoolean, boolean: x}
	case Number:
		return Value{kind: KindNumber, number: x}
	case Object:
		return Value{kind: KindObject, object: x}
	case String:
		return Value{kind: KindString, str: x}
	}
	panic("value: unreachable native type")
}

func fromNumber[N constraints.Integer | constraints.Float](n N) Value {
	return Value{kind: KindNumber, number: Number(n)}
}

// TryGet converts v to T and reports whether the conversion was possible.
// Any number converts to any numeric T; every other kind converts only to
// its own payload type or the matching Go base type. Arrays and objects are
// deep copied.
func TryGet[T Native](v Value) (T, bool) {
	var ret T
	ok := extract(&ret, &v, true)
	return ret, ok
}

// Get is like TryGet but panics with a *UsageError when v cannot be
// converted to T.
func Get[T Native](v Value) T {
	ret, ok := TryGet[T](v)
	if !ok {
		panic(usagef("cannot convert %s to %T", v.kind, ret))
	}
	return ret
}

// TryTake is like TryGet but moves the payload out and resets v to null on
// success. On failure v is left untouched.
func TryTake[T Native](v *Value) (T, bool) {
	var ret T
	ok := extract(&ret, v, false)
	if ok {
		*v = Value{}
	}
	return ret, ok
}

// Take is like TryTake but panics with a *UsageError when v cannot be
// converted to T.
func Take[T Native](v *Value) T {
	ret, ok := TryTake[T](v)
	if !ok {
		panic(usagef("cannot convert %s to %T", v.kind, ret))
	}
	return ret
}

// extract stores v converted to the type dst points at. dst is left alone
// when the conversion is not possible.
func extract(dst any, v *Value, clone bool) bool {
	switch p := dst.(type) {
	case *int:
		return numberTo(p, v)
	case *int8:
		return numberTo(p, v)
	case *int16:
		return numberTo(p, v)
	case *int32:
		return numberTo(p, v)
	case *int64:
		return numberTo(p, v)
	case *uint:
		return numberTo(p, v)
	case *uint8:
		return numberTo(p, v)
	case *uint16:
		return numberTo(p, v)
	case *uint32:
		return numberTo(p, v)
	case *uint64:
		return numberTo(p, v)
	case *float32:
		return numberTo(p, v)
	case *float64:
		return numberTo(p, v)
	case *Number:
		return numberTo(p, v)
	case *string:
		if v.kind == KindString {
			*p = string(v.str)
			return true
		}
	case *String:
		if v.kind == KindString {
			*p = v.str
			return true
		}
	case *bool:
		if v.kind == KindBoolean {
			*p = bool(v.boolean)
			return true
		}
	case *Boolean:
		if v.kind == KindBoolean {
			*p = v.boolean
			return true
		}
	case *Null:
		return v.kind == KindNull
	case *Array:
		if v.kind == KindArray {
			*p = v.array
			if clone {
				*p = v.array.Clone()
			}
			return true
		}
	case *Object:
		if v.kind == KindObject {
			*p = v.object
			if clone {
				*p = v.object.Clone()
			}
			return true
		}
	}
	return false
}

func numberTo[N constraints.Integer | constraints.Float](dst *N, v *Value) bool {
	if v.kind != KindNumber {
		return false
	}
	*dst = N(v.number)
	return true
}
