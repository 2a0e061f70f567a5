// Package value provides an in-memory JSON value: a closed tagged union over
// the six JSON kinds, a total order over values, and an RFC 8259 decoder and
// canonical encoder.
//
// Misuse of the accessors (asking a number for its size, indexing past the
// end of an array, reading a missing key) panics with a *UsageError.
// Malformed input is reported by the decoder as a *StreamError.
package value

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Null is the payload type of the null kind.
type Null struct{}

// Array is the payload type of the array kind. Element order is preserved.
type Array []Value

// Boolean is the payload type of the boolean kind.
type Boolean bool

// Number is the payload type of the number kind.
type Number float64

// String is the payload type of the string kind. The bytes are not
// validated as UTF-8.
type String string

// Field is one key-value pair of an Object.
type Field struct {
	Key   string
	Value Value
}

// Object is the payload type of the object kind: a mapping from unique keys
// to values, always kept in ascending byte order of its keys.
type Object struct {
	fields []Field
}

// Alternative is satisfied by exactly the six payload types.
type Alternative interface {
	Null | Array | Boolean | Number | Object | String
}

// Value is one JSON instance. The zero Value is null.
//
// Exactly one payload slot, selected by kind, is meaningful at a time.
// Assigning a Value copies its container headers, so two copies of an
// array or object share elements; use Clone for an independent copy and
// Move to transfer ownership.
type Value struct {
	kind    Kind
	boolean Boolean
	number  Number
	str     String
	array   Array
	object  Object
}

// New returns the empty value of the given kind: null, [], false, 0, {} or "".
func New(kind Kind) Value {
	switch kind {
	case KindArray:
		return Value{kind: KindArray, array: Array{}}
	case KindBoolean, KindNumber, KindObject, KindString:
		return Value{kind: kind}
	default:
		return Value{}
	}
}

// ArrayOf returns an array holding items. The array takes ownership of the
// slice.
func ArrayOf(items ...Value) Value {
	if items == nil {
		items = Array{}
	}
	return Value{kind: KindArray, array: items}
}

// ObjectOf returns an object holding fields. A key given more than once
// keeps its last value.
func ObjectOf(fields ...Field) Value {
	var o Object
	for _, f := range fields {
		o.Set(f.Key, f.Value)
	}
	return Value{kind: KindObject, object: o}
}

// Pair builds a Field for ObjectOf.
func Pair(key string, v Value) Field {
	return Field{Key: key, Value: v}
}

// Kind returns the active alternative.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// StaticKind returns the kind whose payload type is T.
func StaticKind[T Alternative]() Kind {
	switch any((*T)(nil)).(type) {
	case *Array:
		return KindArray
	case *Boolean:
		return KindBoolean
	case *Number:
		return KindNumber
	case *Object:
		return KindObject
	case *String:
		return KindString
	default:
		return KindNull
	}
}

// TryAs returns a pointer to the payload of v if its active alternative is
// exactly T, and nil otherwise. It never converts between kinds.
func TryAs[T Alternative](v *Value) *T {
	var p any
	switch v.kind {
	case KindNull:
		p = &Null{}
	case KindArray:
		p = &v.array
	case KindBoolean:
		p = &v.boolean
	case KindNumber:
		p = &v.number
	case KindObject:
		p = &v.object
	case KindString:
		p = &v.str
	}
	t, _ := p.(*T)
	return t
}

// As is like TryAs but panics with a *UsageError when the kinds differ.
func As[T Alternative](v *Value) *T {
	t := TryAs[T](v)
	if t == nil {
		panic(usagef("expected %s but found %s", StaticKind[T](), v.kind))
	}
	return t
}

// Index returns a pointer to the i-th element of an array.
func (v *Value) Index(i int) *Value {
	if v.kind != KindArray {
		panic(usagef("cannot subscript into %s", v.kind))
	}
	if i < 0 || i >= len(v.array) {
		panic(usagef("cannot access element %d in array of size %d", i, len(v.array)))
	}
	return &v.array[i]
}

// At returns the i-th element of an array.
func (v Value) At(i int) Value {
	return *v.Index(i)
}

// Key returns a pointer to the value stored under key in an object,
// inserting a null value first if the key is missing.
func (v *Value) Key(key string) *Value {
	if v.kind != KindObject {
		panic(usagef("cannot lookup key %q in %s", key, v.kind))
	}
	return v.object.slot(key)
}

// Lookup returns the value stored under key in an object. A missing key
// panics.
func (v Value) Lookup(key string) Value {
	p := v.TryLookup(key)
	if p == nil {
		panic(usagef("object does not contain key %q", key))
	}
	return *p
}

// TryLookup returns a pointer to the value stored under key in an object,
// or nil if the key is missing.
func (v *Value) TryLookup(key string) *Value {
	if v.kind != KindObject {
		panic(usagef("cannot lookup key %q in %s", key, v.kind))
	}
	return v.object.Get(key)
}

// Contains reports whether an object has key.
func (v Value) Contains(key string) bool {
	if v.kind != KindObject {
		panic(usagef("cannot test for presence of key %q in %s", key, v.kind))
	}
	return v.object.Get(key) != nil
}

// Size returns the number of elements of an array, fields of an object or
// bytes of a string.
func (v Value) Size() int {
	switch v.kind {
	case KindArray:
		return len(v.array)
	case KindObject:
		return v.object.Len()
	case KindString:
		return len(v.str)
	default:
		panic(usagef("cannot get size of %s", v.kind))
	}
}

// IsEmpty reports whether an array, object or string has no contents.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindArray, KindObject, KindString:
		return v.Size() == 0
	default:
		panic(usagef("cannot test for emptiness of %s", v.kind))
	}
}

// Append adds items to the end of an array.
func (v *Value) Append(items ...Value) {
	if v.kind != KindArray {
		panic(usagef("cannot append to %s", v.kind))
	}
	v.array = append(v.array, items...)
}

// Remove deletes key from an object and reports whether it was present.
func (v *Value) Remove(key string) bool {
	if v.kind != KindObject {
		panic(usagef("cannot remove key %q from %s", key, v.kind))
	}
	return v.object.Delete(key)
}

// Reset discards the current payload and makes v the empty value of kind.
func (v *Value) Reset(kind Kind) *Value {
	*v = New(kind)
	return v
}

// Move returns v and leaves the source null.
func (v *Value) Move() Value {
	r := *v
	*v = Value{}
	return r
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		return Value{kind: KindArray, array: v.array.Clone()}
	case KindObject:
		return Value{kind: KindObject, object: v.object.Clone()}
	default:
		return v
	}
}

// Clone returns a deep copy of a.
func (a Array) Clone() Array {
	out := make(Array, len(a))
	for i := range a {
		out[i] = a[i].Clone()
	}
	return out
}

// Len returns the number of fields.
func (o Object) Len() int {
	return len(o.fields)
}

func (o Object) search(key string) (int, bool) {
	return slices.BinarySearchFunc(o.fields, key, func(f Field, k string) int {
		return strings.Compare(f.Key, k)
	})
}

// Get returns a pointer to the value stored under key, or nil.
func (o *Object) Get(key string) *Value {
	i, ok := o.search(key)
	if !ok {
		return nil
	}
	return &o.fields[i].Value
}

// Set stores v under key, replacing any previous value.
func (o *Object) Set(key string, v Value) {
	*o.slot(key) = v
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	i, ok := o.search(key)
	if ok {
		o.fields = slices.Delete(o.fields, i, i+1)
	}
	return ok
}

// Keys returns the keys in ascending order.
func (o Object) Keys() []string {
	keys := make([]string, len(o.fields))
	for i, f := range o.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns the fields in ascending key order. The returned slice is a
// copy; the values it holds are shared with o.
func (o Object) Fields() []Field {
	return slices.Clone(o.fields)
}

// Clone returns a deep copy of o.
func (o Object) Clone() Object {
	out := Object{fields: make([]Field, len(o.fields))}
	for i, f := range o.fields {
		out.fields[i] = Field{Key: f.Key, Value: f.Value.Clone()}
	}
	return out
}

// slot returns the value stored under key, inserting null if needed.
func (o *Object) slot(key string) *Value {
	i, ok := o.search(key)
	if !ok {
		o.fields = slices.Insert(o.fields, i, Field{Key: key})
	}
	return &o.fields[i].Value
}
