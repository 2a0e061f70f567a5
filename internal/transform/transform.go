// Package transform rewrites decoded documents before they are printed:
// object keys can be renamed to a naming convention and arrays can be put
// into canonical order.
package transform

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"golang.org/x/exp/slices"

	"github.com/mcncl/jsonv/internal/errors"
	"github.com/mcncl/jsonv/internal/value"
)

// KeyFunc maps an object key to its new name.
type KeyFunc func(string) string

var keyCases = map[string]KeyFunc{
	"snake":           strcase.ToSnake,
	"camel":           strcase.ToCamel,
	"lower_camel":     strcase.ToLowerCamel,
	"kebab":           strcase.ToKebab,
	"screaming_snake": strcase.ToScreamingSnake,
}

// KeyCaseNames lists the accepted key case names.
func KeyCaseNames() []string {
	names := make([]string, 0, len(keyCases))
	for name := range keyCases {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// KeyCase returns the KeyFunc for a case name. The empty name returns nil,
// meaning keys are left alone.
func KeyCase(name string) (KeyFunc, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, nil
	}
	fn, ok := keyCases[strings.ReplaceAll(name, "-", "_")]
	if !ok {
		return nil, errors.NewTransformError(
			fmt.Sprintf("unknown key case '%s' (want one of %s)", name, strings.Join(KeyCaseNames(), ", ")),
			nil,
		)
	}
	return fn, nil
}

// RenameKeys returns a copy of v with fn applied to every object key at any
// depth. It fails if two keys of one object map to the same name.
func RenameKeys(v value.Value, fn KeyFunc) (value.Value, error) {
	switch v.Kind() {
	case value.KindArray:
		src := *value.As[value.Array](&v)
		out := make([]value.Value, len(src))
		for i, item := range src {
			renamed, err := RenameKeys(item, fn)
			if err != nil {
				return value.Value{}, err
			}
			out[i] = renamed
		}
		return value.ArrayOf(out...), nil
	case value.KindObject:
		src := value.As[value.Object](&v)
		out := value.New(value.KindObject)
		for _, f := range src.Fields() {
			key := fn(f.Key)
			if out.Contains(key) {
				return value.Value{}, errors.NewTransformError(
					fmt.Sprintf("key %q collides with another key after renaming to %q", f.Key, key),
					nil,
				)
			}
			renamed, err := RenameKeys(f.Value, fn)
			if err != nil {
				return value.Value{}, err
			}
			*out.Key(key) = renamed
		}
		return out, nil
	default:
		return v.Clone(), nil
	}
}

// SortArrays returns a copy of v in which every array, at any depth, is
// stably sorted by value.Compare. Elements are sorted after their own
// contents.
func SortArrays(v value.Value) value.Value {
	switch v.Kind() {
	case value.KindArray:
		src := *value.As[value.Array](&v)
		out := make([]value.Value, len(src))
		for i, item := range src {
			out[i] = SortArrays(item)
		}
		slices.SortStableFunc(out, value.Compare)
		return value.ArrayOf(out...)
	case value.KindObject:
		src := value.As[value.Object](&v)
		out := value.New(value.KindObject)
		for _, f := range src.Fields() {
			*out.Key(f.Key) = SortArrays(f.Value)
		}
		return out
	default:
		return v.Clone()
	}
}

// DropKeys returns a copy of v without the object members, at any depth,
// whose keys satisfy drop.
func DropKeys(v value.Value, drop func(string) bool) value.Value {
	switch v.Kind() {
	case value.KindArray:
		src := *value.As[value.Array](&v)
		out := make([]value.Value, len(src))
		for i, item := range src {
			out[i] = DropKeys(item, drop)
		}
		return value.ArrayOf(out...)
	case value.KindObject:
		src := value.As[value.Object](&v)
		out := value.New(value.KindObject)
		for _, f := range src.Fields() {
			if drop(f.Key) {
				continue
			}
			*out.Key(f.Key) = DropKeys(f.Value, drop)
		}
		return out
	default:
		return v.Clone()
	}
}

// Options selects the rewrites Apply performs.
type Options struct {
	// KeyCase names a case from KeyCaseNames; empty keeps keys as they are.
	KeyCase string
	// KeyMappings renames specific keys and takes precedence over KeyCase.
	KeyMappings map[string]string
	// Drop, when set, removes members whose original key it accepts.
	Drop       func(string) bool
	SortArrays bool
}

// Apply runs the rewrites selected by opts: members are dropped first, then
// keys are renamed, then arrays are sorted so the order reflects the final
// keys.
func Apply(v value.Value, opts Options) (value.Value, error) {
	caseFn, err := KeyCase(opts.KeyCase)
	if err != nil {
		return value.Value{}, err
	}
	if opts.Drop != nil {
		v = DropKeys(v, opts.Drop)
	}
	if caseFn != nil || len(opts.KeyMappings) > 0 {
		rename := func(key string) string {
			if mapped, ok := opts.KeyMappings[key]; ok {
				return mapped
			}
			if caseFn != nil {
				return caseFn(key)
			}
			return key
		}
		if v, err = RenameKeys(v, rename); err != nil {
			return value.Value{}, err
		}
	}
	if opts.SortArrays {
		v = SortArrays(v)
	}
	return v, nil
}
