// Package bridge converts between value.Value and ordinary Go values.
//
// Plain data (nil, booleans, numbers, strings, []any, map[string]any and
// map[any]any) is converted directly. Anything else, such as structs or
// time.Time, goes through github.com/goccy/go-json and is decoded by the
// value decoder.
package bridge

import (
	"fmt"

	gojson "github.com/goccy/go-json"

	"github.com/mcncl/jsonv/internal/value"
)

// FromGo converts x into a Value.
func FromGo(x any) (value.Value, error) {
	switch x := x.(type) {
	case nil:
		return value.Value{}, nil
	case value.Value:
		return x.Clone(), nil
	case bool:
		return value.From(x), nil
	case string:
		return value.From(x), nil
	case int:
		return value.From(x), nil
	case int8:
		return value.From(x), nil
	case int16:
		return value.From(x), nil
	case int32:
		return value.From(x), nil
	case int64:
		return value.From(x), nil
	case uint:
		return value.From(x), nil
	case uint8:
		return value.From(x), nil
	case uint16:
		return value.From(x), nil
	case uint32:
		return value.From(x), nil
	case uint64:
		return value.From(x), nil
	case float32:
		return value.From(x), nil
	case float64:
		return value.From(x), nil
	case []any:
		arr := make(value.Array, 0, len(x))
		for i, item := range x {
			v, err := FromGo(item)
			if err != nil {
				return value.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			arr = append(arr, v)
		}
		return value.From(arr), nil
	case map[string]any:
		obj := value.New(value.KindObject)
		for k, item := range x {
			v, err := FromGo(item)
			if err != nil {
				return value.Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			*obj.Key(k) = v
		}
		return obj, nil
	case map[any]any:
		obj := value.New(value.KindObject)
		for k, item := range x {
			key := fmt.Sprint(k)
			v, err := FromGo(item)
			if err != nil {
				return value.Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			*obj.Key(key) = v
		}
		return obj, nil
	}
	return marshal(x)
}

func marshal(x any) (value.Value, error) {
	data, err := gojson.Marshal(x)
	if err != nil {
		return value.Value{}, fmt.Errorf("marshal %T: %w", x, err)
	}
	return value.DecodeString(string(data))
}

// ToGo converts v into plain Go data: nil, bool, float64, string, []any or
// map[string]any.
func ToGo(v value.Value) any {
	switch v.Kind() {
	case value.KindArray:
		arr := *value.As[value.Array](&v)
		out := make([]any, len(arr))
		for i, item := range arr {
			out[i] = ToGo(item)
		}
		return out
	case value.KindBoolean:
		return value.Get[bool](v)
	case value.KindNumber:
		return value.Get[float64](v)
	case value.KindObject:
		obj := value.As[value.Object](&v)
		out := make(map[string]any, obj.Len())
		for _, f := range obj.Fields() {
			out[f.Key] = ToGo(f.Value)
		}
		return out
	case value.KindString:
		return value.Get[string](v)
	default:
		return nil
	}
}
