package e2e_test

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonv/internal/bridge"
	"github.com/mcncl/jsonv/internal/transform"
	"github.com/mcncl/jsonv/internal/value"
)

// generateNestedJSON creates a deeply nested JSON structure for benchmarking
func generateNestedJSON(rng *rand.Rand, depth int, width int) map[string]any {
	if depth <= 0 {
		return map[string]any{
			"leaf_value": "data",
			"count":      rng.Intn(100),
			"ratio":      rng.Float64(),
			"enabled":    rng.Intn(2) == 1,
		}
	}

	result := make(map[string]any)
	for i := 0; i < width; i++ {
		key := fmt.Sprintf("nested_%d_%d", depth, i)
		result[key] = generateNestedJSON(rng, depth-1, width)
	}
	return result
}

// generateWideJSON creates a JSON object with many fields at the same level
func generateWideJSON(fieldCount int) map[string]any {
	result := make(map[string]any)

	for i := 0; i < fieldCount; i++ {
		// Mix different types of fields
		switch i % 5 {
		case 0:
			result[fmt.Sprintf("string_field_%d", i)] = fmt.Sprintf("value_%d\twith \"escapes\"", i)
		case 1:
			result[fmt.Sprintf("int_field_%d", i)] = i
		case 2:
			result[fmt.Sprintf("bool_field_%d", i)] = i%2 == 0
		case 3:
			result[fmt.Sprintf("float_field_%d", i)] = float64(i) + 0.5
		case 4:
			result[fmt.Sprintf("array_field_%d", i)] = []any{i, nil, "x", []any{}}
		}
	}

	return result
}

func benchmarkInputs(b *testing.B) []struct {
	name string
	data []byte
} {
	b.Helper()
	rng := rand.New(rand.NewSource(42))

	inputs := []struct {
		name string
		data any
	}{
		{"Depth3Width3", generateNestedJSON(rng, 3, 3)},
		{"Depth5Width2", generateNestedJSON(rng, 5, 2)},
		{"Depth2Width10", generateNestedJSON(rng, 2, 10)},
		{"Wide500", generateWideJSON(500)},
	}

	out := make([]struct {
		name string
		data []byte
	}, len(inputs))
	for i, in := range inputs {
		data, err := gojson.MarshalIndent(in.data, "", "  ")
		require.NoError(b, err)
		out[i].name = in.name
		out[i].data = data
	}
	return out
}

func BenchmarkDecode(b *testing.B) {
	for _, in := range benchmarkInputs(b) {
		b.Run(in.name, func(b *testing.B) {
			s := string(in.data)
			b.SetBytes(int64(len(s)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, err := value.Decode(strings.NewReader(s))
				require.NoError(b, err)
			}
		})
	}
}

func BenchmarkEncode(b *testing.B) {
	for _, in := range benchmarkInputs(b) {
		b.Run(in.name, func(b *testing.B) {
			v, err := value.DecodeString(string(in.data))
			require.NoError(b, err)
			buf := make([]byte, 0, len(in.data))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				buf = value.AppendEncoded(buf[:0], v)
			}
		})
	}
}

func BenchmarkCompare(b *testing.B) {
	for _, in := range benchmarkInputs(b) {
		b.Run(in.name, func(b *testing.B) {
			x, err := value.DecodeString(string(in.data))
			require.NoError(b, err)
			y := x.Clone()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if !x.Equal(y) {
					b.Fatal("clone compared unequal")
				}
			}
		})
	}
}

func BenchmarkTransform(b *testing.B) {
	v, err := bridge.FromGo(generateWideJSON(500))
	require.NoError(b, err)
	opts := transform.Options{KeyCase: "lower_camel", SortArrays: true}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := transform.Apply(v, opts)
		require.NoError(b, err)
	}
}
