package value

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{ "a": "a", "b": 1, "c": [ 1, 2, 3 ], "d": { "a": 1, "b": 2 }, "e": null }`

func TestDecodeString_Sample(t *testing.T) {
	v, err := DecodeString(sampleDocument)
	require.NoError(t, err)

	assert.True(t, v.Lookup("a").Equal(From("a")))
	assert.True(t, v.Lookup("b").Equal(From(1)))
	assert.True(t, v.Lookup("c").At(0).Equal(From(1)))
	assert.True(t, v.Lookup("c").At(1).Equal(From(2)))
	assert.True(t, v.Lookup("c").At(2).Equal(From(3)))
	assert.True(t, v.Lookup("d").Lookup("a").Equal(From(1)))
	assert.True(t, v.Lookup("d").Lookup("b").Equal(From(2)))
	assert.True(t, v.Lookup("e").Equal(New(KindNull)))
	assert.Equal(t, 2, Get[int](v.Lookup("c").At(1)))
}

func TestDecodeString_Values(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Value
	}{
		{"null", "null", Value{}},
		{"true", " true ", From(true)},
		{"false", "\tfalse\n", From(false)},
		{"zero", "0", From(0)},
		{"negative zero", "-0", From(0)},
		{"integer", "-42", From(-42)},
		{"fraction", "3.25", From(3.25)},
		{"exponent", "1e3", From(1000)},
		{"signed exponent", "25E-2", From(0.25)},
		{"fraction and exponent", "-1.5e+2", From(-150)},
		{"max safe integer", "9007199254740993", From(uint64(9007199254740992))},
		{"empty string", `""`, From("")},
		{"escapes", `"\"\\\/\b\f\n\r\t"`, From("\"\\/\b\f\n\r\t")},
		{"unicode escape", `"caf\u00e9"`, From("café")},
		{"surrogate pair", `"\ud83d\ude00"`, From("😀")},
		{"raw utf8", `"日本"`, From("日本")},
		{"empty array", "[]", New(KindArray)},
		{"spaced empty array", "[ \n ]", New(KindArray)},
		{"empty object", "{}", New(KindObject)},
		{"nested", `[[],{"x":[null]}]`, ArrayOf(New(KindArray), ObjectOf(Pair("x", ArrayOf(Value{}))))},
		{"duplicate key keeps last", `{"k":1,"k":2}`, ObjectOf(Pair("k", From(2)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeString(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got, cmp.Comparer(Equal)); diff != "" {
				t.Errorf("DecodeString(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestDecodeString_Boundaries(t *testing.T) {
	arr, err := DecodeString("[]")
	require.NoError(t, err)
	assert.Equal(t, KindArray, arr.Kind())
	assert.Equal(t, 0, arr.Size())

	obj, err := DecodeString("{}")
	require.NoError(t, err)
	assert.Equal(t, KindObject, obj.Kind())
	assert.True(t, obj.IsEmpty())
}

func TestDecodeString_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int64
		msg    string
	}{
		{"empty", "", 0, `expected '[', '{', '"', '-', digit, or letter; found eof`},
		{"bad start", "  @", 2, `expected '[', '{', '"', '-', digit, or letter; found '@'`},
		{"unknown word", `[nil]`, 1, `expected "null", "true", or "false"; found "nil"`},
		{"trailing comma array", "[1,]", 3, `expected '[', '{', '"', '-', digit, or letter; found ']'`},
		{"trailing comma object", `{"a":1,}`, 7, `expected '"'; found '}'`},
		{"missing close bracket", "[1, 2", 5, "expected ']'; found eof"},
		{"missing close brace", `{"a":1`, 6, "expected '}'; found eof"},
		{"missing colon", `{"a" 1}`, 5, "expected ':'; found '1'"},
		{"unquoted key", `{a:1}`, 1, `expected '"'; found 'a'`},
		{"leading zero then digit", "[01]", 2, "expected ']'; found '1'"},
		{"no digits after minus", "-", 1, "expected digit; found eof"},
		{"no digits after dot", "1.", 2, "expected digit; found eof"},
		{"no digits in exponent", "1e+", 3, "expected digit; found eof"},
		{"raw newline in string", "\"a\nb\"", 2, `unescaped control character '\n' in quoted string`},
		{"raw control in string", "\"\x01\"", 1, "unescaped control character 0x01 in quoted string"},
		{"eof in string", `"abc`, 4, "eof in quoted string"},
		{"bad escape", `"\x"`, 2, "illegal escape character 'x' in quoted string"},
		{"bad hex", `"\u12g4"`, 5, "expected hex digit; found 'g'"},
		{"lone low surrogate", `"\udc00"`, 1, `unpaired surrogate \udc00 in quoted string`},
		{"lone high surrogate", `"\ud800x"`, 1, `unpaired surrogate \ud800 in quoted string`},
		{"trailing data", "1 2", 2, "expected eof; found '2'"},
		{"out of range", "1e400", 0, "number 1e400 is out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := DecodeString(tt.input)
			require.Error(t, err)
			assert.True(t, v.IsNull())

			var se *StreamError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.offset, se.Offset)
			assert.Equal(t, tt.msg, se.Msg)
		})
	}
}

func TestStreamError_Error(t *testing.T) {
	err := &StreamError{Offset: 7, Msg: "expected ':'; found '}'"}
	assert.Equal(t, "json: syntax error at offset 7: expected ':'; found '}'", err.Error())

	readErr := errors.New("disk on fire")
	wrapped := &StreamError{Offset: 3, Msg: "eof in quoted string", Err: readErr}
	assert.ErrorIs(t, wrapped, readErr)
	assert.Contains(t, wrapped.Error(), "disk on fire")
}

func TestDecode_ReaderError(t *testing.T) {
	readErr := errors.New("broken pipe")
	r := io.MultiReader(strings.NewReader(`["abc`), iotest.ErrReader(readErr))

	_, err := Decode(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)
}

func TestDecoder_Stream(t *testing.T) {
	d := NewDecoder(strings.NewReader(`{"n":1} [2]  "three"  `))

	var got []Value
	for d.More() {
		v, err := d.Decode()
		require.NoError(t, err)
		got = append(got, v)
	}
	require.Len(t, got, 3)
	assert.Equal(t, `{ "n": 1 }`, got[0].String())
	assert.Equal(t, `[ 2 ]`, got[1].String())
	assert.Equal(t, `"three"`, got[2].String())
	assert.Equal(t, int64(22), d.InputOffset())
}

func TestDecode_LeavesTrailingInput(t *testing.T) {
	r := strings.NewReader("[1] rest")
	v, err := Decode(r)
	require.NoError(t, err)
	assert.Equal(t, "[ 1 ]", v.String())

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, " rest", string(rest))
}

func TestDecode_NonScanningReader(t *testing.T) {
	r := iotest.OneByteReader(bytes.NewBufferString(sampleDocument))
	v, err := Decode(r)
	require.NoError(t, err)
	assert.Equal(t, sampleDocument, v.String())
}

func TestDecode_MaxDepth(t *testing.T) {
	deep := strings.Repeat("[", maxDepth+1) + strings.Repeat("]", maxDepth+1)
	_, err := DecodeString(deep)
	var se *StreamError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, int64(maxDepth), se.Offset)

	ok := strings.Repeat("[", maxDepth) + strings.Repeat("]", maxDepth)
	_, err = DecodeString(ok)
	assert.NoError(t, err)
}

func TestValue_UnmarshalJSON(t *testing.T) {
	var v Value
	require.NoError(t, v.UnmarshalJSON([]byte(`{"x": [true]}`)))
	assert.Equal(t, `{ "x": [ true ] }`, v.String())

	err := v.UnmarshalJSON([]byte(`{"x"`))
	assert.Error(t, err)
	assert.Equal(t, `{ "x": [ true ] }`, v.String())
}
