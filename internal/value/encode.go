package value

import (
	"io"
	"math"
	"strconv"
)

const hexDigits = "0123456789abcdef"

// Encode writes the canonical encoding of v to w. Only errors from w are
// reported.
func Encode(w io.Writer, v Value) error {
	_, err := w.Write(AppendEncoded(nil, v))
	return err
}

// EncodeToString returns the canonical encoding of v.
func EncodeToString(v Value) string {
	return string(AppendEncoded(nil, v))
}

// String implements fmt.Stringer with the canonical encoding.
func (v Value) String() string {
	return EncodeToString(v)
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return AppendEncoded(nil, v), nil
}

// AppendEncoded appends the canonical encoding of v to dst.
//
// Arrays render as [ a, b ] and objects as { "k": v } with fields in
// ascending key order; empty containers render as [] and {}.
func AppendEncoded(dst []byte, v Value) []byte {
	switch v.kind {
	case KindArray:
		if len(v.array) == 0 {
			return append(dst, "[]"...)
		}
		for i, item := range v.array {
			if i == 0 {
				dst = append(dst, "[ "...)
			} else {
				dst = append(dst, ", "...)
			}
			dst = AppendEncoded(dst, item)
		}
		return append(dst, " ]"...)
	case KindBoolean:
		return strconv.AppendBool(dst, bool(v.boolean))
	case KindNumber:
		return appendNumber(dst, float64(v.number))
	case KindObject:
		if len(v.object.fields) == 0 {
			return append(dst, "{}"...)
		}
		for i, f := range v.object.fields {
			if i == 0 {
				dst = append(dst, "{ "...)
			} else {
				dst = append(dst, ", "...)
			}
			dst = AppendQuoted(dst, f.Key)
			dst = append(dst, ": "...)
			dst = AppendEncoded(dst, f.Value)
		}
		return append(dst, " }"...)
	case KindString:
		return AppendQuoted(dst, string(v.str))
	default:
		return append(dst, "null"...)
	}
}

// appendNumber formats f like ECMAScript's Number.prototype.toString:
// the shortest decimal that round-trips, in exponent form only for very
// large or very small magnitudes. Non-finite values have no JSON form and
// render as null.
func appendNumber(dst []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(dst, "null"...)
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	dst = strconv.AppendFloat(dst, f, format, -1, 64)
	if format == 'e' {
		// e-09 to e-9
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst
}

// AppendQuoted appends s as a quoted JSON string. Quotes, backslashes and
// the named control characters use their short escapes; other control
// bytes and DEL use \u00xx. Bytes from 0x80 up are copied unchanged.
func AppendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			if c < 0x20 || c == 0x7f {
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
			} else {
				dst = append(dst, c)
			}
		}
	}
	return append(dst, '"')
}
