package value

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/valyala/fastjson/fastfloat"
)

// maxDepth bounds the nesting of arrays and objects.
const maxDepth = 10000

// Decoder reads JSON values from a byte source with one byte of lookahead.
type Decoder struct {
	src     io.ByteScanner
	offset  int64
	readErr error
	depth   int
}

// NewDecoder returns a decoder reading from r. If r is an io.ByteScanner it
// is used directly, so bytes after a decoded value stay unread; otherwise r
// is wrapped in a bufio.Reader.
func NewDecoder(r io.Reader) *Decoder {
	src, ok := r.(io.ByteScanner)
	if !ok {
		src = bufio.NewReader(r)
	}
	return &Decoder{src: src}
}

// Decode reads exactly one JSON value from r.
func Decode(r io.Reader) (Value, error) {
	return NewDecoder(r).Decode()
}

// DecodeString decodes s, which must hold exactly one JSON value optionally
// surrounded by whitespace.
func DecodeString(s string) (Value, error) {
	d := NewDecoder(strings.NewReader(s))
	v, err := d.Decode()
	if err != nil {
		return Value{}, err
	}
	d.skipSpace()
	if c := d.peek(); c != -1 {
		return Value{}, d.errorf("expected eof; found %s", describeChar(c))
	}
	return v, nil
}

// Decode reads the next JSON value. On failure it returns null and a
// *StreamError; the decoder must not be used afterwards.
func (d *Decoder) Decode() (Value, error) {
	d.depth = 0
	v, err := d.readValue()
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

// More reports whether anything other than whitespace remains.
func (d *Decoder) More() bool {
	d.skipSpace()
	return d.peek() != -1
}

// InputOffset returns the number of bytes consumed so far.
func (d *Decoder) InputOffset() int64 {
	return d.offset
}

// peek returns the next byte without consuming it, or -1 at the end of
// input. A read error other than io.EOF is remembered and also ends input.
func (d *Decoder) peek() int {
	if d.readErr != nil {
		return -1
	}
	c, err := d.src.ReadByte()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			d.readErr = err
		}
		return -1
	}
	if err := d.src.UnreadByte(); err != nil {
		d.readErr = err
		return -1
	}
	return int(c)
}

// advance consumes the byte returned by the last peek.
func (d *Decoder) advance() {
	if _, err := d.src.ReadByte(); err == nil {
		d.offset++
	}
}

func (d *Decoder) errorf(format string, args ...any) *StreamError {
	return d.errorAt(d.offset, format, args...)
}

func (d *Decoder) errorAt(offset int64, format string, args ...any) *StreamError {
	return &StreamError{Offset: offset, Msg: fmt.Sprintf(format, args...), Err: d.readErr}
}

func isSpace(c int) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c int) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c int) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func (d *Decoder) skipSpace() {
	for isSpace(d.peek()) {
		d.advance()
	}
}

// tryMatch skips whitespace and consumes the next byte if it is expected.
func (d *Decoder) tryMatch(expected byte) bool {
	d.skipSpace()
	if d.peek() == int(expected) {
		d.advance()
		return true
	}
	return false
}

// match is like tryMatch but fails, positioned at the unexpected byte, when
// the next byte is not expected.
func (d *Decoder) match(expected byte) error {
	if d.tryMatch(expected) {
		return nil
	}
	return d.errorf("expected %s; found %s", describeChar(int(expected)), describeChar(d.peek()))
}

func (d *Decoder) readValue() (Value, error) {
	d.skipSpace()
	c := d.peek()
	switch {
	case c == '[':
		return d.readArray()
	case c == '{':
		return d.readObject()
	case c == '"':
		s, err := d.readString()
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindString, str: String(s)}, nil
	case c == '-' || isDigit(c):
		return d.readNumber()
	case isLetter(c):
		return d.readKeyword()
	default:
		return Value{}, d.errorf(`expected '[', '{', '"', '-', digit, or letter; found %s`, describeChar(c))
	}
}

func (d *Decoder) enter() error {
	d.depth++
	if d.depth > maxDepth {
		return d.errorf("exceeded max depth of %d", maxDepth)
	}
	return nil
}

func (d *Decoder) readArray() (Value, error) {
	if err := d.enter(); err != nil {
		return Value{}, err
	}
	defer func() { d.depth-- }()

	if err := d.match('['); err != nil {
		return Value{}, err
	}
	arr := Array{}
	if !d.tryMatch(']') {
		for {
			item, err := d.readValue()
			if err != nil {
				return Value{}, err
			}
			arr = append(arr, item)
			if !d.tryMatch(',') {
				break
			}
		}
		if err := d.match(']'); err != nil {
			return Value{}, err
		}
	}
	return Value{kind: KindArray, array: arr}, nil
}

func (d *Decoder) readObject() (Value, error) {
	if err := d.enter(); err != nil {
		return Value{}, err
	}
	defer func() { d.depth-- }()

	if err := d.match('{'); err != nil {
		return Value{}, err
	}
	var obj Object
	if !d.tryMatch('}') {
		for {
			key, err := d.readString()
			if err != nil {
				return Value{}, err
			}
			if err := d.match(':'); err != nil {
				return Value{}, err
			}
			item, err := d.readValue()
			if err != nil {
				return Value{}, err
			}
			obj.Set(key, item)
			if !d.tryMatch(',') {
				break
			}
		}
		if err := d.match('}'); err != nil {
			return Value{}, err
		}
	}
	return Value{kind: KindObject, object: obj}, nil
}

// pumpDigits moves one or more digits from the input to buf.
func (d *Decoder) pumpDigits(buf []byte) ([]byte, error) {
	c := d.peek()
	if !isDigit(c) {
		return buf, d.errorf("expected digit; found %s", describeChar(c))
	}
	for isDigit(c) {
		d.advance()
		buf = append(buf, byte(c))
		c = d.peek()
	}
	return buf, nil
}

func (d *Decoder) readNumber() (Value, error) {
	d.skipSpace()
	start := d.offset
	buf := make([]byte, 0, 24)
	var err error

	c := d.peek()
	if c == '-' {
		d.advance()
		buf = append(buf, '-')
		c = d.peek()
	}
	if c == '0' {
		d.advance()
		buf = append(buf, '0')
	} else if buf, err = d.pumpDigits(buf); err != nil {
		return Value{}, err
	}
	integral := true
	if d.peek() == '.' {
		integral = false
		d.advance()
		buf = append(buf, '.')
		if buf, err = d.pumpDigits(buf); err != nil {
			return Value{}, err
		}
	}
	if c = d.peek(); c == 'e' || c == 'E' {
		integral = false
		d.advance()
		buf = append(buf, byte(c))
		if c = d.peek(); c == '+' || c == '-' {
			d.advance()
			buf = append(buf, byte(c))
		}
		if buf, err = d.pumpDigits(buf); err != nil {
			return Value{}, err
		}
	}

	if f, ok := parseSmallInteger(buf, integral); ok {
		return Value{kind: KindNumber, number: Number(f)}, nil
	}
	f, err := strconv.ParseFloat(string(buf), 64)
	if err != nil || math.IsInf(f, 0) {
		return Value{}, d.errorAt(start, "number %s is out of range", buf)
	}
	return Value{kind: KindNumber, number: Number(f)}, nil
}

// maxExactDigits is the longest integer literal that always converts to
// float64 exactly.
const maxExactDigits = 15

// parseSmallInteger converts short integer literals without going through
// the general float parser.
func parseSmallInteger(buf []byte, integral bool) (float64, bool) {
	digits := buf
	if len(digits) > 0 && digits[0] == '-' {
		digits = digits[1:]
	}
	if !integral || len(digits) > maxExactDigits {
		return 0, false
	}
	n, err := fastfloat.ParseUint64(string(digits))
	if err != nil {
		return 0, false
	}
	f := float64(n)
	if len(digits) < len(buf) {
		f = -f
	}
	return f, true
}

func (d *Decoder) readKeyword() (Value, error) {
	d.skipSpace()
	start := d.offset
	var word []byte
	for c := d.peek(); isLetter(c); c = d.peek() {
		d.advance()
		word = append(word, byte(c))
	}
	switch string(word) {
	case "null":
		return Value{}, nil
	case "true":
		return Value{kind: KindBoolean, boolean: true}, nil
	case "false":
		return Value{kind: KindBoolean, boolean: false}, nil
	}
	return Value{}, d.errorAt(start, `expected "null", "true", or "false"; found %q`, word)
}

func (d *Decoder) readString() (string, error) {
	if err := d.match('"'); err != nil {
		return "", err
	}
	var sb strings.Builder
	for {
		c := d.peek()
		switch {
		case c == '"':
			d.advance()
			return sb.String(), nil
		case c == '\\':
			d.advance()
			if err := d.readEscape(&sb); err != nil {
				return "", err
			}
		case c < 0:
			return "", d.errorf("eof in quoted string")
		case c < 0x20:
			return "", d.errorf("unescaped control character %s in quoted string", describeChar(c))
		default:
			d.advance()
			sb.WriteByte(byte(c))
		}
	}
}

// readEscape decodes the escape sequence following a backslash.
func (d *Decoder) readEscape(sb *strings.Builder) error {
	c := d.peek()
	switch c {
	case '"', '\\', '/':
		sb.WriteByte(byte(c))
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		d.advance()
		return d.readUnicode(sb)
	default:
		return d.errorf("illegal escape character %s in quoted string", describeChar(c))
	}
	d.advance()
	return nil
}

// readUnicode decodes the hex digits of a \u escape, combining a surrogate
// pair written as two consecutive escapes.
func (d *Decoder) readUnicode(sb *strings.Builder) error {
	start := d.offset - 2
	r, err := d.readHex()
	if err != nil {
		return err
	}
	if utf16.IsSurrogate(r) {
		if r >= 0xdc00 || !d.tryEscapePrefix() {
			return d.errorAt(start, "unpaired surrogate \\u%04x in quoted string", r)
		}
		lo, err := d.readHex()
		if err != nil {
			return err
		}
		r = utf16.DecodeRune(r, lo)
		if r == utf8.RuneError {
			return d.errorAt(start, "invalid surrogate pair in quoted string")
		}
	}
	sb.WriteRune(r)
	return nil
}

// tryEscapePrefix consumes `\u` if it comes next.
func (d *Decoder) tryEscapePrefix() bool {
	if d.peek() != '\\' {
		return false
	}
	d.advance()
	if d.peek() != 'u' {
		return false
	}
	d.advance()
	return true
}

func (d *Decoder) readHex() (rune, error) {
	var r rune
	for i := 0; i < 4; i++ {
		c := d.peek()
		var n int
		switch {
		case isDigit(c):
			n = c - '0'
		case c >= 'a' && c <= 'f':
			n = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			n = c - 'A' + 10
		default:
			return 0, d.errorf("expected hex digit; found %s", describeChar(c))
		}
		d.advance()
		r = r<<4 | rune(n)
	}
	return r, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeString(string(data))
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}
