// Package pointer resolves RFC 6901 JSON Pointers against a value.Value.
package pointer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/jsonv/internal/errors"
	"github.com/mcncl/jsonv/internal/value"
)

// Tokens splits ptr into its unescaped reference tokens. The empty pointer
// refers to the whole document and has no tokens.
func Tokens(ptr string) ([]string, error) {
	if ptr == "" {
		return nil, nil
	}
	if !strings.HasPrefix(ptr, "/") {
		return nil, fmt.Errorf("pointer %q must start with '/': %w", ptr, errors.ErrInvalidPointer)
	}
	parts := strings.Split(ptr[1:], "/")
	for i, p := range parts {
		tok, err := unescape(p)
		if err != nil {
			return nil, fmt.Errorf("pointer %q: %w", ptr, err)
		}
		parts[i] = tok
	}
	return parts, nil
}

func unescape(tok string) (string, error) {
	if !strings.Contains(tok, "~") {
		return tok, nil
	}
	var sb strings.Builder
	for i := 0; i < len(tok); i++ {
		if tok[i] != '~' {
			sb.WriteByte(tok[i])
			continue
		}
		if i+1 == len(tok) || (tok[i+1] != '0' && tok[i+1] != '1') {
			return "", fmt.Errorf("bad escape in token %q: %w", tok, errors.ErrInvalidPointer)
		}
		if tok[i+1] == '0' {
			sb.WriteByte('~')
		} else {
			sb.WriteByte('/')
		}
		i++
	}
	return sb.String(), nil
}

// Escape returns tok escaped for use as one pointer token.
func Escape(tok string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(tok)
}

// Resolve returns the value ptr refers to inside root.
func Resolve(root value.Value, ptr string) (value.Value, error) {
	tokens, err := Tokens(ptr)
	if err != nil {
		return value.Value{}, err
	}

	cur := root
	for depth, tok := range tokens {
		switch cur.Kind() {
		case value.KindObject:
			next := cur.TryLookup(tok)
			if next == nil {
				return value.Value{}, notFound(tokens[:depth+1], "key does not exist")
			}
			cur = *next
		case value.KindArray:
			idx, ok := arrayIndex(tok)
			if !ok {
				return value.Value{}, fmt.Errorf("token %q is not an array index: %w", tok, errors.ErrInvalidPointer)
			}
			if idx >= cur.Size() {
				return value.Value{}, notFound(tokens[:depth+1], fmt.Sprintf("index out of range for array of size %d", cur.Size()))
			}
			cur = cur.At(idx)
		default:
			return value.Value{}, notFound(tokens[:depth+1], fmt.Sprintf("cannot descend into %s", cur.Kind()))
		}
	}
	return cur, nil
}

// arrayIndex parses a token as a non-negative decimal index without leading
// zeros.
func arrayIndex(tok string) (int, bool) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(tok)
	return n, err == nil
}

func notFound(tokens []string, reason string) error {
	return fmt.Errorf("%s: %s: %w", Format(tokens), reason, errors.ErrPointerNotFound)
}

// Format joins tokens into a pointer string.
func Format(tokens []string) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteByte('/')
		sb.WriteString(Escape(tok))
	}
	return sb.String()
}
