package formatter

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonv/internal/bridge"
	"github.com/mcncl/jsonv/internal/models"
	"github.com/mcncl/jsonv/internal/value"
)

// Formatter renders values for output. With an empty Indent it produces the
// canonical single line encoding; otherwise every array element and object
// member goes on its own line.
type Formatter struct {
	Indent          string
	TrailingNewline bool
}

// NewFormatter creates a new Formatter instance
func NewFormatter(indent string, trailingNewline bool) *Formatter {
	return &Formatter{Indent: indent, TrailingNewline: trailingNewline}
}

// Format renders v.
func (f *Formatter) Format(v value.Value) string {
	var buf []byte
	if f.Indent == "" {
		buf = value.AppendEncoded(buf, v)
	} else {
		buf = f.appendIndented(buf, v, 0)
	}
	if f.TrailingNewline {
		buf = append(buf, '\n')
	}
	return string(buf)
}

func (f *Formatter) newline(dst []byte, depth int) []byte {
	dst = append(dst, '\n')
	for i := 0; i < depth; i++ {
		dst = append(dst, f.Indent...)
	}
	return dst
}

func (f *Formatter) appendIndented(dst []byte, v value.Value, depth int) []byte {
	switch v.Kind() {
	case value.KindArray:
		arr := *value.As[value.Array](&v)
		if len(arr) == 0 {
			return append(dst, "[]"...)
		}
		dst = append(dst, '[')
		for i, item := range arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = f.newline(dst, depth+1)
			dst = f.appendIndented(dst, item, depth+1)
		}
		dst = f.newline(dst, depth)
		return append(dst, ']')
	case value.KindObject:
		fields := value.As[value.Object](&v).Fields()
		if len(fields) == 0 {
			return append(dst, "{}"...)
		}
		dst = append(dst, '{')
		for i, field := range fields {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = f.newline(dst, depth+1)
			dst = value.AppendQuoted(dst, field.Key)
			dst = append(dst, ": "...)
			dst = f.appendIndented(dst, field.Value, depth+1)
		}
		dst = f.newline(dst, depth)
		return append(dst, '}')
	default:
		return value.AppendEncoded(dst, v)
	}
}

// FormatYAML renders v as a YAML document indented by two spaces. Mapping
// keys come out sorted, matching the JSON output.
func FormatYAML(v value.Value) (string, error) {
	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(bridge.ToGo(v)); err != nil {
		return "", fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding yaml: %w", err)
	}
	return sb.String(), nil
}

// FormatComparison renders the sign of a value.Compare result.
func FormatComparison(c int) string {
	switch {
	case c < 0:
		return "less"
	case c > 0:
		return "greater"
	default:
		return "equal"
	}
}

// FormatKeys renders the keys of an object one per line, each encoded as a
// JSON string.
func FormatKeys(v value.Value) (string, error) {
	if v.Kind() != value.KindObject {
		return "", fmt.Errorf("cannot list keys of %s", v.Kind())
	}
	var sb strings.Builder
	for _, key := range value.As[value.Object](&v).Keys() {
		sb.Write(value.AppendQuoted(nil, key))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// rootPath labels the document root in shape listings, whose pointer is
// the empty string.
const rootPath = "(root)"

// FormatShape renders a shape as an aligned table with one row per path:
// the path, the kinds seen there joined by "|", and the observations.
func FormatShape(shape models.Shape) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	for _, info := range shape.Paths {
		path := info.Path
		if path == "" {
			path = rootPath
		}

		kinds := make([]string, len(info.Kinds))
		for i, k := range info.Kinds {
			kinds[i] = k.String()
		}

		notes := []string{fmt.Sprintf("count=%d", info.Count)}
		if info.Integer {
			notes = append(notes, "integer")
		}
		if info.Optional {
			notes = append(notes, "optional")
		}
		if info.Format != models.FormatNone {
			notes = append(notes, "format="+string(info.Format))
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\n", path, strings.Join(kinds, "|"), strings.Join(notes, " "))
	}
	_ = tw.Flush()
	return sb.String()
}
