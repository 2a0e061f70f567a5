package parser

import (
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonv/internal/bridge"
	"github.com/mcncl/jsonv/internal/errors" // Custom errors package
	"github.com/mcncl/jsonv/internal/models"
	"github.com/mcncl/jsonv/internal/value"
)

// Format selects how input bytes are interpreted.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. The empty string means JSON.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.NewInputError(fmt.Sprintf("unknown input format '%s'", name), nil)
	}
}

// ParseAs reads all of reader and decodes it in the given format. source
// names the input in the returned document.
func ParseAs(reader io.Reader, format Format, source string) (models.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read input", err)
	}
	return parseBytes(data, format, source)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Document, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Document{}, errors.NewInputError("input string is empty or consists only of whitespace", errors.ErrEmptyInput)
	}
	return parseBytes([]byte(jsonString), FormatJSON, "string")
}

// ParseFileAs parses a file in the given format.
func ParseFileAs(filePath string, format Format) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return parseBytes(data, format, filePath)
}

func parseBytes(data []byte, format Format, source string) (models.Document, error) {
	if strings.TrimSpace(string(data)) == "" {
		return models.Document{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	var (
		root value.Value
		err  error
	)
	switch format {
	case FormatYAML:
		root, err = decodeYAML(data)
	default:
		root, err = decodeJSON(data)
	}
	if err != nil {
		return models.Document{}, err
	}

	return models.Document{
		Root:   root,
		Source: source,
		Size:   int64(len(data)),
	}, nil
}

func decodeJSON(data []byte) (value.Value, error) {
	root, err := value.DecodeString(string(data))
	if err != nil {
		var syntaxErr *value.StreamError
		if stderrors.As(err, &syntaxErr) {
			pos := PositionOf(data, syntaxErr.Offset)
			return value.Value{}, errors.NewParsingError(
				fmt.Sprintf("syntax error at %s (offset %d): %s", pos, syntaxErr.Offset, syntaxErr.Msg),
				err,
			)
		}
		return value.Value{}, errors.NewParsingError("failed to decode JSON", err)
	}
	return root, nil
}

func decodeYAML(data []byte) (value.Value, error) {
	var native any
	if err := yaml.Unmarshal(data, &native); err != nil {
		return value.Value{}, errors.NewParsingError("failed to decode YAML", err)
	}
	root, err := bridge.FromGo(native)
	if err != nil {
		return value.Value{}, errors.NewParsingError("YAML document has no JSON equivalent", err)
	}
	return root, nil
}

// Position is a 1-based line and column in the input.
type Position struct {
	Line   int
	Column int
}

// String returns position as "line L, column C".
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// PositionOf converts a byte offset into data to a line and column. Columns
// count bytes.
func PositionOf(data []byte, offset int64) Position {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	pos := Position{Line: 1, Column: 1}
	for _, c := range data[:offset] {
		if c == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}
