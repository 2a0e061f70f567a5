package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/mcncl/jsonv/internal/analyzer"
	"github.com/mcncl/jsonv/internal/config"
	"github.com/mcncl/jsonv/internal/errors"
	"github.com/mcncl/jsonv/internal/formatter"
	"github.com/mcncl/jsonv/internal/logging"
	"github.com/mcncl/jsonv/internal/models"
	"github.com/mcncl/jsonv/internal/parser"
	"github.com/mcncl/jsonv/internal/pointer"
	"github.com/mcncl/jsonv/internal/transform"
	"github.com/mcncl/jsonv/internal/value"
)

// Version information
const (
	Version = "0.1.0"
)

// CLI defines the command-line interface
type CLI struct {
	Config      string `help:"Path to a config file. Defaults to the nearest .jsonv.yml." short:"c" type:"path"`
	InputFormat string `help:"Input format: json or yaml." name:"input-format"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`

	Fmt   FmtCmd   `cmd:"" default:"withargs" help:"Decode input and print it again, canonically or indented."`
	Get   GetCmd   `cmd:"" help:"Print the value found at a JSON pointer."`
	Check CheckCmd `cmd:"" help:"Validate input and report where the first syntax error is."`
	Cmp   CmpCmd   `cmd:"" help:"Compare two documents and print less, equal or greater."`
	Keys  KeysCmd  `cmd:"" help:"List the keys of the root object."`
	Shape ShapeCmd `cmd:"" help:"Summarise the kinds of values found at each path."`
}

// Context holds the runtime context shared by all commands
type Context struct {
	Config      *config.Config
	Logger      log.Logger
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	Interactive bool
}

// errDifferent is returned by cmp --exit-code when the documents are not
// equal. It sets the exit status without printing a message.
var errDifferent = stderrors.New("documents differ")

func main() {
	err := execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err == nil {
		return
	}
	if stderrors.Is(err, errDifferent) {
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
	// Input and config problems are usually a mistyped command line
	switch errors.TypeOf(err) {
	case errors.ErrorTypeInput, errors.ErrorTypeConfig, errors.ErrorTypeUnknown:
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonv --help\n")
	}
	os.Exit(1)
}

// execute parses args and runs the selected command.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cli CLI
	app, err := kong.New(&cli,
		kong.Name("jsonv"),
		kong.Description("A tool to validate, query, compare and reformat JSON"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}

	kctx, err := app.Parse(args)
	if err != nil {
		return errors.NewInputError(fmt.Sprintf("invalid command line: %v", err), err)
	}

	// Show version and exit if requested
	if cli.Version {
		fmt.Fprintf(stdout, "jsonv version %s\n", Version)
		return nil
	}

	// With no arguments at all, fall back to interactive mode
	if len(args) == 0 {
		cli.Interactive = true
	}

	cfg, err := loadConfig(&cli)
	if err != nil {
		return err
	}

	logger := logging.New(stderr, cfg.Dev.Debug)
	level.Debug(logger).Log("msg", "starting", "command", kctx.Command(), "input_format", cfg.InputFormat)

	return kctx.Run(&Context{
		Config:      cfg,
		Logger:      logger,
		Stdin:       stdin,
		Stdout:      stdout,
		Stderr:      stderr,
		Interactive: cli.Interactive,
	})
}

// loadConfig reads the config file, if any, and applies command line
// overrides on top of it.
func loadConfig(cli *CLI) (*config.Config, error) {
	path := cli.Config
	if path == "" {
		path = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(path, config.Overrides{
		InputFormat: cli.InputFormat,
		Indent:      cli.Fmt.Indent,
		KeyCase:     cli.Fmt.Keys,
		SortArrays:  cli.Fmt.SortArrays,
		Debug:       cli.Debug,
	})
	if err != nil {
		msg := "invalid configuration"
		if path != "" {
			msg = fmt.Sprintf("failed to load configuration from '%s'", path)
		}
		return nil, errors.NewConfigError(fmt.Sprintf("%s: %v", msg, err), err)
	}
	return cfg, nil
}

// FmtCmd decodes a document and writes it back out.
type FmtCmd struct {
	Input      string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output     string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Indent     string `help:"Indent nested values with this string instead of printing one line."`
	SortArrays bool   `help:"Sort every array into canonical order." name:"sort-arrays"`
	Keys       string `help:"Rewrite object keys: snake, camel, lower_camel, kebab or screaming_snake." name:"keys"`
	Format     string `help:"Output format: json or yaml." name:"output-format" enum:"json,yaml" default:"json"`
}

// Run executes the fmt command.
func (c *FmtCmd) Run(ctx *Context) error {
	doc, err := parseInput(ctx, c.Input)
	if err != nil {
		return err
	}

	root, err := transform.Apply(doc.Root, ctx.Config.TransformOptions())
	if err != nil {
		return err
	}
	level.Debug(ctx.Logger).Log("msg", "transformed document", "sort_arrays", ctx.Config.Transform.SortArrays, "key_case", ctx.Config.Transform.KeyCase)

	if c.Format == "yaml" {
		out, err := formatter.FormatYAML(root)
		if err != nil {
			return errors.NewOutputError("failed to render YAML", err)
		}
		return writeOutput(ctx, c.Output, out)
	}
	return writeOutput(ctx, c.Output, newFormatter(ctx).Format(root))
}

// GetCmd prints the value at a pointer.
type GetCmd struct {
	Pointer string `arg:"" help:"RFC 6901 JSON pointer, for example /items/0/name. Use \"\" for the whole document."`
	Input   string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
}

// Run executes the get command.
func (c *GetCmd) Run(ctx *Context) error {
	doc, err := parseInput(ctx, c.Input)
	if err != nil {
		return err
	}

	found, err := pointer.Resolve(doc.Root, c.Pointer)
	if err != nil {
		return errors.NewQueryError(fmt.Sprintf("cannot resolve pointer %q: %v", c.Pointer, err), err)
	}
	level.Debug(ctx.Logger).Log("msg", "resolved pointer", "pointer", c.Pointer, "kind", found.Kind())

	return writeOutput(ctx, "", newFormatter(ctx).Format(found))
}

// CheckCmd validates a document.
type CheckCmd struct {
	Input string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
}

// Run executes the check command.
func (c *CheckCmd) Run(ctx *Context) error {
	doc, err := parseInput(ctx, c.Input)
	if err != nil {
		return err
	}
	return writeOutput(ctx, "", fmt.Sprintf("%s: valid %s (%d bytes)\n", doc.Source, doc.RootKind(), doc.Size))
}

// CmpCmd compares two documents.
type CmpCmd struct {
	Left     string `arg:"" help:"First document." type:"path"`
	Right    string `arg:"" help:"Second document." type:"path"`
	ExitCode bool   `help:"Exit with status 1 unless the documents are equal." name:"exit-code"`
}

// Run executes the cmp command.
func (c *CmpCmd) Run(ctx *Context) error {
	format, err := parser.ParseFormat(ctx.Config.InputFormat)
	if err != nil {
		return err
	}

	left, err := parser.ParseFileAs(c.Left, format)
	if err != nil {
		return err
	}
	right, err := parser.ParseFileAs(c.Right, format)
	if err != nil {
		return err
	}

	result := value.Compare(left.Root, right.Root)
	if err := writeOutput(ctx, "", formatter.FormatComparison(result)+"\n"); err != nil {
		return err
	}
	if c.ExitCode && result != 0 {
		return errDifferent
	}
	return nil
}

// KeysCmd lists the keys of the root object.
type KeysCmd struct {
	Input string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
}

// Run executes the keys command.
func (c *KeysCmd) Run(ctx *Context) error {
	doc, err := parseInput(ctx, c.Input)
	if err != nil {
		return err
	}

	out, err := formatter.FormatKeys(doc.Root)
	if err != nil {
		return errors.NewQueryError(fmt.Sprintf("root of %s is %s", doc.Source, doc.RootKind()), errors.ErrNotAnObject)
	}
	return writeOutput(ctx, "", out)
}

// ShapeCmd summarises the structure of one or more documents.
type ShapeCmd struct {
	Inputs []string `arg:"" optional:"" help:"Input files. If none are given, reads from stdin." type:"path"`
}

// Run executes the shape command.
func (c *ShapeCmd) Run(ctx *Context) error {
	a := analyzer.NewAnalyzer()
	if len(c.Inputs) == 0 {
		doc, err := parseInput(ctx, "")
		if err != nil {
			return err
		}
		a.Analyze(doc)
	}
	for _, path := range c.Inputs {
		doc, err := parseInput(ctx, path)
		if err != nil {
			return err
		}
		a.Analyze(doc)
	}

	shape := a.Shape()
	level.Debug(ctx.Logger).Log("msg", "analyzed documents", "documents", max(len(c.Inputs), 1), "paths", len(shape.Paths))
	return writeOutput(ctx, "", formatter.FormatShape(shape))
}

func newFormatter(ctx *Context) *formatter.Formatter {
	return formatter.NewFormatter(ctx.Config.Output.Indent, ctx.Config.Output.TrailingNewline)
}

// parseInput reads a document from file or stdin
func parseInput(ctx *Context, path string) (models.Document, error) {
	format, err := parser.ParseFormat(ctx.Config.InputFormat)
	if err != nil {
		return models.Document{}, err
	}

	var doc models.Document
	if path != "" {
		doc, err = parser.ParseFileAs(path, format)
	} else {
		doc, err = parseStdin(ctx, format)
	}
	if err != nil {
		level.Debug(ctx.Logger).Log("msg", "failed to parse input", "err", err)
		return models.Document{}, err
	}

	level.Debug(ctx.Logger).Log("msg", "parsed input", "source", doc.Source, "bytes", doc.Size, "kind", doc.RootKind())
	return doc, nil
}

func parseStdin(ctx *Context, format parser.Format) (models.Document, error) {
	if f, ok := ctx.Stdin.(*os.File); ok {
		stdinInfo, err := f.Stat()
		if err != nil {
			return models.Document{}, errors.NewInputError("failed to access stdin", err)
		}

		// Terminal is interactive (not piped)
		if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
			if ctx.Interactive {
				return readInteractiveInput(ctx, format)
			}
			return models.Document{}, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}

	data, err := io.ReadAll(ctx.Stdin)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return models.Document{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseAs(strings.NewReader(string(data)), format, "stdin")
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput(ctx *Context, format parser.Format) (models.Document, error) {
	fmt.Fprintln(ctx.Stderr, "jsonv Interactive Mode")
	fmt.Fprintln(ctx.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(ctx.Stdin)
	var input strings.Builder

	for {
		line, err := reader.ReadString('\n')
		input.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Document{}, errors.NewInputError("error reading input", err)
		}
	}

	if input.Len() == 0 {
		return models.Document{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(ctx.Stderr, "\nProcessing JSON...")
	return parser.ParseAs(strings.NewReader(input.String()), format, "stdin")
}

// writeOutput writes text to a file or stdout
func writeOutput(ctx *Context, path, text string) error {
	if path != "" {
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		level.Info(ctx.Logger).Log("msg", "output written", "path", path, "bytes", len(text))
		return nil
	}

	if _, err := io.WriteString(ctx.Stdout, text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
