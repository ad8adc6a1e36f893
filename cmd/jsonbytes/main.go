// jsonbytes converts byte-sequence leaves of JSON documents between the
// formats the jsonbytes package supports, and turns CBOR documents (whose
// byte strings are native) into JSON with bytes in a chosen format.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/reoring/jsonbytes"
	"github.com/reoring/jsonbytes/i18n"
	drvgojson "github.com/reoring/jsonbytes/source/gojson"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %s\n", describe(err))
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		usage(stderr)
		return errors.New("missing command")
	}
	switch args[0] {
	case "convert":
		return convertCmd(args[1:], stdin, stdout, stderr)
	case "from-cbor":
		return fromCBORCmd(args[1:], stdin, stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `jsonbytes CLI

Usage:
  jsonbytes convert --from hex --to base64 --path /data [--path /items/*/blob] [file]
  jsonbytes from-cbor --to hex [--hex-prefix] [file]

Common flags:
  --config f.yaml     output bytes format and limits from a YAML or JSON(C) file
  --driver NAME       JSON token driver: encoding/json (default) or go-json
  --max-depth N       nesting limit (default 128)
  --pretty            indent output
  --log-level LEVEL   debug, info, warn or error (default warn)
  --lang LANG         language of error messages: en or ja

Formats: default (array), hex, base64, base64url.`)
}

// commonFlags are registered on every subcommand.
type commonFlags struct {
	configPath string
	driver     string
	maxDepth   int
	pretty     bool
	indent     string
	logLevel   string
	lang       string
	to         string
	hexPrefix  bool
}

func (c *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "config file (.yaml, .yml, .json, .jsonc)")
	fs.StringVar(&c.driver, "driver", "encoding/json", "JSON token driver: encoding/json or go-json")
	fs.IntVar(&c.maxDepth, "max-depth", 0, "nesting limit (0 = default)")
	fs.BoolVar(&c.pretty, "pretty", false, "indent output")
	fs.StringVar(&c.indent, "indent", "", "indent string for --pretty")
	fs.StringVar(&c.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	fs.StringVar(&c.lang, "lang", "en", "language of error messages: en or ja")
	fs.StringVar(&c.to, "to", "", "output bytes format")
	fs.BoolVar(&c.hexPrefix, "hex-prefix", false, "prefix hex output with 0x")
}

// settings is what a subcommand runs with once flags and the config file
// are merged. Flags given explicitly win over the file.
type settings struct {
	logger *slog.Logger
	out    jsonbytes.Config
	opts   jsonbytes.Options
	pretty bool
}

func (c *commonFlags) resolve(fs *pflag.FlagSet, stderr io.Writer) (settings, error) {
	var s settings

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.logLevel)); err != nil {
		return s, fmt.Errorf("--log-level: %w", err)
	}
	s.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	i18n.SetLanguage(c.lang)

	var file jsonbytes.ConfigFile
	if c.configPath != "" {
		f, err := jsonbytes.LoadConfig(c.configPath)
		if err != nil {
			return s, err
		}
		file = f
		s.logger.Debug("loaded config", "path", c.configPath, "config", file.Config().String())
	}
	s.out = file.Config()
	s.opts = file.Options()
	s.pretty = file.Pretty

	if fs.Changed("to") {
		f, err := jsonbytes.ParseBytesFormat(c.to)
		if err != nil {
			return s, fmt.Errorf("--to: %w", err)
		}
		s.out = s.out.WithBytesFormat(f)
	}
	if fs.Changed("hex-prefix") {
		if c.hexPrefix {
			s.out = s.out.EnableHexPrefix()
		} else {
			s.out = s.out.DisableHexPrefix()
		}
	}
	if fs.Changed("max-depth") {
		s.opts.MaxDepth = c.maxDepth
	}
	if fs.Changed("pretty") {
		s.pretty = c.pretty
	}
	if fs.Changed("indent") {
		s.opts.Indent = c.indent
	}

	switch c.driver {
	case "encoding/json", "":
	case "go-json", "gojson":
		s.opts.Driver = drvgojson.Driver()
	default:
		return s, fmt.Errorf("--driver: unknown driver %q", c.driver)
	}
	s.opts.IssueSink = func(it jsonbytes.Issue) {
		s.logger.Warn("input issue", "code", it.Code, "path", it.Path, "message", it.Message)
	}
	return s, nil
}

// openInput returns the file named by the only positional argument, or
// stdin when there is none.
func openInput(args []string, stdin io.Reader) (io.Reader, func(), error) {
	switch len(args) {
	case 0:
		return stdin, func() {}, nil
	case 1:
		if args[0] == "-" {
			return stdin, func() {}, nil
		}
		f, err := os.Open(args[0])
		if err != nil {
			return nil, nil, fmt.Errorf("opening input: %w", err)
		}
		return f, func() { f.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("expected at most one input file, got %d", len(args))
	}
}

// writeOutput encodes v with the output config, followed by a newline.
func writeOutput(w io.Writer, v any, s settings) error {
	var err error
	if s.pretty {
		err = jsonbytes.EncodeToWriterPretty(w, v, s.out, s.opts)
	} else {
		err = jsonbytes.EncodeToWriter(w, v, s.out, s.opts)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// describe renders err for the terminal. Issues get one localized line each.
func describe(err error) string {
	iss, ok := jsonbytes.AsIssues(err)
	if !ok {
		return err.Error()
	}
	lines := make([]string, len(iss))
	for i, it := range iss {
		lines[i] = fmt.Sprintf("%s at %s: %s", it.Code, it.Path, i18n.T(it.Code, nil))
	}
	return strings.Join(lines, "\n")
}
