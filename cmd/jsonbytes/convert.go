package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/reoring/jsonbytes"
)

func convertCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("convert", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	var from string
	var paths []string
	fs.StringVar(&from, "from", "default", "bytes format of the input leaves")
	fs.StringArrayVar(&paths, "path", nil, "JSON Pointer of a byte leaf; * matches any element or member (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := common.resolve(fs, stderr)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("convert: at least one --path is required")
	}
	inFormat, err := jsonbytes.ParseBytesFormat(from)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}

	in, done, err := openInput(fs.Args(), stdin)
	if err != nil {
		return err
	}
	defer done()

	out, n, err := convert(in, paths, jsonbytes.DefaultConfig().WithBytesFormat(inFormat), s)
	if err != nil {
		return err
	}
	s.logger.Info("converted byte leaves", "leaves", n, "from", inFormat, "to", s.out.BytesFormat())
	return writeOutput(stdout, out, s)
}

// convert reads one JSON document and re-encodes the byte leaves at paths.
func convert(r io.Reader, paths []string, from jsonbytes.Config, s settings) (jsonbytes.Value, int, error) {
	var tree jsonbytes.Value
	if err := jsonbytes.DecodeFromReader(r, &tree, from, s.opts); err != nil {
		return jsonbytes.Value{}, 0, fmt.Errorf("reading document: %w", err)
	}
	return jsonbytes.Transcode(tree, paths, from, s.out, s.opts)
}
