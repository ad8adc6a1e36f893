package main

import (
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/pflag"
)

// cborDecMode decodes generic CBOR into the Go shapes the encoder walks:
// string-keyed maps, and []byte for byte strings.
var cborDecMode cbor.DecMode

func init() {
	var err error
	cborDecMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("jsonbytes: CBOR decoder initialization failed: " + err.Error())
	}
}

func fromCBORCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("from-cbor", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := common.resolve(fs, stderr)
	if err != nil {
		return err
	}
	in, done, err := openInput(fs.Args(), stdin)
	if err != nil {
		return err
	}
	defer done()

	v, err := readCBOR(in)
	if err != nil {
		return err
	}
	s.logger.Debug("decoded cbor document", "config", s.out.String())
	return writeOutput(stdout, v, s)
}

// readCBOR decodes exactly one CBOR data item from r.
func readCBOR(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading cbor input: %w", err)
	}
	var v any
	rest, err := cborDecMode.UnmarshalFirst(data, &v)
	if err != nil {
		return nil, fmt.Errorf("decoding cbor: %w", err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("decoding cbor: %d bytes after the first data item", len(rest))
	}
	return v, nil
}
