package jsonbytes

import (
	"fmt"
	"strconv"
	"strings"

	eng "github.com/reoring/jsonbytes/internal/engine"
)

// Wildcard matches every element of an array or member of an object in a
// Transcode path.
const Wildcard = "*"

// Transcode re-encodes the byte leaves of tree found at paths: each leaf is
// decoded with from and encoded again with to. Paths are JSON Pointers whose
// tokens may be Wildcard. Paths that match nothing are skipped. The input
// tree is not modified; the result and the number of converted leaves are
// returned.
func Transcode(tree Value, paths []string, from, to Config, opts ...Options) (Value, int, error) {
	total := 0
	for _, p := range paths {
		toks, err := parsePointer(p)
		if err != nil {
			return Value{}, 0, err
		}
		var n int
		tree, n, err = transcodeAt(tree, toks, "", from, to, opts)
		if err != nil {
			return Value{}, 0, err
		}
		total += n
	}
	return tree, total, nil
}

func transcodeAt(v Value, toks []string, at string, from, to Config, opts []Options) (Value, int, error) {
	if len(toks) == 0 {
		var b []byte
		if err := DecodeFromValue(v, &b, from, opts...); err != nil {
			return Value{}, 0, relocate(err, at)
		}
		out, err := EncodeToValue(b, to, opts...)
		if err != nil {
			return Value{}, 0, relocate(err, at)
		}
		return out, 1, nil
	}
	tok, rest := toks[0], toks[1:]
	total := 0
	switch v.kind {
	case KindArray:
		elems := append([]Value(nil), v.elems...)
		for i := range elems {
			if tok != Wildcard && tok != strconv.Itoa(i) {
				continue
			}
			nv, n, err := transcodeAt(elems[i], rest, eng.JoinPointer(at, strconv.Itoa(i)), from, to, opts)
			if err != nil {
				return Value{}, 0, err
			}
			elems[i] = nv
			total += n
		}
		v.elems = elems
	case KindObject:
		members := append([]Member(nil), v.members...)
		for i := range members {
			if tok != Wildcard && tok != members[i].Key {
				continue
			}
			nv, n, err := transcodeAt(members[i].Value, rest, eng.JoinPointer(at, members[i].Key), from, to, opts)
			if err != nil {
				return Value{}, 0, err
			}
			members[i].Value = nv
			total += n
		}
		v.members = members
	}
	return v, total, nil
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

func parsePointer(p string) ([]string, error) {
	if p == "" {
		return nil, nil
	}
	if !strings.HasPrefix(p, "/") {
		return nil, fmt.Errorf("path %q must start with /", p)
	}
	toks := strings.Split(p[1:], "/")
	for i, t := range toks {
		toks[i] = pointerUnescaper.Replace(t)
	}
	return toks, nil
}

// relocate prefixes issue paths with the position of the leaf they came from.
func relocate(err error, at string) error {
	iss, ok := AsIssues(err)
	if !ok {
		if at == "" {
			return err
		}
		return fmt.Errorf("%s: %w", at, err)
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		switch {
		case at == "":
		case it.Path == "/" || it.Path == "":
			it.Path = at
		default:
			it.Path = at + it.Path
		}
		out[i] = it
	}
	return out
}
