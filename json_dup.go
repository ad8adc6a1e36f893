package jsonbytes

import (
	"io"

	eng "github.com/reoring/jsonbytes/internal/engine"
)

// DetectDuplicateKeysBytes reports every object key that repeats within its
// object, without decoding the document into anything. maxIssues caps the
// result (negative means no cap). Malformed input fails with the driver's
// syntax error.
func DetectDuplicateKeysBytes(data []byte, maxIssues int, opts ...Options) (Issues, error) {
	o := pickOptions(opts)
	return detectDuplicateKeys(o.driver().NewBytes(data), maxIssues, o)
}

// DetectDuplicateKeysReader is DetectDuplicateKeysBytes for a stream.
func DetectDuplicateKeysReader(r io.Reader, maxIssues int, opts ...Options) (Issues, error) {
	o := pickOptions(opts)
	return detectDuplicateKeys(o.driver().NewReader(r), maxIssues, o)
}

func detectDuplicateKeys(src Source, maxIssues int, o Options) (Issues, error) {
	var iss Issues
	es := eng.WrapWithEnforcement(src, eng.EnforceOptions{
		OnDuplicate: eng.DupWarn,
		MaxDepth:    o.maxDepth(),
		MaxBytes:    o.MaxBytes,
		IssueSink: func(si eng.SimpleIssue) {
			if si.Code != CodeDuplicateKey {
				return
			}
			if maxIssues < 0 || len(iss) < maxIssues {
				iss = append(iss, toIssue(si))
			}
		},
	})
	d := eng.NewDeserializer(es)
	if err := d.DeserializeIgnored(); err != nil {
		return iss, fromEngine(err)
	}
	if err := d.End(); err != nil {
		return iss, Issues{{Path: "/", Code: CodeTrailingData, Message: "unexpected data after top-level value", Cause: err, Offset: src.Location()}}
	}
	return iss, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}
