// Package middleware decodes JSON request bodies with a jsonbytes Config at
// HTTP boundaries. The gin and echo sub-modules build on it.
package middleware

import (
	"context"
	"net/http"

	j "github.com/goccy/go-json"

	"github.com/reoring/jsonbytes"
	"github.com/reoring/jsonbytes/i18n"
)

// ctxKeyDecoded is a typed context key for storing a decoded body.
// Using a generic struct type ensures uniqueness per T.
type ctxKeyDecoded[T any] struct{}

// ContextWithDecoded attaches a decoded body to the context.
func ContextWithDecoded[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded[T]{}, v)
}

// DecodedFromContext retrieves a decoded body from context.
func DecodedFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyDecoded[T]{}).(T)
	return v, ok
}

// DefaultMaxBytes caps request bodies when the caller sets no limit.
const DefaultMaxBytes = 1 << 20

// DefaultOptions returns a recommended default for HTTP JSON boundaries:
// duplicate keys are errors and bodies are capped at DefaultMaxBytes.
func DefaultOptions() jsonbytes.Options {
	return jsonbytes.Options{
		Strictness: jsonbytes.Strictness{OnDuplicateKey: jsonbytes.Error},
		MaxBytes:   DefaultMaxBytes,
	}
}

// Decode reads one JSON document from the request body into a new T.
// Without opts, DefaultOptions applies.
func Decode[T any](r *http.Request, cfg jsonbytes.Config, opts ...jsonbytes.Options) (T, error) {
	o := DefaultOptions()
	if len(opts) > 0 {
		o = opts[len(opts)-1]
	}
	var v T
	err := jsonbytes.DecodeFromReader(r.Body, &v, cfg, o)
	return v, err
}

// IssueBody is one entry of an error response.
type IssueBody struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorPayload shapes a decode failure for JSON responses. Issues keep
// their location and get a localized message; other errors become a single
// entry at the root.
func ErrorPayload(err error) map[string]any {
	iss, ok := jsonbytes.AsIssues(err)
	if !ok {
		return map[string]any{"issues": []IssueBody{{Path: "/", Code: "invalid_body", Message: err.Error()}}}
	}
	out := make([]IssueBody, len(iss))
	for i, it := range iss {
		out[i] = IssueBody{Path: it.Path, Code: it.Code, Message: i18n.T(it.Code, map[string]string{"path": it.Path})}
	}
	return map[string]any{"issues": out}
}

// DecodeJSON is net/http middleware: it decodes the body into T, stores it
// in the request context, and answers 400 with ErrorPayload on failure.
func DecodeJSON[T any](cfg jsonbytes.Config, next http.Handler, opts ...jsonbytes.Options) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, err := Decode[T](r, cfg, opts...)
		if err != nil {
			WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithDecoded(r.Context(), v)))
	})
}

// WriteError writes ErrorPayload(err) with status 400.
func WriteError(w http.ResponseWriter, err error) {
	body, merr := j.Marshal(ErrorPayload(err))
	if merr != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write(body)
}

// WriteJSON encodes v with cfg and writes it with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any, cfg jsonbytes.Config) error {
	body, err := jsonbytes.EncodeToBytes(v, cfg)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}
