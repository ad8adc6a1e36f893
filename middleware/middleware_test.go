package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	j "github.com/goccy/go-json"

	"github.com/reoring/jsonbytes"
	"github.com/reoring/jsonbytes/middleware"
)

type upload struct {
	Name string `json:"name"`
	Blob []byte `json:"blob"`
}

func handler(t *testing.T, got *upload) http.Handler {
	cfg := jsonbytes.DefaultConfig().WithBytesBase64()
	return middleware.DecodeJSON[upload](cfg, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, ok := middleware.DecodedFromContext[upload](r.Context())
		if !ok {
			t.Fatalf("decoded body missing from context")
		}
		*got = v
		if err := middleware.WriteJSON(w, http.StatusOK, v, jsonbytes.DefaultConfig().WithBytesHex()); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
}

func TestDecodeJSON_Success(t *testing.T) {
	var got upload
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","blob":"AQID/w=="}`))
	rec := httptest.NewRecorder()
	handler(t, &got).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if !bytes.Equal(got.Blob, []byte{1, 2, 3, 255}) {
		t.Fatalf("unexpected body: %+v", got)
	}
	if rec.Body.String() != `{"name":"a","blob":"010203ff"}` {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
}

func TestDecodeJSON_IssuesPayload(t *testing.T) {
	var got upload
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","blob":"!!"}`))
	rec := httptest.NewRecorder()
	handler(t, &got).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
	var body struct {
		Issues []middleware.IssueBody `json:"issues"`
	}
	if err := j.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(body.Issues) != 1 || body.Issues[0].Code != jsonbytes.CodeInvalidEncoding || body.Issues[0].Path != "/blob" {
		t.Fatalf("unexpected issues: %+v", body.Issues)
	}
	if body.Issues[0].Message == "" || body.Issues[0].Message == jsonbytes.CodeInvalidEncoding {
		t.Fatalf("expected a human message, got %q", body.Issues[0].Message)
	}
}

func TestDecodeJSON_DuplicateKeysRejectedByDefault(t *testing.T) {
	var got upload
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","name":"b"}`))
	rec := httptest.NewRecorder()
	handler(t, &got).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), jsonbytes.CodeDuplicateKey) {
		t.Fatalf("expected duplicate_key rejection, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestErrorPayload_PlainError(t *testing.T) {
	p := middleware.ErrorPayload(http.ErrBodyNotAllowed)
	iss, ok := p["issues"].([]middleware.IssueBody)
	if !ok || len(iss) != 1 || iss[0].Path != "/" {
		t.Fatalf("unexpected payload: %#v", p)
	}
}
