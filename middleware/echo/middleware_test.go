package echomw_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/reoring/jsonbytes"
	echomw "github.com/reoring/jsonbytes/middleware/echo"
)

type upload struct {
	Blob []byte `json:"blob"`
}

func newServer() *echo.Echo {
	cfg := jsonbytes.DefaultConfig().WithBytesBase64URLSafe()
	e := echo.New()
	e.POST("/", func(c echo.Context) error {
		v, ok := echomw.GetDecoded[upload](c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return echomw.Render(c, http.StatusOK, v, jsonbytes.DefaultConfig())
	}, echomw.DecodeJSON[upload](cfg))
	return e
}

func TestDecodeJSON_ConvertsFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"blob":"AQID_w=="}`))
	newServer().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != `{"blob":[1,2,3,255]}` {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestDecodeJSON_TrailingData(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"blob":"AA=="} {}`))
	newServer().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), jsonbytes.CodeTrailingData) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}
