package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reoring/jsonbytes"
	"github.com/reoring/jsonbytes/middleware"
)

// DecodeJSON decodes the request body into T with cfg, stores it in the
// context on success, or returns 400 with Issues when decoding fails.
func DecodeJSON[T any](cfg jsonbytes.Config, opts ...jsonbytes.Options) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, err := middleware.Decode[T](c.Request(), cfg, opts...)
			if err != nil {
				return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			}
			ctx := middleware.ContextWithDecoded(c.Request().Context(), v)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetDecoded fetches the decoded body from echo.Context.
func GetDecoded[T any](c echo.Context) (T, bool) {
	return middleware.DecodedFromContext[T](c.Request().Context())
}

// Render writes v encoded with cfg.
func Render(c echo.Context, status int, v any, cfg jsonbytes.Config) error {
	body, err := jsonbytes.EncodeToBytes(v, cfg)
	if err != nil {
		return err
	}
	return c.Blob(status, echo.MIMEApplicationJSON, body)
}
