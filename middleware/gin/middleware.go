package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reoring/jsonbytes"
	"github.com/reoring/jsonbytes/middleware"
)

// DecodeJSON decodes the request body into T with cfg (DefaultOptions when
// opts is empty), stores it in the context, and on failure answers 400 with
// the Issues payload.
func DecodeJSON[T any](cfg jsonbytes.Config, opts ...jsonbytes.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := middleware.Decode[T](c.Request, cfg, opts...)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			return
		}
		// store decoded in request context
		c.Request = c.Request.WithContext(middleware.ContextWithDecoded(c.Request.Context(), v))
		c.Next()
	}
}

// GetDecoded fetches the decoded body from gin.Context.
func GetDecoded[T any](c *gin.Context) (T, bool) {
	return middleware.DecodedFromContext[T](c.Request.Context())
}

// Render writes v encoded with cfg, so byte fields leave in the same format
// they arrived in.
func Render(c *gin.Context, status int, v any, cfg jsonbytes.Config) {
	body, err := jsonbytes.EncodeToBytes(v, cfg)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(status, "application/json", body)
}
