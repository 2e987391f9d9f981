package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LimitBody caps the number of request body bytes a handler can read.
// Reads past the limit fail with *http.MaxBytesError. A non-positive limit
// disables the cap.
func LimitBody(limit int64) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if limit > 0 {
			ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit)
		}
		ctx.Next()
	}
}
