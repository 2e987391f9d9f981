package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the JSON error body returned to clients. Only Message is exposed;
// the wrapped error is kept for server-side logging.
type Err struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	err     error
}

func (e *Err) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return e.Message
}

func (e *Err) Unwrap() error {
	return e.err
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.Status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Int("status", e.Status),
			zap.Error(e.err),
		)
	}

	ctx.AbortWithStatusJSON(e.Status, e)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		Status:  http.StatusBadRequest,
		Message: err.Error(),
		err:     err,
	}
}

// ErrUnauthorized is used when no usable bearer token was presented.
func ErrUnauthorized(err error) *Err {
	return &Err{
		Status:  http.StatusUnauthorized,
		Message: "Authentication required",
		err:     err,
	}
}

// ErrForbidden is used when a presented token fails verification.
func ErrForbidden(err error) *Err {
	return &Err{
		Status:  http.StatusForbidden,
		Message: "Invalid or expired token",
		err:     err,
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		Status:  http.StatusUnauthorized,
		Message: "Invalid credentials",
		err:     err,
	}
}

func ErrNotFound(resource, key string, value any) *Err {
	return &Err{
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		err:     fmt.Errorf("%s with %s %v not found", resource, key, value),
	}
}

// ErrRequestTooLarge is used when the request body exceeds the upload cap.
func ErrRequestTooLarge(err error) *Err {
	return &Err{
		Status:  http.StatusRequestEntityTooLarge,
		Message: "Request body too large",
		err:     err,
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
		err:     err,
	}
}
