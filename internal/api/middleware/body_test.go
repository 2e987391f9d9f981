package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupBodyTestRouter(limit int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.POST("/upload", LimitBody(limit), func(c *gin.Context) {
		b, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				c.Status(http.StatusRequestEntityTooLarge)
				return
			}
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, "%d", len(b))
	})

	return router
}

func TestLimitBody(t *testing.T) {
	tests := []struct {
		name   string
		limit  int64
		body   string
		status int
	}{
		{"under limit", 10, "12345", http.StatusOK},
		{"at limit", 5, "12345", http.StatusOK},
		{"over limit", 4, "12345", http.StatusRequestEntityTooLarge},
		{"disabled", 0, strings.Repeat("x", 100), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			setupBodyTestRouter(tt.limit).ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
