package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/festivals-api/internal/pkg/jwthelper"
)

const testKey = "test-signing-key"

func setupAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/protected", NewAuthenticator(testKey).VerifyJWT(), func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, "hello %s", claims.Username)
	})

	return router
}

func doRequest(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestVerifyJWT_ValidToken(t *testing.T) {
	token, err := jwthelper.GenerateToken([]byte(testKey), 1, "admin", time.Hour)
	require.NoError(t, err)

	w := doRequest(setupAuthTestRouter(), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello admin", w.Body.String())
}

func TestVerifyJWT_Unauthenticated(t *testing.T) {
	router := setupAuthTestRouter()

	for _, header := range []string{"", "Bearer", "Bearer   ", "Token abc", "Bearer not-a-jwt"} {
		w := doRequest(router, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestVerifyJWT_Forbidden(t *testing.T) {
	router := setupAuthTestRouter()

	expired, err := jwthelper.GenerateToken([]byte(testKey), 1, "admin", -time.Minute)
	require.NoError(t, err)
	foreign, err := jwthelper.GenerateToken([]byte("other-key"), 1, "admin", time.Hour)
	require.NoError(t, err)

	for name, token := range map[string]string{"expired": expired, "wrong key": foreign} {
		w := doRequest(router, "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code, name)
		assert.JSONEq(t, `{"error":"Invalid or expired token"}`, w.Body.String(), name)
	}
}
