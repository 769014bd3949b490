package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRequest(t *testing.T, cfg CORSConfig, method, origin string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CORSWithConfig(cfg))
	router.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(method, "http://api.menudash.app/test", nil)
	req.Header.Set("Origin", origin)
	if method == http.MethodOptions {
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORSWithConfig(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://admin.menudash.app"}

	t.Run("allowed origin", func(t *testing.T) {
		w := corsRequest(t, cfg, http.MethodGet, "https://admin.menudash.app")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://admin.menudash.app", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.True(t, strings.EqualFold(RequestIDHeader, w.Header().Get("Access-Control-Expose-Headers")))
	})

	t.Run("unknown origin is refused", func(t *testing.T) {
		w := corsRequest(t, cfg, http.MethodGet, "https://evil.example")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("no origins configured", func(t *testing.T) {
		w := corsRequest(t, DefaultCORSConfig(), http.MethodGet, "https://admin.menudash.app")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("wildcard never allows credentials", func(t *testing.T) {
		wildcard := DefaultCORSConfig()
		wildcard.AllowOrigins = []string{"*"}
		w := corsRequest(t, wildcard, http.MethodGet, "https://anywhere.example")

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight", func(t *testing.T) {
		w := corsRequest(t, cfg, http.MethodOptions, "https://admin.menudash.app")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
		assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("max age omitted when zero", func(t *testing.T) {
		noAge := cfg
		noAge.MaxAge = 0
		w := corsRequest(t, noAge, http.MethodOptions, "https://admin.menudash.app")

		assert.Empty(t, w.Header().Get("Access-Control-Max-Age"))
	})
}
