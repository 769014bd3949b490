package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func serveHealth(t *testing.T, checks map[string]Pinger) (int, HealthResponse) {
	t.Helper()
	h := NewSystemHandler("1.2.3", checks)
	engine := gin.New()
	engine.GET("/health", h.Health)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestSystemHandler_Health(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })

	t.Run("all checks pass", func(t *testing.T) {
		status, resp := serveHealth(t, map[string]Pinger{"database": ok, "redis": ok})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "1.2.3", resp.Version)
		assert.Equal(t, map[string]string{"database": "ok", "redis": "ok"}, resp.Checks)
	})

	t.Run("failing check", func(t *testing.T) {
		down := pingFunc(func(context.Context) error { return errors.New("connection refused") })
		status, resp := serveHealth(t, map[string]Pinger{"database": down, "redis": ok})
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "error", resp.Checks["database"])
		assert.Equal(t, "ok", resp.Checks["redis"])
	})

	t.Run("checks get a deadline", func(t *testing.T) {
		var hasDeadline bool
		probe := pingFunc(func(ctx context.Context) error {
			_, hasDeadline = ctx.Deadline()
			return nil
		})
		status, _ := serveHealth(t, map[string]Pinger{"database": probe})
		assert.Equal(t, http.StatusOK, status)
		assert.True(t, hasDeadline)
	})

	t.Run("no checks", func(t *testing.T) {
		status, resp := serveHealth(t, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Empty(t, resp.Checks)
	})
}

func TestSystemHandler_Ping(t *testing.T) {
	h := NewSystemHandler("dev", nil)
	engine := gin.New()
	engine.GET("/system/ping", h.Ping)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/system/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool         `json:"success"`
		Data    PingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "pong", resp.Data.Message)
}
