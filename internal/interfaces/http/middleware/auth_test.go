package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/menudash/backend/internal/infrastructure/auth"
	"github.com/menudash/backend/internal/infrastructure/config"
	"github.com/menudash/backend/internal/infrastructure/logger"
	"github.com/menudash/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testSecret = "test-session-secret"

func newTestVerifier(t *testing.T) *auth.SessionVerifier {
	t.Helper()
	v, err := auth.NewSessionVerifier(config.AuthConfig{SecretKey: testSecret})
	require.NoError(t, err)
	return v
}

func signToken(t *testing.T, subject string, expiresIn time.Duration) string {
	t.Helper()
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := DefaultAuthConfig(newTestVerifier(t))
	cfg.Logger = zaptest.NewLogger(t)

	router := gin.New()
	router.Use(RequestID(), SessionAuth(cfg))
	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user":      GetUserID(c),
			"token":     auth.TokenFromContext(c.Request.Context()),
			"ctxUserID": logger.GetUserID(c.Request.Context()),
		})
	}
	router.GET("/api/v1/products", handler)
	router.GET("/health", handler)
	router.GET("/swagger/*any", handler)
	return router
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp
}

func TestSessionAuth(t *testing.T) {
	router := setupAuthRouter(t)

	t.Run("skips public paths", func(t *testing.T) {
		for _, path := range []string{"/health", "/swagger/index.html"} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.CodeUnauthorized, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.Header.Set("Authorization", "Basic abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.CodeUnauthorized, decodeError(t, w).Error.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", -time.Hour))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.CodeTokenExpired, decodeError(t, w).Error.Code)
	})

	t.Run("tampered token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", time.Hour)+"x")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.CodeTokenInvalid, decodeError(t, w).Error.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, "user-1", time.Hour)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "user-1", body["user"])
		assert.Equal(t, token, body["token"])
		assert.Equal(t, "user-1", body["ctxUserID"])
	})
}

func TestGetClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, GetClaims(c))
	assert.Empty(t, GetUserID(c))

	claims := &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-9"}}
	c.Set(ClaimsKey, claims)
	c.Set(UserIDKey, claims.UserID())

	assert.Same(t, claims, GetClaims(c))
	assert.Equal(t, "user-9", GetUserID(c))
}
