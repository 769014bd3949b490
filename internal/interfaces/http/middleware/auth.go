package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/menudash/backend/internal/infrastructure/auth"
	"github.com/menudash/backend/internal/infrastructure/logger"
	"github.com/menudash/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Auth context keys
const (
	ClaimsKey     = "session_claims"
	UserIDKey     = "session_user_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// TokenVerifier validates a session token and returns its claims
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthConfig holds configuration for the session auth middleware
type AuthConfig struct {
	Verifier TokenVerifier
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// DefaultAuthConfig returns the auth configuration used by the router
func DefaultAuthConfig(verifier TokenVerifier) AuthConfig {
	return AuthConfig{
		Verifier: verifier,
		SkipPaths: []string{
			"/health",
			"/metrics",
			"/api/v1/system/ping",
		},
		SkipPathPrefixes: []string{
			"/swagger",
		},
	}
}

// SessionAuth rejects requests without a valid bearer session token. The
// token subject becomes the request's user id.
func SessionAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, cfg, nil, "Missing or malformed authorization header")
			return
		}

		claims, err := cfg.Verifier.Verify(token)
		if err != nil {
			abortUnauthorized(c, cfg, err, "Token validation failed")
			return
		}

		userID := claims.UserID()
		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, userID)

		ctx := auth.ContextWithToken(c.Request.Context(), token)
		ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, cfg AuthConfig, err error, reason string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Session authentication failed",
			zap.Error(err),
			zap.String("reason", reason),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code, message := dto.CodeUnauthorized, "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = dto.CodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid), errors.Is(err, auth.ErrMissingSubject):
		code, message = dto.CodeTokenInvalid, "Invalid token"
	}

	c.AbortWithStatusJSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// GetClaims returns the verified session claims, or nil on unauthenticated routes
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetUserID returns the authenticated user id
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
