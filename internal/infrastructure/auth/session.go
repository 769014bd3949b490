package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/menudash/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingSubject   = errors.New("missing subject in claims")
	ErrNoVerifierKey    = errors.New("no session verification key configured")
)

// Claims are the claims of a session token issued by the authentication provider
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// UserID returns the provider user ID (the token subject)
func (c *Claims) UserID() string {
	return c.Subject
}

// SessionVerifier validates provider session tokens. It never issues tokens.
type SessionVerifier struct {
	key    any
	parser *jwt.Parser
}

// NewSessionVerifier creates a verifier from the auth configuration.
// An RSA public key (RS256) takes precedence over the HMAC secret (HS256).
func NewSessionVerifier(cfg config.AuthConfig) (*SessionVerifier, error) {
	var (
		key     any
		methods []string
	)
	switch {
	case strings.TrimSpace(cfg.PublicKeyPEM) != "":
		pub, err := parseRSAPublicKey(cfg.PublicKeyPEM)
		if err != nil {
			return nil, err
		}
		key, methods = pub, []string{jwt.SigningMethodRS256.Alg()}
	case cfg.SecretKey != "":
		key, methods = []byte(cfg.SecretKey), []string{jwt.SigningMethodHS256.Alg()}
	default:
		return nil, ErrNoVerifierKey
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(methods),
		jwt.WithLeeway(cfg.ClockSkew),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &SessionVerifier{
		key:    key,
		parser: jwt.NewParser(opts...),
	}, nil
}

// Verify validates a session token and returns its claims
func (v *SessionVerifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		default:
			return nil, ErrInvalidToken
		}
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}

// ExpiresAtTime returns the token expiry, or the zero time when absent
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

func parseRSAPublicKey(pemData string) (*rsa.PublicKey, error) {
	// Env vars often carry the PEM with escaped newlines
	pemData = strings.ReplaceAll(pemData, `\n`, "\n")
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemData))
	if err != nil {
		return nil, fmt.Errorf("parse auth public key: %w", err)
	}
	return key, nil
}
