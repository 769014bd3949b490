package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig lists the browser origins allowed to call the API. "*" in
// AllowOrigins allows every origin but then never sends credentials.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig allows no origin until AllowOrigins is filled in.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", RequestIDHeader, "Accept", "Origin"},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// CORSWithConfig builds the gin-contrib/cors middleware. Requests from an
// origin that is not allowed are refused with 403; same-origin requests
// pass untouched.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	switch {
	case slices.Contains(cfg.AllowOrigins, "*"):
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	case len(cfg.AllowOrigins) == 0:
		c.AllowOriginFunc = func(string) bool { return false }
	default:
		c.AllowOrigins = slices.Clone(cfg.AllowOrigins)
	}
	return cors.New(c)
}
