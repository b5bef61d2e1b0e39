package middleware

import (
	"os"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the marketing site (served separately) to call
// the contact API cross-origin.
//
// Allowed origins:
// - Production: the vastorn.com domains
// - Development: localhost (disabled when GIN_MODE=release)
// - FRONTEND_URL from the environment, when set
func CORSMiddleware(frontendURL string) gin.HandlerFunc {
	isProduction := os.Getenv("GIN_MODE") == "release"

	productionOrigins := map[string]bool{
		"https://www.vastorn.com": true,
		"https://vastorn.com":     true,
	}

	devOrigins := map[string]bool{
		"http://localhost:8000": true,
		"http://127.0.0.1:8000": true,
		"http://localhost:3000": true,
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		var isAllowed bool

		if productionOrigins[origin] {
			isAllowed = true
		}
		if !isProduction && devOrigins[origin] {
			isAllowed = true
		}
		if frontendURL != "" && origin == frontendURL {
			isAllowed = true
		}

		// Empty origin (same-origin requests) - allow
		if origin == "" {
			isAllowed = true
		}

		if isAllowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE, PATCH")
			c.Header("Access-Control-Max-Age", "86400")
		}
		// If not allowed, no CORS headers are sent - the browser blocks the request

		// Vary header so caches differentiate by Origin
		c.Header("Vary", "Origin")

		if c.Request.Method == "OPTIONS" {
			if isAllowed {
				c.AbortWithStatus(204)
			} else {
				c.AbortWithStatus(403)
			}
			return
		}

		c.Next()
	}
}
