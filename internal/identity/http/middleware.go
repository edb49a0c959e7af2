// Package http provides HTTP handlers for the identity token lifecycle and
// directory administration operations.
package http

import (
	"crypto/subtle"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/fs9io/identity/internal/errors"
	"github.com/fs9io/identity/internal/httputil"
)

// AdminKeyMiddleware protects the administrative endpoints with a shared key.
//
// The key is accepted either as "Authorization: Bearer <key>" (case-insensitive
// "bearer") or via the X-Admin-Key header. Comparison is constant-time.
//
// When no admin key is configured the middleware passes every request through,
// which keeps local development and test setups working without credentials.
// Production deployments are expected to set ADMIN_API_KEY.
//
// Error handling:
//   - Missing credentials → 401 Unauthorized
//   - Wrong key → 401 Unauthorized
//
// Usage:
//
//	admin := router.Group("/v1", AdminKeyMiddleware(cfg.AdminAPIKey, logger))
//	admin.POST("/namespaces", namespaceHandler.CreateHandler)
func AdminKeyMiddleware(adminKey string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// No key configured: administration is open
		if adminKey == "" {
			c.Next()
			return
		}

		presented := extractAdminKey(c)
		if presented == "" {
			logger.Debug("admin authentication failed: missing credentials")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(adminKey)) != 1 {
			logger.Debug("admin authentication failed: invalid key")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractAdminKey pulls the admin key from the Authorization header or the
// X-Admin-Key header, preferring Authorization.
func extractAdminKey(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		const bearerPrefix = "bearer "
		if len(authHeader) >= len(bearerPrefix) &&
			strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			return authHeader[len(bearerPrefix):]
		}
		return ""
	}

	return c.GetHeader("X-Admin-Key")
}
