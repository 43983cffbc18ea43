package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripgenie/pkg/utils"
)

const (
	ContextUID   = "uid"
	ContextEmail = "email"
)

// JWTAuthMiddleware requires a verified bearer token and exposes the caller's uid
// and email to handlers.
func JWTAuthMiddleware(verifier utils.TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		identity, err := verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debug("token rejected",
				zap.String("trace_id", c.GetString(ContextTraceID)),
				zap.Error(err))
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUID, identity.UID)
		c.Set(ContextEmail, identity.Email)
		c.Next()
	}
}
