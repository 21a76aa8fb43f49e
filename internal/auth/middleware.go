package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/notch-0314/heattech-backend/internal"
	"github.com/notch-0314/heattech-backend/internal/storage"
)

// Middleware authenticates the bearer token and stores the resolved user in
// the gin context under "user".
func Middleware(issuer *TokenIssuer, users storage.UserRepository, logger internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			userName, err := issuer.ParseAccessToken(tokenString)
			if err == nil {
				user, err := users.GetUserByName(c.Request.Context(), userName)
				if err == nil {
					c.Set("user", user)
					c.Next()
					return
				}
				logger.Warnf("token subject %q has no user record", userName)
			}
		}
		c.Header("WWW-Authenticate", "Bearer")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": internal.NewAppError(401, "Could not validate credentials")})
	}
}

// CurrentUser returns the authenticated user set by Middleware.
func CurrentUser(c *gin.Context) *internal.User {
	return c.MustGet("user").(*internal.User)
}
