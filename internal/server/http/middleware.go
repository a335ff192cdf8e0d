package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authapp "remind/internal/auth/app"
	authdomain "remind/internal/auth/domain"
)

const authUserContextKey = "authUser"

func extractBearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AuthRequired enforces bearer token authentication. The resolved user is
// stored on the request context for downstream handlers.
func AuthRequired(service *authapp.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "authorization required"})
			return
		}
		claims, err := service.ParseAccessToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}
		user, err := service.GetUser(c.Request.Context(), claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "user not found"})
			return
		}
		if user.Status != authdomain.UserStatusActive {
			c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Error: "user disabled"})
			return
		}
		c.Set(authUserContextKey, user)
		c.Next()
	}
}

// RequireCapability rejects callers whose role lacks the capability. It runs
// after AuthRequired.
func RequireCapability(service *authapp.Service, capability authdomain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "authorization required"})
			return
		}
		if err := service.Authorize(user, capability); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Error: "insufficient permissions"})
			return
		}
		c.Next()
	}
}

// CurrentUser extracts the authenticated user placed by AuthRequired.
func CurrentUser(c *gin.Context) (authdomain.User, bool) {
	value, exists := c.Get(authUserContextKey)
	if !exists {
		return authdomain.User{}, false
	}
	user, ok := value.(authdomain.User)
	return user, ok
}
