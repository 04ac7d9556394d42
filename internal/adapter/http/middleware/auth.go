package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kamal845/task-management/internal/core/domain"
	"github.com/kamal845/task-management/internal/core/ports"
	"github.com/kamal845/task-management/pkg/apierrors"
)

const userCtxKey = "currentUser"

// AuthMiddleware verifies the bearer token and stores the authenticated user
// in the request context. Identity is always passed explicitly from here
// into the services; nothing reads it from global state.
func AuthMiddleware(auth ports.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if header == "" || len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
			)
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			zap.L().Debug("authentication failed", zap.Error(err))
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
			)
			return
		}

		c.Set(userCtxKey, user)
		c.Next()
	}
}

// RequireAdmin guards admin-only routes. Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(
				http.StatusForbidden,
				apierrors.CreateError(http.StatusForbidden, apierrors.MsgForbidden, GetLang(c)),
			)
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *domain.User {
	if value, exists := c.Get(userCtxKey); exists {
		if user, ok := value.(*domain.User); ok {
			return user
		}
	}
	return nil
}

// SetCurrentUser exists for handler tests that bypass AuthMiddleware.
func SetCurrentUser(c *gin.Context, user *domain.User) {
	c.Set(userCtxKey, user)
}
