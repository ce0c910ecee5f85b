package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// Context keys set by Authenticate.
const (
	UserKey   = "user"
	UserIDKey = "userID"
)

// Authenticate resolves the bearer token in the Authorization header and
// stores the user under UserKey and its id under UserIDKey. Requests with a
// missing, malformed, invalid or expired token are rejected with 401.
func Authenticate(resolver services.PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWithError(c, apperrors.ErrUnauthorized)
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(UserKey, user)
		c.Set(UserIDKey, user.ID)
		c.Next()
	}
}

// RequireActive rejects deactivated users. It must run after Authenticate.
func RequireActive() gin.HandlerFunc {
	return gate(services.RequireActive)
}

// RequireSuperuser rejects users without superuser rights. It must run after
// Authenticate and RequireActive.
func RequireSuperuser() gin.HandlerFunc {
	return gate(services.RequireSuperuser)
}

func gate(check func(*models.User) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortWithError(c, apperrors.ErrUnauthorized)
			return
		}
		if err := check(user); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by Authenticate.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
