package middleware

import (
	"net/http"
	"strings"

	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

// Authenticate resolves the caller from a bearer token. Requests without an
// Authorization header continue anonymously; a malformed header or a bad token
// is rejected with 401.
func Authenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// format: "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(c, "invalid authorization header format")
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			unauthorized(c, "invalid token")
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the caller resolved by Authenticate, or nil when anonymous.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// Authorize gates a route on the policy for checks that don't depend on
// ownership. Ownership-dependent checks happen in the services.
func Authorize(res policy.Resource, act policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch policy.Decide(policy.SubjectOf(CurrentUser(c)), res, act, false) {
		case policy.Allow:
			c.Next()
		case policy.Unauthenticated:
			unauthorized(c, service.ErrUnauthenticated.Error())
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": service.ErrPermissionDenied.Error()})
		}
	}
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// RequireAuth rejects anonymous callers before the body is read, leaving the
// finer ownership decision to the service.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			unauthorized(c, service.ErrUnauthenticated.Error())
			return
		}
		c.Next()
	}
}
