package auth

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/example/debtdesk/internal/models"
)

const userKey = "auth.user"

// Resolver turns an opaque session token into a user. The session itself
// is minted by the external OAuth sign-in flow; this backend only reads it.
type Resolver interface {
	FindBySessionToken(ctx context.Context, token string) (*models.User, error)
	Save(ctx context.Context, u *models.User) error
}

// Middleware resolves the Authorization bearer token to a user and stores
// it on the gin context. Requests without a valid identity get 401.
//
// adminEmails is the explicit allowlist of addresses that hold the
// administrator role: a matching user still carrying the USER role is
// promoted on the spot, and the promotion is logged.
func Middleware(resolver Resolver, adminEmails []string) gin.HandlerFunc {
	allow := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			allow[e] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}
		user, err := resolver.FindBySessionToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		if _, listed := allow[strings.ToLower(user.Email)]; listed && !user.IsAdmin() {
			user.Role = models.RoleAdmin
			if err := resolver.Save(c.Request.Context(), user); err != nil {
				log.Printf("promote %s to administrator: %v", user.Email, err)
			} else {
				log.Printf("promoted %s to administrator via allowlist", user.Email)
			}
		}

		SetUser(c, user)
		c.Next()
	}
}

// SetUser stores the authenticated user on the gin context. Exposed so
// tests can inject an identity without a session table.
func SetUser(c *gin.Context, u *models.User) {
	c.Set(userKey, u)
}

// AdminOnly rejects non-administrator callers with 403. Must run after
// Middleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "administrator access required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Middleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
