package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"civicpulse/internal/lifecycle"
)

// RequireRoles allows the request only if the authenticated role is in the
// allowed list. It must run after AuthMiddleware.
func RequireRoles(roles ...lifecycle.Role) gin.HandlerFunc {
	allowed := make(map[lifecycle.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role, _ := c.Get(ContextRole)
		r, _ := role.(lifecycle.Role)
		if _, ok := allowed[r]; !ok {
			abortWithError(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
			return
		}
		c.Next()
	}
}
