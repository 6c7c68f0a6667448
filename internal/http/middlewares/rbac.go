package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireUser admits any authenticated identity.
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, ok := UserFromContext(c)

		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Faça login para continuar.",
			})
			return
		}

		c.Next()
	}
}

// RequireRoles admits only users whose role is in the set. The two failure
// kinds stay distinct: no session is 401, wrong role is 403.
func (m *AuthMiddleware) RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))

	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		u, ok := UserFromContext(c)

		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Faça login para continuar.",
			})
			return
		}

		if _, ok := allowed[u.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Acesso restrito à equipe da academia.",
			})
			return
		}

		c.Next()
	}
}
