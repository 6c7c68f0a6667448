package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/corpoativo/gymapi/internal/auth"
	"github.com/corpoativo/gymapi/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type SessionResolver interface {
	GetUserByTokenHash(ctx context.Context, tokenHash string) (user.User, error)
}

type AuthMiddleware struct {
	sessions SessionResolver
	tokens   *auth.Manager
}

func NewAuthMiddleware(sessions SessionResolver, tokens *auth.Manager) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, tokens: tokens}
}

// ResolveSession looks the cookie up once per request and stashes the user
// on the context. Missing or stale tokens pass through as anonymous and the
// role gates handle them; only a failing store aborts the request.
func (m *AuthMiddleware) ResolveSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := m.tokens.TokenFromRequest(c)

		if !ok {
			c.Next()
			return
		}

		u, err := m.sessions.GetUserByTokenHash(c.Request.Context(), m.tokens.HashToken(raw))

		if err != nil {
			// unknown token or vanished user; treated as anonymous
			if errors.Is(err, auth.ErrNoSession) {
				c.Next()
				return
			}

			// a store failure must not read as "your session is gone"
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Erro interno no servidor.",
			})
			return
		}

		c.Set(CtxUser, u)
		c.Set(CtxToken, raw)

		c.Next()
	}
}

// Helpers so handlers don't need to know the magic keys.

func UserFromContext(c *gin.Context) (user.User, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return user.User{}, false
	}

	u, ok := v.(user.User)
	return u, ok
}

func TokenFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxToken)
	if !ok {
		return "", false
	}

	raw, ok := v.(string)
	return raw, ok && raw != ""
}
