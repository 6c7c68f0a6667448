package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookieName carries the opaque session token. The cookie is the
// capability: holding the token is acting as the user.
const SessionCookieName = "corpo_ativo_session"

const tokenBytes = 32

var ErrNoSession = errors.New("no session")

type Session struct {
	ID        string
	UserID    string
	TokenHash string
	CreatedAt time.Time
}

// Manager generates session tokens and owns the cookie contract.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// NewToken returns a cryptographically random opaque token.
func (m *Manager) NewToken() (string, error) {
	buf := make([]byte, tokenBytes)

	_, err := rand.Read(buf)

	if err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}

// HashToken is the at-rest form of a token; only the digest is stored so a
// leaked sessions table does not hand out live capabilities.
func (m *Manager) HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))

	return hex.EncodeToString(sum[:])
}

// SetSessionCookie attaches the token with fixed flags: HttpOnly, Path=/,
// SameSite=Lax. No Max-Age and no Secure flag; sessions live until logout
// and TLS is terminated upstream.
func (m *Manager) SetSessionCookie(ctx *gin.Context, raw string) {
	ctx.SetSameSite(http.SameSiteLaxMode)

	ctx.SetCookie(
		SessionCookieName,
		raw,
		0,
		"/",
		"",
		false,
		true, // HttpOnly.
	)
}

func (m *Manager) ClearSessionCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)

	ctx.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		"",
		false,
		true,
	)
}

// TokenFromRequest extracts the raw session token, if any.
func (m *Manager) TokenFromRequest(ctx *gin.Context) (string, bool) {
	raw, err := ctx.Cookie(SessionCookieName)

	if err != nil || raw == "" {
		return "", false
	}

	return raw, true
}
