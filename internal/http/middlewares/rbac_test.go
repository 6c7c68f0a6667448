package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/corpoativo/gymapi/internal/auth"
	"github.com/corpoativo/gymapi/internal/domain/user"
	"github.com/corpoativo/gymapi/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fake session resolver keyed by token hash

type fakeResolver struct {
	users map[string]user.User
}

// resolver whose backing store is down

type failingResolver struct{}

func (f *failingResolver) GetUserByTokenHash(ctx context.Context, tokenHash string) (user.User, error) {
	return user.User{}, errors.New("dial tcp 127.0.0.1:5432: connection refused")
}

func (f *fakeResolver) GetUserByTokenHash(ctx context.Context, tokenHash string) (user.User, error) {
	u, ok := f.users[tokenHash]

	if !ok {
		return user.User{}, auth.ErrNoSession
	}

	return u, nil
}

func gatedRouter(resolver *fakeResolver) *gin.Engine {
	tokens := auth.NewManager()
	mw := middlewares.NewAuthMiddleware(resolver, tokens)

	r := gin.New()
	r.Use(mw.ResolveSession())

	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }

	r.GET("/me", mw.RequireUser(), ok)
	r.GET("/admin", mw.RequireRoles(user.RoleStaff, user.RoleOwner), ok)
	r.GET("/owner", mw.RequireRoles(user.RoleOwner), ok)

	return r
}

func TestRoleGates(t *testing.T) {
	tokens := auth.NewManager()

	resolver := &fakeResolver{users: map[string]user.User{
		tokens.HashToken("member-token"): {ID: "u1", Role: user.RoleMember},
		tokens.HashToken("staff-token"):  {ID: "u2", Role: user.RoleStaff},
		tokens.HashToken("owner-token"):  {ID: "u3", Role: user.RoleOwner},
	}}

	r := gatedRouter(resolver)

	tests := []struct {
		name       string
		path       string
		token      string
		wantStatus int
	}{
		{"no session on user gate", "/me", "", http.StatusUnauthorized},
		{"member passes user gate", "/me", "member-token", http.StatusOK},
		{"no session on admin gate", "/admin", "", http.StatusUnauthorized},
		{"stale token on admin gate", "/admin", "revoked-token", http.StatusUnauthorized},
		{"member blocked from admin", "/admin", "member-token", http.StatusForbidden},
		{"staff passes admin gate", "/admin", "staff-token", http.StatusOK},
		{"owner passes admin gate", "/admin", "owner-token", http.StatusOK},
		{"staff blocked from owner gate", "/owner", "staff-token", http.StatusForbidden},
		{"owner passes owner gate", "/owner", "owner-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)

			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: tt.token})
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestResolveSessionStoreFailure(t *testing.T) {
	tokens := auth.NewManager()
	mw := middlewares.NewAuthMiddleware(&failingResolver{}, tokens)

	r := gin.New()
	r.Use(mw.ResolveSession())
	r.GET("/me", mw.RequireUser(), func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	// a live session must not degrade to "please log in" when the store is down
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "some-live-token"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 (body %s)", w.Code, w.Body.String())
	}

	if !strings.Contains(w.Body.String(), "Erro interno no servidor.") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}

	// without a cookie the store is never consulted; the gate answers 401
	req = httptest.NewRequest(http.MethodGet, "/me", nil)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want 401", w.Code)
	}
}
