package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/corpoativo/gymapi/internal/auth"
	"github.com/corpoativo/gymapi/internal/config"
	"github.com/corpoativo/gymapi/internal/domain/user"
	"github.com/corpoativo/gymapi/internal/http/middlewares"
	"github.com/corpoativo/gymapi/internal/repo"
	"github.com/corpoativo/gymapi/internal/security"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	users    repo.UsersRepo
	sessions repo.SessionsRepo
	tokens   *auth.Manager
}

func NewAuthHandler(users repo.UsersRepo, sessions repo.SessionsRepo, tokens *auth.Manager) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
	}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	now := time.Now().UTC()

	// self-registration always lands on the least privileged role
	u, err := h.users.Create(cctx, user.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         user.RoleMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	})

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondConflict(ctx, "Este e-mail já está cadastrado.")
			return
		}

		RespondInternal(ctx)
		return
	}

	// auto-login after registration
	if err := h.startSession(ctx, u.ID); err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"user": u})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	// one generic message for both unknown email and bad password, so the
	// endpoint cannot be used to enumerate accounts
	u, err := h.users.GetByEmail(cctx, normalizeEmail(req.Email))

	if err != nil {
		RespondUnauthorized(ctx, "E-mail ou senha inválidos.")
		return
	}

	if err := security.CheckPassword(u.PasswordHash, req.Password); err != nil {
		RespondUnauthorized(ctx, "E-mail ou senha inválidos.")
		return
	}

	if err := h.startSession(ctx, u.ID); err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	raw, ok := middlewares.TokenFromContext(ctx)

	if !ok {
		raw, ok = h.tokens.TokenFromRequest(ctx)
	}

	if ok {
		cctx, cancel := config.WithTimeout(2 * time.Second)

		defer cancel()

		// idempotent for an already-deleted row, but a store failure must
		// not strand a live row while the client loses its token
		if err := h.sessions.DeleteByTokenHash(cctx, h.tokens.HashToken(raw)); err != nil {
			RespondInternal(ctx)
			return
		}
	}

	h.tokens.ClearSessionCookie(ctx)

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	u, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Faça login para continuar.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *AuthHandler) UpdateAccount(ctx *gin.Context) {
	u, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Faça login para continuar.")
		return
	}

	var req user.UpdateAccountRequest

	if !BindJSON(ctx, &req) {
		return
	}

	newHash := ""

	if req.NewPassword != "" {
		// a password change demands proof of the current one first
		if req.CurrentPassword == "" || security.CheckPassword(u.PasswordHash, req.CurrentPassword) != nil {
			RespondUnauthorized(ctx, "Senha atual incorreta.")
			return
		}

		hash, err := security.HashPassword(req.NewPassword)

		if err != nil {
			RespondInternal(ctx)
			return
		}

		newHash = hash
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	updated, err := h.users.UpdateAccount(cctx, u.ID, strings.TrimSpace(req.Name), normalizeEmail(req.Email), newHash)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondConflict(ctx, "Este e-mail já está cadastrado.")
			return
		}

		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": updated})
}

// Helper functions

func (h *AuthHandler) startSession(ctx *gin.Context, userID string) error {
	raw, err := h.tokens.NewToken()

	if err != nil {
		return err
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	err = h.sessions.Create(cctx, auth.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: h.tokens.HashToken(raw),
		CreatedAt: time.Now().UTC(),
	})

	if err != nil {
		return err
	}

	h.tokens.SetSessionCookie(ctx, raw)

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
