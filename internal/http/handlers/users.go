package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/corpoativo/gymapi/internal/config"
	"github.com/corpoativo/gymapi/internal/domain/user"
	"github.com/corpoativo/gymapi/internal/repo"
	"github.com/gin-gonic/gin"
)

type UsersHandler struct {
	users repo.UsersRepo
}

func NewUsersHandler(users repo.UsersRepo) *UsersHandler {
	return &UsersHandler{users: users}
}

// UpdateRole moves a user between staff and member. The owner role can
// neither be granted here nor taken away.
func (h *UsersHandler) UpdateRole(ctx *gin.Context) {
	var req user.UpdateRoleRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	target, err := h.users.GetByID(cctx, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "Usuário não encontrado.")
			return
		}

		RespondInternal(ctx)
		return
	}

	if target.Role == user.RoleOwner {
		RespondForbidden(ctx, "Não é possível alterar o papel do proprietário.")
		return
	}

	updated, err := h.users.UpdateRole(cctx, target.ID, req.Role)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "Usuário não encontrado.")
			return
		}

		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": updated})
}
