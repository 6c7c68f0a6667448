package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/corpoativo/gymapi/internal/config"
	"github.com/corpoativo/gymapi/internal/domain/coach"
	"github.com/corpoativo/gymapi/internal/repo"
	"github.com/gin-gonic/gin"
)

type CoachesHandler struct {
	coaches repo.CoachesRepo
}

func NewCoachesHandler(coaches repo.CoachesRepo) *CoachesHandler {
	return &CoachesHandler{coaches: coaches}
}

func (h *CoachesHandler) Create(ctx *gin.Context) {
	var req coach.CreateCoachRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	if _, err := h.coaches.Create(cctx, coach.NewFromCreateRequest(req)); err != nil {
		RespondInternal(ctx)
		return
	}

	h.respondCollection(ctx, cctx, http.StatusCreated)
}

func (h *CoachesHandler) Update(ctx *gin.Context) {
	var req coach.UpdateCoachRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	req.Name = strings.TrimSpace(req.Name)
	req.Role = strings.TrimSpace(req.Role)

	if _, err := h.coaches.Update(cctx, ctx.Param("id"), req); err != nil {
		if errors.Is(err, coach.ErrNotFound) {
			RespondNotFound(ctx, "Professor não encontrado.")
			return
		}

		RespondInternal(ctx)
		return
	}

	h.respondCollection(ctx, cctx, http.StatusOK)
}

func (h *CoachesHandler) Delete(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	if err := h.coaches.Delete(cctx, ctx.Param("id")); err != nil {
		RespondInternal(ctx)
		return
	}

	h.respondCollection(ctx, cctx, http.StatusOK)
}

// Helper functions

func (h *CoachesHandler) respondCollection(ctx *gin.Context, cctx context.Context, status int) {
	coaches, err := h.coaches.List(cctx)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(status, gin.H{"coaches": coaches})
}
