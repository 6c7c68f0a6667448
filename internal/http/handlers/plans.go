package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/corpoativo/gymapi/internal/config"
	"github.com/corpoativo/gymapi/internal/domain/plan"
	"github.com/corpoativo/gymapi/internal/repo"
	"github.com/gin-gonic/gin"
)

type PlansHandler struct {
	plans repo.PlansRepo
}

func NewPlansHandler(plans repo.PlansRepo) *PlansHandler {
	return &PlansHandler{plans: plans}
}

func (h *PlansHandler) Create(ctx *gin.Context) {
	var req plan.CreatePlanRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	if _, err := h.plans.Create(cctx, plan.NewFromCreateRequest(req)); err != nil {
		RespondInternal(ctx)
		return
	}

	h.respondCollection(ctx, cctx, http.StatusCreated)
}

func (h *PlansHandler) Update(ctx *gin.Context) {
	var req plan.UpdatePlanRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	req.Name = strings.TrimSpace(req.Name)
	req.Price = strings.TrimSpace(req.Price)
	req.Description = strings.TrimSpace(req.Description)

	if _, err := h.plans.Update(cctx, ctx.Param("id"), req); err != nil {
		if errors.Is(err, plan.ErrNotFound) {
			RespondNotFound(ctx, "Plano não encontrado.")
			return
		}

		RespondInternal(ctx)
		return
	}

	h.respondCollection(ctx, cctx, http.StatusOK)
}

func (h *PlansHandler) Delete(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	// deleting an absent plan is not an error
	if err := h.plans.Delete(cctx, ctx.Param("id")); err != nil {
		RespondInternal(ctx)
		return
	}

	h.respondCollection(ctx, cctx, http.StatusOK)
}

// Helper functions

// respondCollection mirrors the mutation back as the fresh full list, so the
// dashboard can swap its state in one step.
func (h *PlansHandler) respondCollection(ctx *gin.Context, cctx context.Context, status int) {
	plans, err := h.plans.List(cctx)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(status, gin.H{"plans": plans})
}
