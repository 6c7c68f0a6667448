package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/corpoativo/gymapi/internal/config"
	"github.com/corpoativo/gymapi/internal/domain/schedule"
	"github.com/corpoativo/gymapi/internal/repo"
	"github.com/gin-gonic/gin"
)

type SchedulesHandler struct {
	schedules repo.SchedulesRepo
}

func NewSchedulesHandler(schedules repo.SchedulesRepo) *SchedulesHandler {
	return &SchedulesHandler{schedules: schedules}
}

func (h *SchedulesHandler) Create(ctx *gin.Context) {
	var req schedule.CreateScheduleRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	if _, err := h.schedules.Create(cctx, schedule.NewFromCreateRequest(req)); err != nil {
		RespondInternal(ctx)
		return
	}

	h.respondCollection(ctx, cctx, http.StatusCreated)
}

func (h *SchedulesHandler) Update(ctx *gin.Context) {
	var req schedule.UpdateScheduleRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	req.Day = strings.TrimSpace(req.Day)
	req.Hours = strings.TrimSpace(req.Hours)
	req.Details = strings.TrimSpace(req.Details)

	if _, err := h.schedules.Update(cctx, ctx.Param("id"), req); err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			RespondNotFound(ctx, "Horário não encontrado.")
			return
		}

		RespondInternal(ctx)
		return
	}

	h.respondCollection(ctx, cctx, http.StatusOK)
}

func (h *SchedulesHandler) Delete(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	if err := h.schedules.Delete(cctx, ctx.Param("id")); err != nil {
		RespondInternal(ctx)
		return
	}

	h.respondCollection(ctx, cctx, http.StatusOK)
}

// Helper functions

func (h *SchedulesHandler) respondCollection(ctx *gin.Context, cctx context.Context, status int) {
	schedules, err := h.schedules.List(cctx)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(status, gin.H{"schedules": schedules})
}
