package handlers

import (
	"net/http"
	"time"

	"github.com/corpoativo/gymapi/internal/config"
	"github.com/corpoativo/gymapi/internal/domain/lead"
	"github.com/corpoativo/gymapi/internal/repo"
	"github.com/gin-gonic/gin"
)

type PublicHandler struct {
	plans     repo.PlansRepo
	coaches   repo.CoachesRepo
	schedules repo.SchedulesRepo
	leads     repo.LeadsRepo
}

func NewPublicHandler(plans repo.PlansRepo, coaches repo.CoachesRepo, schedules repo.SchedulesRepo, leads repo.LeadsRepo) *PublicHandler {
	return &PublicHandler{
		plans:     plans,
		coaches:   coaches,
		schedules: schedules,
		leads:     leads,
	}
}

// GetPublicData serves the marketing payload consumed by the landing page.
// No session is required.
func (h *PublicHandler) GetPublicData(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	plans, err := h.plans.List(cctx)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	coaches, err := h.coaches.List(cctx)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	schedules, err := h.schedules.List(cctx)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"plans":     plans,
		"coaches":   coaches,
		"schedules": schedules,
	})
}

func (h *PublicHandler) CreateLead(ctx *gin.Context) {
	var req lead.CreateLeadRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	l, err := h.leads.Create(cctx, lead.NewFromCreateRequest(req))

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"lead": l})
}
