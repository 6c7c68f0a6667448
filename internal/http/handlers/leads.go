package handlers

import (
	"net/http"
	"time"

	"github.com/corpoativo/gymapi/internal/config"
	"github.com/corpoativo/gymapi/internal/repo"
	"github.com/gin-gonic/gin"
)

type LeadsHandler struct {
	leads repo.LeadsRepo
}

func NewLeadsHandler(leads repo.LeadsRepo) *LeadsHandler {
	return &LeadsHandler{leads: leads}
}

func (h *LeadsHandler) Delete(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	if err := h.leads.Delete(cctx, ctx.Param("id")); err != nil {
		RespondInternal(ctx)
		return
	}

	leads, err := h.leads.List(cctx)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"leads": leads})
}
