package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/corpoativo/gymapi/internal/config"
	"github.com/corpoativo/gymapi/internal/domain/coach"
	"github.com/corpoativo/gymapi/internal/domain/lead"
	"github.com/corpoativo/gymapi/internal/domain/plan"
	"github.com/corpoativo/gymapi/internal/domain/schedule"
	"github.com/corpoativo/gymapi/internal/domain/student"
	"github.com/corpoativo/gymapi/internal/domain/user"
	"github.com/corpoativo/gymapi/internal/http/middlewares"
	"github.com/corpoativo/gymapi/internal/observability"
	"github.com/corpoativo/gymapi/internal/repo"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	store repo.Store
	prom  *observability.Prom
}

func NewDashboardHandler(store repo.Store, prom *observability.Prom) *DashboardHandler {
	return &DashboardHandler{
		store: store,
		prom:  prom,
	}
}

// Get assembles the whole admin working set in one response. The frontend
// hydrates its state from this single payload.
func (h *DashboardHandler) Get(ctx *gin.Context) {
	u, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Faça login para continuar.")
		return
	}

	cctx, cancel := config.WithTimeout(5 * time.Second)

	defer cancel()

	var (
		plans     []plan.Plan
		coaches   []coach.Coach
		schedules []schedule.Schedule
		leads     []lead.Lead
		users     []user.User
		students  []student.Student
	)

	steps := []struct {
		op   string
		load func(context.Context) error
	}{
		{"plans.list", func(c context.Context) (err error) { plans, err = h.store.Plans().List(c); return }},
		{"coaches.list", func(c context.Context) (err error) { coaches, err = h.store.Coaches().List(c); return }},
		{"schedules.list", func(c context.Context) (err error) { schedules, err = h.store.Schedules().List(c); return }},
		{"leads.list", func(c context.Context) (err error) { leads, err = h.store.Leads().List(c); return }},
		{"users.list", func(c context.Context) (err error) { users, err = h.store.Users().List(c); return }},
		{"students.list", func(c context.Context) (err error) { students, err = h.store.Students().List(c); return }},
	}

	for _, step := range steps {
		err := h.prom.ObserveStore(step.op, func() error {
			return step.load(cctx)
		})

		if err != nil {
			RespondInternal(ctx)
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":      u,
		"plans":     plans,
		"coaches":   coaches,
		"schedules": schedules,
		"leads":     leads,
		"users":     users,
		"students":  students,
		"metrics":   buildMetrics(users, students, leads, plans, coaches, schedules),
	})
}

// Helper functions

func buildMetrics(users []user.User, students []student.Student, leads []lead.Lead, plans []plan.Plan, coaches []coach.Coach, schedules []schedule.Schedule) gin.H {
	members, staff := 0, 0

	for _, u := range users {
		switch u.Role {
		case user.RoleMember:
			members++
		case user.RoleStaff:
			staff++
		}
	}

	active := 0

	for _, s := range students {
		if s.GymStatus == student.StatusAtivo {
			active++
		}
	}

	return gin.H{
		"members":        members,
		"staff":          staff,
		"students":       len(students),
		"activeStudents": active,
		"leads":          len(leads),
		"plans":          len(plans),
		"coaches":        len(coaches),
		"schedules":      len(schedules),
	}
}
