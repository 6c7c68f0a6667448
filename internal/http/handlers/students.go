package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/corpoativo/gymapi/internal/config"
	"github.com/corpoativo/gymapi/internal/domain/student"
	"github.com/corpoativo/gymapi/internal/domain/user"
	"github.com/corpoativo/gymapi/internal/repo"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StudentsHandler struct {
	students repo.StudentsRepo
	users    repo.UsersRepo
}

func NewStudentsHandler(students repo.StudentsRepo, users repo.UsersRepo) *StudentsHandler {
	return &StudentsHandler{
		students: students,
		users:    users,
	}
}

func (h *StudentsHandler) Create(ctx *gin.Context) {
	var req student.CreateStudentRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	target, err := h.users.GetByID(cctx, req.UserID)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "Usuário não encontrado.")
			return
		}

		RespondInternal(ctx)
		return
	}

	if err := student.CanEnroll(target.Role); errors.Is(err, student.ErrOwnerNotAllowed) {
		RespondForbidden(ctx, "Contas de proprietário não podem ter perfil de aluno.")
		return
	}

	now := time.Now().UTC()

	s := student.Student{
		ID:             uuid.NewString(),
		UserID:         target.ID,
		GymStatus:      req.GymStatus,
		MembershipPlan: strings.TrimSpace(req.MembershipPlan),
		Notes:          strings.TrimSpace(req.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := h.students.Create(cctx, s); err != nil {
		if errors.Is(err, student.ErrAlreadyEnrolled) {
			RespondConflict(ctx, "Este usuário já possui um perfil de aluno.")
			return
		}

		RespondInternal(ctx)
		return
	}

	h.respondCollection(ctx, cctx, http.StatusCreated)
}

func (h *StudentsHandler) Update(ctx *gin.Context) {
	var req student.UpdateStudentRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	req.MembershipPlan = strings.TrimSpace(req.MembershipPlan)
	req.Notes = strings.TrimSpace(req.Notes)

	if _, err := h.students.Update(cctx, ctx.Param("id"), req); err != nil {
		if errors.Is(err, student.ErrNotFound) {
			RespondNotFound(ctx, "Aluno não encontrado.")
			return
		}

		RespondInternal(ctx)
		return
	}

	h.respondCollection(ctx, cctx, http.StatusOK)
}

func (h *StudentsHandler) Delete(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	if err := h.students.Delete(cctx, ctx.Param("id")); err != nil {
		RespondInternal(ctx)
		return
	}

	h.respondCollection(ctx, cctx, http.StatusOK)
}

// Helper functions

func (h *StudentsHandler) respondCollection(ctx *gin.Context, cctx context.Context, status int) {
	students, err := h.students.List(cctx)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(status, gin.H{"students": students})
}
