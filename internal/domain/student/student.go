package student

import (
	"errors"
	"time"

	"github.com/corpoativo/gymapi/internal/domain/user"
)

// Gym status values, as shown on the admin dashboard.
const (
	StatusAtivo        = "ativo"
	StatusInadimplente = "inadimplente"
	StatusExperimental = "experimental"
	StatusCancelado    = "cancelado"
)

// Student is the optional 1:1 enrollment extension of a non-owner user.
// Absence of a row means "no active enrollment".
type Student struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	GymStatus      string    `json:"gymStatus"`
	MembershipPlan string    `json:"membershipPlan"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

var (
	ErrNotFound        = errors.New("student not found")
	ErrAlreadyEnrolled = errors.New("user already has a student profile")
	ErrOwnerNotAllowed = errors.New("owner accounts cannot have a student profile")
)

// CanEnroll rejects roles that may never hold a student profile.
func CanEnroll(role string) error {
	if role == user.RoleOwner {
		return ErrOwnerNotAllowed
	}

	return nil
}

type CreateStudentRequest struct {
	UserID         string `json:"userId" binding:"required"`
	GymStatus      string `json:"gymStatus" binding:"required,oneof=ativo inadimplente experimental cancelado"`
	MembershipPlan string `json:"membershipPlan" binding:"required"`
	Notes          string `json:"notes"`
}

type UpdateStudentRequest struct {
	GymStatus      string `json:"gymStatus" binding:"required,oneof=ativo inadimplente experimental cancelado"`
	MembershipPlan string `json:"membershipPlan" binding:"required"`
	Notes          string `json:"notes"`
}
