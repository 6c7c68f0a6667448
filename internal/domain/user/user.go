package user

import (
	"errors"
	"time"
)

// Roles, least to most privileged.
const (
	RoleMember = "member"
	RoleStaff  = "staff"
	RoleOwner  = "owner"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// AssignableRole reports whether a role may be handed out through the
// role-reassignment endpoint. Owner is deliberately absent: no code path
// promotes anyone to owner.
func AssignableRole(role string) bool {
	return role == RoleStaff || role == RoleMember
}

func ValidRole(role string) bool {
	return role == RoleOwner || AssignableRole(role)
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateAccountRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	CurrentPassword string `json:"currentPassword" binding:"omitempty"`
	NewPassword     string `json:"newPassword" binding:"omitempty"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=staff member"`
}
