package coach

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Coach struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("coach not found")

type CreateCoachRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role" binding:"required"`
}

type UpdateCoachRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role" binding:"required"`
}

func NewFromCreateRequest(req CreateCoachRequest) Coach {
	now := time.Now().UTC()

	return Coach{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Role:      strings.TrimSpace(req.Role),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
