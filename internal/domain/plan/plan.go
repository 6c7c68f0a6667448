package plan

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Plan struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Description string    `json:"description"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("plan not found")

type CreatePlanRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       string `json:"price" binding:"required"`
	Description string `json:"description" binding:"required"`
	Featured    bool   `json:"featured"`
}

// a full update payload, matching the create shape
type UpdatePlanRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       string `json:"price" binding:"required"`
	Description string `json:"description" binding:"required"`
	Featured    bool   `json:"featured"`
}

func NewFromCreateRequest(req CreatePlanRequest) Plan {
	now := time.Now().UTC()

	return Plan{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Price:       strings.TrimSpace(req.Price),
		Description: strings.TrimSpace(req.Description),
		Featured:    req.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
