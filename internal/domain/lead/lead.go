package lead

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Lead is a contact-form submission, visible only to staff and owner.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

var ErrNotFound = errors.New("lead not found")

type CreateLeadRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

func NewFromCreateRequest(req CreateLeadRequest) Lead {
	return Lead{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		CreatedAt: time.Now().UTC(),
	}
}
