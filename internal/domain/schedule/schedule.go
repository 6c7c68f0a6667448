package schedule

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Schedule struct {
	ID        string    `json:"id"`
	Day       string    `json:"day"`
	Hours     string    `json:"hours"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("schedule not found")

type CreateScheduleRequest struct {
	Day     string `json:"day" binding:"required"`
	Hours   string `json:"hours" binding:"required"`
	Details string `json:"details" binding:"required"`
}

type UpdateScheduleRequest struct {
	Day     string `json:"day" binding:"required"`
	Hours   string `json:"hours" binding:"required"`
	Details string `json:"details" binding:"required"`
}

func NewFromCreateRequest(req CreateScheduleRequest) Schedule {
	now := time.Now().UTC()

	return Schedule{
		ID:        uuid.NewString(),
		Day:       strings.TrimSpace(req.Day),
		Hours:     strings.TrimSpace(req.Hours),
		Details:   strings.TrimSpace(req.Details),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
