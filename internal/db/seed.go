package db

import (
	"context"
	"errors"
	"time"

	"github.com/corpoativo/gymapi/internal/domain/coach"
	"github.com/corpoativo/gymapi/internal/domain/plan"
	"github.com/corpoativo/gymapi/internal/domain/schedule"
	"github.com/corpoativo/gymapi/internal/domain/user"
	"github.com/corpoativo/gymapi/internal/repo"
	"github.com/corpoativo/gymapi/internal/security"
	"github.com/google/uuid"
)

// Seed ensures the single owner account exists and fills empty marketing
// tables with the default content. It runs through the repo interfaces so
// both backends share it.
func Seed(ctx context.Context, store repo.Store, ownerName, ownerEmail, ownerPassword string) error {
	if err := ensureOwner(ctx, store, ownerName, ownerEmail, ownerPassword); err != nil {
		return err
	}

	if err := seedPlans(ctx, store); err != nil {
		return err
	}

	if err := seedCoaches(ctx, store); err != nil {
		return err
	}

	return seedSchedules(ctx, store)
}

func ensureOwner(ctx context.Context, store repo.Store, name, email, password string) error {
	_, err := store.Users().GetByEmail(ctx, email)

	if err == nil {
		return nil
	}

	if !errors.Is(err, user.ErrNotFound) {
		return err
	}

	hash, err := security.HashPassword(password)

	if err != nil {
		return err
	}

	now := time.Now().UTC()

	_, err = store.Users().Create(ctx, user.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         user.RoleOwner,
		CreatedAt:    now,
		UpdatedAt:    now,
	})

	return err
}

func seedPlans(ctx context.Context, store repo.Store) error {
	existing, err := store.Plans().List(ctx)

	if err != nil || len(existing) > 0 {
		return err
	}

	defaults := []plan.CreatePlanRequest{
		{Name: "Start", Price: "R$ 89", Description: "Acesso à musculação e avaliação inicial.", Featured: false},
		{Name: "Black", Price: "R$ 149", Description: "Musculação, funcional, consultoria e acesso 24 horas.", Featured: true},
		{Name: "Elite", Price: "R$ 219", Description: "Treino personalizado, recovery e acompanhamento premium.", Featured: false},
	}

	for _, req := range defaults {
		if _, err := store.Plans().Create(ctx, plan.NewFromCreateRequest(req)); err != nil {
			return err
		}
	}

	return nil
}

func seedCoaches(ctx context.Context, store repo.Store) error {
	existing, err := store.Coaches().List(ctx)

	if err != nil || len(existing) > 0 {
		return err
	}

	defaults := []coach.CreateCoachRequest{
		{Name: "Lucas Mendes", Role: "Hipertrofia e força"},
		{Name: "Ana Ribeiro", Role: "Funcional e definição"},
		{Name: "Bruno Costa", Role: "Performance e condicionamento"},
	}

	for _, req := range defaults {
		if _, err := store.Coaches().Create(ctx, coach.NewFromCreateRequest(req)); err != nil {
			return err
		}
	}

	return nil
}

func seedSchedules(ctx context.Context, store repo.Store) error {
	existing, err := store.Schedules().List(ctx)

	if err != nil || len(existing) > 0 {
		return err
	}

	defaults := []schedule.CreateScheduleRequest{
		{Day: "Seg a Sex", Hours: "05:00 às 23:00", Details: "Musculação, cardio e funcional"},
		{Day: "Sábado", Hours: "08:00 às 18:00", Details: "Aulas especiais e treino livre"},
		{Day: "Domingo", Hours: "08:00 às 14:00", Details: "Recovery, cardio e mobilidade"},
	}

	for _, req := range defaults {
		if _, err := store.Schedules().Create(ctx, schedule.NewFromCreateRequest(req)); err != nil {
			return err
		}
	}

	return nil
}
