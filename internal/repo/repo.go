package repo

import (
	"context"

	"github.com/corpoativo/gymapi/internal/auth"
	"github.com/corpoativo/gymapi/internal/domain/coach"
	"github.com/corpoativo/gymapi/internal/domain/lead"
	"github.com/corpoativo/gymapi/internal/domain/plan"
	"github.com/corpoativo/gymapi/internal/domain/schedule"
	"github.com/corpoativo/gymapi/internal/domain/student"
	"github.com/corpoativo/gymapi/internal/domain/user"
)

// Repositories are defined as interfaces so the postgres and sqlite
// backends stay interchangeable; the backend is picked by configuration,
// never by branching in handlers.

type UsersRepo interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	List(ctx context.Context) ([]user.User, error)

	// UpdateAccount leaves the stored hash untouched when passwordHash is
	// empty. Role is deliberately not part of this call.
	UpdateAccount(ctx context.Context, id, name, email, passwordHash string) (user.User, error)
	UpdateRole(ctx context.Context, id, role string) (user.User, error)
}

type SessionsRepo interface {
	Create(ctx context.Context, s auth.Session) error

	// GetUserByTokenHash resolves the joined session+user row; auth.ErrNoSession
	// when the token is unknown or the user is gone.
	GetUserByTokenHash(ctx context.Context, tokenHash string) (user.User, error)

	// DeleteByTokenHash is idempotent.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
}

type PlansRepo interface {
	// List orders featured-first, then by creation order.
	List(ctx context.Context) ([]plan.Plan, error)

	// Create and Update clear every other featured flag in the same
	// transaction when the written plan is featured.
	Create(ctx context.Context, p plan.Plan) (plan.Plan, error)
	Update(ctx context.Context, id string, req plan.UpdatePlanRequest) (plan.Plan, error)
	Delete(ctx context.Context, id string) error
}

type CoachesRepo interface {
	List(ctx context.Context) ([]coach.Coach, error)
	Create(ctx context.Context, c coach.Coach) (coach.Coach, error)
	Update(ctx context.Context, id string, req coach.UpdateCoachRequest) (coach.Coach, error)
	Delete(ctx context.Context, id string) error
}

type SchedulesRepo interface {
	List(ctx context.Context) ([]schedule.Schedule, error)
	Create(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error)
	Update(ctx context.Context, id string, req schedule.UpdateScheduleRequest) (schedule.Schedule, error)
	Delete(ctx context.Context, id string) error
}

type LeadsRepo interface {
	// List orders newest first.
	List(ctx context.Context) ([]lead.Lead, error)
	Create(ctx context.Context, l lead.Lead) (lead.Lead, error)
	Delete(ctx context.Context, id string) error
}

type StudentsRepo interface {
	List(ctx context.Context) ([]student.Student, error)
	GetByUserID(ctx context.Context, userID string) (student.Student, error)
	Create(ctx context.Context, s student.Student) (student.Student, error)
	Update(ctx context.Context, id string, req student.UpdateStudentRequest) (student.Student, error)
	Delete(ctx context.Context, id string) error
}

// Store aggregates the repositories of one backend.
type Store interface {
	Users() UsersRepo
	Sessions() SessionsRepo
	Plans() PlansRepo
	Coaches() CoachesRepo
	Schedules() SchedulesRepo
	Leads() LeadsRepo
	Students() StudentsRepo

	Ping(ctx context.Context) error
	Close() error
}
