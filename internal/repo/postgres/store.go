package postgres

import (
	"context"
	"errors"

	"github.com/corpoativo/gymapi/internal/repo"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the networked relational backend over a pgx pool.
type Store struct {
	pool *pgxpool.Pool

	users     *UsersRepo
	sessions  *SessionsRepo
	plans     *PlansRepo
	coaches   *CoachesRepo
	schedules *SchedulesRepo
	leads     *LeadsRepo
	students  *StudentsRepo
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:      pool,
		users:     NewUsersRepo(pool),
		sessions:  NewSessionsRepo(pool),
		plans:     NewPlansRepo(pool),
		coaches:   NewCoachesRepo(pool),
		schedules: NewSchedulesRepo(pool),
		leads:     NewLeadsRepo(pool),
		students:  NewStudentsRepo(pool),
	}
}

func (s *Store) Users() repo.UsersRepo         { return s.users }
func (s *Store) Sessions() repo.SessionsRepo   { return s.sessions }
func (s *Store) Plans() repo.PlansRepo         { return s.plans }
func (s *Store) Coaches() repo.CoachesRepo     { return s.coaches }
func (s *Store) Schedules() repo.SchedulesRepo { return s.schedules }
func (s *Store) Leads() repo.LeadsRepo         { return s.leads }
func (s *Store) Students() repo.StudentsRepo   { return s.students }

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
