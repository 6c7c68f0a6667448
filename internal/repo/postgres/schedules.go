package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/corpoativo/gymapi/internal/domain/schedule"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SchedulesRepo struct {
	pool *pgxpool.Pool
}

func NewSchedulesRepo(pool *pgxpool.Pool) *SchedulesRepo {
	return &SchedulesRepo{pool: pool}
}

func (r *SchedulesRepo) List(ctx context.Context) ([]schedule.Schedule, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, day, hours, details, created_at, updated_at
		 FROM schedules
		 ORDER BY created_at ASC, id ASC`)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]schedule.Schedule, 0)

	for rows.Next() {
		var s schedule.Schedule

		err = rows.Scan(&s.ID, &s.Day, &s.Hours, &s.Details, &s.CreatedAt, &s.UpdatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, rows.Err()
}

func (r *SchedulesRepo) Create(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO schedules (id, day, hours, details, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Day, s.Hours, s.Details, s.CreatedAt, s.UpdatedAt,
	)

	if err != nil {
		return schedule.Schedule{}, err
	}

	return s, nil
}

func (r *SchedulesRepo) Update(ctx context.Context, id string, req schedule.UpdateScheduleRequest) (schedule.Schedule, error) {
	var s schedule.Schedule

	err := r.pool.QueryRow(ctx,
		`UPDATE schedules
		 SET day = $2, hours = $3, details = $4, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, day, hours, details, created_at, updated_at`,
		id, strings.TrimSpace(req.Day), strings.TrimSpace(req.Hours), strings.TrimSpace(req.Details),
	).Scan(&s.ID, &s.Day, &s.Hours, &s.Details, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrNotFound
		}

		return schedule.Schedule{}, err
	}

	return s, nil
}

func (r *SchedulesRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)

	return err
}
