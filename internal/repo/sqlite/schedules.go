package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/corpoativo/gymapi/internal/domain/schedule"
)

type SchedulesRepo struct {
	db *sql.DB
}

func (r *SchedulesRepo) List(ctx context.Context) ([]schedule.Schedule, error) {
	rows, err := r.db.QueryContext(ctx,
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
		var createdAt, updatedAt string

		err = rows.Scan(&s.ID, &s.Day, &s.Hours, &s.Details, &createdAt, &updatedAt)

		if err != nil {
			return nil, err
		}

		s.CreatedAt = parseTime(createdAt)
		s.UpdatedAt = parseTime(updatedAt)

		out = append(out, s)
	}

	return out, rows.Err()
}

func (r *SchedulesRepo) Create(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO schedules (id, day, hours, details, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Day, s.Hours, s.Details, fmtTime(s.CreatedAt), fmtTime(s.UpdatedAt),
	)

	if err != nil {
		return schedule.Schedule{}, err
	}

	return s, nil
}

func (r *SchedulesRepo) Update(ctx context.Context, id string, req schedule.UpdateScheduleRequest) (schedule.Schedule, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE schedules SET day = ?, hours = ?, details = ?, updated_at = ? WHERE id = ?`,
		strings.TrimSpace(req.Day), strings.TrimSpace(req.Hours), strings.TrimSpace(req.Details), fmtTime(nowUTC()), id,
	)

	if err != nil {
		return schedule.Schedule{}, err
	}

	affected, err := res.RowsAffected()

	if err != nil {
		return schedule.Schedule{}, err
	}

	if affected == 0 {
		return schedule.Schedule{}, schedule.ErrNotFound
	}

	var s schedule.Schedule
	var createdAt, updatedAt string

	err = r.db.QueryRowContext(ctx,
		`SELECT id, day, hours, details, created_at, updated_at FROM schedules WHERE id = ?`, id).
		Scan(&s.ID, &s.Day, &s.Hours, &s.Details, &createdAt, &updatedAt)

	if err != nil {
		return schedule.Schedule{}, err
	}

	s.CreatedAt = parseTime(createdAt)
	s.UpdatedAt = parseTime(updatedAt)

	return s, nil
}

func (r *SchedulesRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)

	return err
}
