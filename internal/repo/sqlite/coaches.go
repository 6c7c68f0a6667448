package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/corpoativo/gymapi/internal/domain/coach"
)

type CoachesRepo struct {
	db *sql.DB
}

func (r *CoachesRepo) List(ctx context.Context) ([]coach.Coach, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, role, created_at, updated_at
		 FROM coaches
		 ORDER BY created_at ASC, id ASC`)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]coach.Coach, 0)

	for rows.Next() {
		var c coach.Coach
		var createdAt, updatedAt string

		err = rows.Scan(&c.ID, &c.Name, &c.Role, &createdAt, &updatedAt)

		if err != nil {
			return nil, err
		}

		c.CreatedAt = parseTime(createdAt)
		c.UpdatedAt = parseTime(updatedAt)

		out = append(out, c)
	}

	return out, rows.Err()
}

func (r *CoachesRepo) Create(ctx context.Context, c coach.Coach) (coach.Coach, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO coaches (id, name, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Role, fmtTime(c.CreatedAt), fmtTime(c.UpdatedAt),
	)

	if err != nil {
		return coach.Coach{}, err
	}

	return c, nil
}

func (r *CoachesRepo) Update(ctx context.Context, id string, req coach.UpdateCoachRequest) (coach.Coach, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE coaches SET name = ?, role = ?, updated_at = ? WHERE id = ?`,
		strings.TrimSpace(req.Name), strings.TrimSpace(req.Role), fmtTime(nowUTC()), id,
	)

	if err != nil {
		return coach.Coach{}, err
	}

	affected, err := res.RowsAffected()

	if err != nil {
		return coach.Coach{}, err
	}

	if affected == 0 {
		return coach.Coach{}, coach.ErrNotFound
	}

	var c coach.Coach
	var createdAt, updatedAt string

	err = r.db.QueryRowContext(ctx,
		`SELECT id, name, role, created_at, updated_at FROM coaches WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Role, &createdAt, &updatedAt)

	if err != nil {
		return coach.Coach{}, err
	}

	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)

	return c, nil
}

func (r *CoachesRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM coaches WHERE id = ?`, id)

	return err
}
