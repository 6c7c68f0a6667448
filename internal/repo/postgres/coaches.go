package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/corpoativo/gymapi/internal/domain/coach"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CoachesRepo struct {
	pool *pgxpool.Pool
}

func NewCoachesRepo(pool *pgxpool.Pool) *CoachesRepo {
	return &CoachesRepo{pool: pool}
}

func (r *CoachesRepo) List(ctx context.Context) ([]coach.Coach, error) {
	rows, err := r.pool.Query(ctx,
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

		err = rows.Scan(&c.ID, &c.Name, &c.Role, &c.CreatedAt, &c.UpdatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, c)
	}

	return out, rows.Err()
}

func (r *CoachesRepo) Create(ctx context.Context, c coach.Coach) (coach.Coach, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO coaches (id, name, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Role, c.CreatedAt, c.UpdatedAt,
	)

	if err != nil {
		return coach.Coach{}, err
	}

	return c, nil
}

func (r *CoachesRepo) Update(ctx context.Context, id string, req coach.UpdateCoachRequest) (coach.Coach, error) {
	var c coach.Coach

	err := r.pool.QueryRow(ctx,
		`UPDATE coaches
		 SET name = $2, role = $3, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, name, role, created_at, updated_at`,
		id, strings.TrimSpace(req.Name), strings.TrimSpace(req.Role),
	).Scan(&c.ID, &c.Name, &c.Role, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return coach.Coach{}, coach.ErrNotFound
		}

		return coach.Coach{}, err
	}

	return c, nil
}

func (r *CoachesRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM coaches WHERE id = $1`, id)

	return err
}
