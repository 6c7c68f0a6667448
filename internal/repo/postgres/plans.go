package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/corpoativo/gymapi/internal/domain/plan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PlansRepo struct {
	pool *pgxpool.Pool
}

func NewPlansRepo(pool *pgxpool.Pool) *PlansRepo {
	return &PlansRepo{pool: pool}
}

func (r *PlansRepo) List(ctx context.Context) ([]plan.Plan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, price, description, featured, created_at, updated_at
		 FROM plans
		 ORDER BY featured DESC, created_at ASC, id ASC`)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]plan.Plan, 0)

	for rows.Next() {
		var p plan.Plan

		err = rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Featured, &p.CreatedAt, &p.UpdatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, p)
	}

	return out, rows.Err()
}

// Create runs the featured-clear and the insert inside one transaction so
// concurrent featured writes serialize at the store.
func (r *PlansRepo) Create(ctx context.Context, p plan.Plan) (plan.Plan, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})

	if err != nil {
		return plan.Plan{}, err
	}

	defer func() { _ = tx.Rollback(ctx) }()

	if p.Featured {
		if _, err := tx.Exec(ctx, `UPDATE plans SET featured = FALSE`); err != nil {
			return plan.Plan{}, err
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO plans (id, name, price, description, featured, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, p.Price, p.Description, p.Featured, p.CreatedAt, p.UpdatedAt,
	)

	if err != nil {
		return plan.Plan{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return plan.Plan{}, err
	}

	return p, nil
}

func (r *PlansRepo) Update(ctx context.Context, id string, req plan.UpdatePlanRequest) (plan.Plan, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})

	if err != nil {
		return plan.Plan{}, err
	}

	defer func() { _ = tx.Rollback(ctx) }()

	if req.Featured {
		if _, err := tx.Exec(ctx, `UPDATE plans SET featured = FALSE WHERE id <> $1`, id); err != nil {
			return plan.Plan{}, err
		}
	}

	var p plan.Plan

	err = tx.QueryRow(ctx,
		`UPDATE plans
		 SET name = $2, price = $3, description = $4, featured = $5, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, name, price, description, featured, created_at, updated_at`,
		id,
		strings.TrimSpace(req.Name),
		strings.TrimSpace(req.Price),
		strings.TrimSpace(req.Description),
		req.Featured,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Featured, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return plan.Plan{}, plan.ErrNotFound
		}

		return plan.Plan{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return plan.Plan{}, err
	}

	return p, nil
}

// Delete is idempotent; deleting an absent id is not an error.
func (r *PlansRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM plans WHERE id = $1`, id)

	return err
}
