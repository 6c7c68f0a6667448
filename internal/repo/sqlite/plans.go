package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/corpoativo/gymapi/internal/domain/plan"
)

type PlansRepo struct {
	db *sql.DB
}

func (r *PlansRepo) List(ctx context.Context) ([]plan.Plan, error) {
	rows, err := r.db.QueryContext(ctx,
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
		var featured int
		var createdAt, updatedAt string

		err = rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &featured, &createdAt, &updatedAt)

		if err != nil {
			return nil, err
		}

		p.Featured = featured != 0
		p.CreatedAt = parseTime(createdAt)
		p.UpdatedAt = parseTime(updatedAt)

		out = append(out, p)
	}

	return out, rows.Err()
}

// Create clears every other featured flag in the same transaction, so two
// concurrent "set featured" writes cannot both survive.
func (r *PlansRepo) Create(ctx context.Context, p plan.Plan) (plan.Plan, error) {
	tx, err := r.db.BeginTx(ctx, nil)

	if err != nil {
		return plan.Plan{}, err
	}

	defer func() { _ = tx.Rollback() }()

	if p.Featured {
		if _, err := tx.ExecContext(ctx, `UPDATE plans SET featured = 0`); err != nil {
			return plan.Plan{}, err
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO plans (id, name, price, description, featured, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Price, p.Description, boolToInt(p.Featured), fmtTime(p.CreatedAt), fmtTime(p.UpdatedAt),
	)

	if err != nil {
		return plan.Plan{}, err
	}

	if err := tx.Commit(); err != nil {
		return plan.Plan{}, err
	}

	return p, nil
}

func (r *PlansRepo) Update(ctx context.Context, id string, req plan.UpdatePlanRequest) (plan.Plan, error) {
	tx, err := r.db.BeginTx(ctx, nil)

	if err != nil {
		return plan.Plan{}, err
	}

	defer func() { _ = tx.Rollback() }()

	if req.Featured {
		if _, err := tx.ExecContext(ctx, `UPDATE plans SET featured = 0 WHERE id <> ?`, id); err != nil {
			return plan.Plan{}, err
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE plans
		 SET name = ?, price = ?, description = ?, featured = ?, updated_at = ?
		 WHERE id = ?`,
		strings.TrimSpace(req.Name),
		strings.TrimSpace(req.Price),
		strings.TrimSpace(req.Description),
		boolToInt(req.Featured),
		fmtTime(nowUTC()),
		id,
	)

	if err != nil {
		return plan.Plan{}, err
	}

	affected, err := res.RowsAffected()

	if err != nil {
		return plan.Plan{}, err
	}

	if affected == 0 {
		return plan.Plan{}, plan.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return plan.Plan{}, err
	}

	return r.getByID(ctx, id)
}

// Delete is idempotent: an absent id is not an error.
func (r *PlansRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)

	return err
}

func (r *PlansRepo) getByID(ctx context.Context, id string) (plan.Plan, error) {
	var p plan.Plan
	var featured int
	var createdAt, updatedAt string

	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, price, description, featured, created_at, updated_at
		 FROM plans WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Description, &featured, &createdAt, &updatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return plan.Plan{}, plan.ErrNotFound
		}

		return plan.Plan{}, err
	}

	p.Featured = featured != 0
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)

	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
