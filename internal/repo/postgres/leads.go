package postgres

import (
	"context"

	"github.com/corpoativo/gymapi/internal/domain/lead"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LeadsRepo struct {
	pool *pgxpool.Pool
}

func NewLeadsRepo(pool *pgxpool.Pool) *LeadsRepo {
	return &LeadsRepo{pool: pool}
}

// List returns newest submissions first.
func (r *LeadsRepo) List(ctx context.Context) ([]lead.Lead, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, created_at
		 FROM leads
		 ORDER BY created_at DESC, id DESC`)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]lead.Lead, 0)

	for rows.Next() {
		var l lead.Lead

		err = rows.Scan(&l.ID, &l.Name, &l.Email, &l.CreatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, l)
	}

	return out, rows.Err()
}

func (r *LeadsRepo) Create(ctx context.Context, l lead.Lead) (lead.Lead, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO leads (id, name, email, created_at) VALUES ($1, $2, $3, $4)`,
		l.ID, l.Name, l.Email, l.CreatedAt,
	)

	if err != nil {
		return lead.Lead{}, err
	}

	return l, nil
}

func (r *LeadsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)

	return err
}
