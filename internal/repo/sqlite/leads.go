package sqlite

import (
	"context"
	"database/sql"

	"github.com/corpoativo/gymapi/internal/domain/lead"
)

type LeadsRepo struct {
	db *sql.DB
}

// List returns newest submissions first.
func (r *LeadsRepo) List(ctx context.Context) ([]lead.Lead, error) {
	rows, err := r.db.QueryContext(ctx,
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
		var createdAt string

		err = rows.Scan(&l.ID, &l.Name, &l.Email, &createdAt)

		if err != nil {
			return nil, err
		}

		l.CreatedAt = parseTime(createdAt)

		out = append(out, l)
	}

	return out, rows.Err()
}

func (r *LeadsRepo) Create(ctx context.Context, l lead.Lead) (lead.Lead, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO leads (id, name, email, created_at) VALUES (?, ?, ?, ?)`,
		l.ID, l.Name, l.Email, fmtTime(l.CreatedAt),
	)

	if err != nil {
		return lead.Lead{}, err
	}

	return l, nil
}

func (r *LeadsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id = ?`, id)

	return err
}
