package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/corpoativo/gymapi/internal/auth"
	"github.com/corpoativo/gymapi/internal/domain/user"
)

type SessionsRepo struct {
	db *sql.DB
}

func (r *SessionsRepo) Create(ctx context.Context, s auth.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, token_hash, user_id, created_at) VALUES (?, ?, ?, ?)`,
		s.ID, s.TokenHash, s.UserID, fmtTime(s.CreatedAt),
	)

	return err
}

func (r *SessionsRepo) GetUserByTokenHash(ctx context.Context, tokenHash string) (user.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT u.id, u.name, u.email, u.password_hash, u.role, u.created_at, u.updated_at
		 FROM sessions s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.token_hash = ?`, tokenHash))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, auth.ErrNoSession
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *SessionsRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token_hash = ?`, tokenHash)

	return err
}
