package postgres

import (
	"context"
	"errors"

	"github.com/corpoativo/gymapi/internal/auth"
	"github.com/corpoativo/gymapi/internal/domain/user"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionsRepo struct {
	pool *pgxpool.Pool
}

func NewSessionsRepo(pool *pgxpool.Pool) *SessionsRepo {
	return &SessionsRepo{pool: pool}
}

func (r *SessionsRepo) Create(ctx context.Context, s auth.Session) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sessions (id, token_hash, user_id, created_at)
		 VALUES ($1, $2, $3, $4)`,
		s.ID, s.TokenHash, s.UserID, s.CreatedAt,
	)

	return err
}

func (r *SessionsRepo) GetUserByTokenHash(ctx context.Context, tokenHash string) (user.User, error) {
	var u user.User

	err := r.pool.QueryRow(ctx,
		`SELECT u.id, u.name, u.email, u.password_hash, u.role, u.created_at, u.updated_at
		 FROM sessions s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.token_hash = $1`, tokenHash,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, auth.ErrNoSession
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *SessionsRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE token_hash = $1`, tokenHash)

	return err
}
