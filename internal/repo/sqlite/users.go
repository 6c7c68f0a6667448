package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/corpoativo/gymapi/internal/domain/user"
)

type UsersRepo struct {
	db *sql.DB
}

const userColumns = "id, name, email, password_hash, role, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (user.User, error) {
	var u user.User
	var createdAt, updatedAt string

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &createdAt, &updatedAt)

	if err != nil {
		return user.User{}, err
	}

	u.CreatedAt = parseTime(createdAt)
	u.UpdatedAt = parseTime(updatedAt)

	return u, nil
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, fmtTime(u.CreatedAt), fmtTime(u.UpdatedAt),
	)

	if err != nil {
		if isUniqueViolation(err, "users.email") {
			return user.User{}, user.ErrEmailTaken
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]user.User, 0)

	for rows.Next() {
		u, err := scanUser(rows)

		if err != nil {
			return nil, err
		}

		out = append(out, u)
	}

	return out, rows.Err()
}

func (r *UsersRepo) UpdateAccount(ctx context.Context, id, name, email, passwordHash string) (user.User, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET name = ?,
		     email = ?,
		     password_hash = CASE WHEN ? = '' THEN password_hash ELSE ? END,
		     updated_at = ?
		 WHERE id = ?`,
		name, email, passwordHash, passwordHash, fmtTime(nowUTC()), id,
	)

	if err != nil {
		if isUniqueViolation(err, "users.email") {
			return user.User{}, user.ErrEmailTaken
		}

		return user.User{}, err
	}

	affected, err := res.RowsAffected()

	if err != nil {
		return user.User{}, err
	}

	if affected == 0 {
		return user.User{}, user.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *UsersRepo) UpdateRole(ctx context.Context, id, role string) (user.User, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET role = ?, updated_at = ? WHERE id = ?`,
		role, fmtTime(nowUTC()), id,
	)

	if err != nil {
		return user.User{}, err
	}

	affected, err := res.RowsAffected()

	if err != nil {
		return user.User{}, err
	}

	if affected == 0 {
		return user.User{}, user.ErrNotFound
	}

	return r.GetByID(ctx, id)
}
