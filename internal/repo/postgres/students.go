package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/corpoativo/gymapi/internal/domain/student"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StudentsRepo struct {
	pool *pgxpool.Pool
}

func NewStudentsRepo(pool *pgxpool.Pool) *StudentsRepo {
	return &StudentsRepo{pool: pool}
}

func (r *StudentsRepo) List(ctx context.Context) ([]student.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, gym_status, membership_plan, notes, created_at, updated_at
		 FROM students
		 ORDER BY created_at ASC, id ASC`)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]student.Student, 0)

	for rows.Next() {
		var s student.Student

		err = rows.Scan(&s.ID, &s.UserID, &s.GymStatus, &s.MembershipPlan, &s.Notes, &s.CreatedAt, &s.UpdatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, rows.Err()
}

func (r *StudentsRepo) GetByUserID(ctx context.Context, userID string) (student.Student, error) {
	var s student.Student

	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, gym_status, membership_plan, notes, created_at, updated_at
		 FROM students
		 WHERE user_id = $1`, userID,
	).Scan(&s.ID, &s.UserID, &s.GymStatus, &s.MembershipPlan, &s.Notes, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return student.Student{}, student.ErrNotFound
		}

		return student.Student{}, err
	}

	return s, nil
}

func (r *StudentsRepo) Create(ctx context.Context, s student.Student) (student.Student, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO students (id, user_id, gym_status, membership_plan, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.UserID, s.GymStatus, s.MembershipPlan, s.Notes, s.CreatedAt, s.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return student.Student{}, student.ErrAlreadyEnrolled
		}

		return student.Student{}, err
	}

	return s, nil
}

func (r *StudentsRepo) Update(ctx context.Context, id string, req student.UpdateStudentRequest) (student.Student, error) {
	var s student.Student

	err := r.pool.QueryRow(ctx,
		`UPDATE students
		 SET gym_status = $2, membership_plan = $3, notes = $4, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, user_id, gym_status, membership_plan, notes, created_at, updated_at`,
		id, req.GymStatus, strings.TrimSpace(req.MembershipPlan), strings.TrimSpace(req.Notes),
	).Scan(&s.ID, &s.UserID, &s.GymStatus, &s.MembershipPlan, &s.Notes, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return student.Student{}, student.ErrNotFound
		}

		return student.Student{}, err
	}

	return s, nil
}

func (r *StudentsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)

	return err
}
