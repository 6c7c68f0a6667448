package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/corpoativo/gymapi/internal/domain/student"
)

type StudentsRepo struct {
	db *sql.DB
}

const studentColumns = "id, user_id, gym_status, membership_plan, notes, created_at, updated_at"

func scanStudent(row interface{ Scan(...any) error }) (student.Student, error) {
	var s student.Student
	var createdAt, updatedAt string

	err := row.Scan(&s.ID, &s.UserID, &s.GymStatus, &s.MembershipPlan, &s.Notes, &createdAt, &updatedAt)

	if err != nil {
		return student.Student{}, err
	}

	s.CreatedAt = parseTime(createdAt)
	s.UpdatedAt = parseTime(updatedAt)

	return s, nil
}

func (r *StudentsRepo) List(ctx context.Context) ([]student.Student, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+studentColumns+` FROM students ORDER BY created_at ASC, id ASC`)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]student.Student, 0)

	for rows.Next() {
		s, err := scanStudent(rows)

		if err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, rows.Err()
}

func (r *StudentsRepo) GetByUserID(ctx context.Context, userID string) (student.Student, error) {
	s, err := scanStudent(r.db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE user_id = ?`, userID))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return student.Student{}, student.ErrNotFound
		}

		return student.Student{}, err
	}

	return s, nil
}

func (r *StudentsRepo) Create(ctx context.Context, s student.Student) (student.Student, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO students (id, user_id, gym_status, membership_plan, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.GymStatus, s.MembershipPlan, s.Notes, fmtTime(s.CreatedAt), fmtTime(s.UpdatedAt),
	)

	if err != nil {
		if isUniqueViolation(err, "students.user_id") {
			return student.Student{}, student.ErrAlreadyEnrolled
		}

		return student.Student{}, err
	}

	return s, nil
}

func (r *StudentsRepo) Update(ctx context.Context, id string, req student.UpdateStudentRequest) (student.Student, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE students
		 SET gym_status = ?, membership_plan = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		req.GymStatus, strings.TrimSpace(req.MembershipPlan), strings.TrimSpace(req.Notes), fmtTime(nowUTC()), id,
	)

	if err != nil {
		return student.Student{}, err
	}

	affected, err := res.RowsAffected()

	if err != nil {
		return student.Student{}, err
	}

	if affected == 0 {
		return student.Student{}, student.ErrNotFound
	}

	s, err := scanStudent(r.db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = ?`, id))

	if err != nil {
		return student.Student{}, err
	}

	return s, nil
}

func (r *StudentsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id)

	return err
}
