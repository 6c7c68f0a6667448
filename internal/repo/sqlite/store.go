package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/corpoativo/gymapi/internal/repo"
	_ "modernc.org/sqlite"
)

// Store is the file-based backend. It mirrors the postgres backend behind
// the same repo interfaces and bootstraps its own schema on open.
type Store struct {
	db *sql.DB

	users     *UsersRepo
	sessions  *SessionsRepo
	plans     *PlansRepo
	coaches   *CoachesRepo
	schedules *SchedulesRepo
	leads     *LeadsRepo
	students  *StudentsRepo
}

func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, ":memory:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)

	if err != nil {
		return nil, err
	}

	// sqlite serializes writers anyway; a single pooled connection also
	// keeps :memory: databases coherent across goroutines.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:        db,
		users:     &UsersRepo{db: db},
		sessions:  &SessionsRepo{db: db},
		plans:     &PlansRepo{db: db},
		coaches:   &CoachesRepo{db: db},
		schedules: &SchedulesRepo{db: db},
		leads:     &LeadsRepo{db: db},
		students:  &StudentsRepo{db: db},
	}, nil
}

func initSchema(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE COLLATE NOCASE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'member',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		token_hash TEXT NOT NULL UNIQUE,
		user_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		price TEXT NOT NULL,
		description TEXT NOT NULL,
		featured INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS coaches (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS schedules (
		id TEXT PRIMARY KEY,
		day TEXT NOT NULL,
		hours TEXT NOT NULL,
		details TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS leads (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS students (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		gym_status TEXT NOT NULL,
		membership_plan TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}

func (s *Store) Users() repo.UsersRepo         { return s.users }
func (s *Store) Sessions() repo.SessionsRepo   { return s.sessions }
func (s *Store) Plans() repo.PlansRepo         { return s.plans }
func (s *Store) Coaches() repo.CoachesRepo     { return s.coaches }
func (s *Store) Schedules() repo.SchedulesRepo { return s.schedules }
func (s *Store) Leads() repo.LeadsRepo         { return s.leads }
func (s *Store) Students() repo.StudentsRepo   { return s.students }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Timestamps are stored as fixed-width RFC3339 text so that lexical
// ordering in SQL matches chronological ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func nowUTC() time.Time {
	return time.Now().UTC()
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)

	if err != nil {
		return time.Time{}
	}

	return t
}

func isUniqueViolation(err error, hint string) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, hint)
}
