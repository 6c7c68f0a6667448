package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// RunMigrations applies the postgres schema from migrationsDir. The sqlite
// backend bootstraps its own schema on open instead.
func RunMigrations(dbURL, migrationsDir string) error {
	conn, err := sql.Open("postgres", dbURL)

	if err != nil {
		return fmt.Errorf("connect for migrations: %w", err)
	}

	defer conn.Close()

	driver, err := migratepg.WithInstance(conn, &migratepg.Config{})

	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsDir, "postgres", driver)

	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
