package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jjudge-oj/todoapi/config"
)

//go:embed migrations
var migrationsFS embed.FS

// MigrateUp applies every pending migration for the given driver.
// Running it against an up-to-date schema is a no-op.
func MigrateUp(ctx context.Context, db *sql.DB, driver string) error {
	return runMigrations(ctx, db, driver, func(m *migrate.Migrate) error {
		return m.Up()
	})
}

// MigrateDown reverts every applied migration for the given driver.
func MigrateDown(ctx context.Context, db *sql.DB, driver string) error {
	return runMigrations(ctx, db, driver, func(m *migrate.Migrate) error {
		return m.Down()
	})
}

func runMigrations(ctx context.Context, db *sql.DB, driver string, step func(*migrate.Migrate) error) error {
	if driver == "" {
		driver = config.DriverPostgres
	}

	src, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("load migrations failed: %w", err)
	}

	// migrate.Close would close the shared *sql.DB, so the database driver
	// is bound to a pooled connection (postgres) or left open (sqlite).
	var dbDriver database.Driver
	switch driver {
	case config.DriverPostgres:
		conn, err := db.Conn(ctx)
		if err != nil {
			return fmt.Errorf("acquire migration connection failed: %w", err)
		}
		defer conn.Close()
		dbDriver, err = postgres.WithConnection(ctx, conn, &postgres.Config{})
		if err != nil {
			return fmt.Errorf("init migrator failed: %w", err)
		}
	case config.DriverSQLite:
		dbDriver, err = sqlite.WithInstance(db, &sqlite.Config{})
		if err != nil {
			return fmt.Errorf("init migrator failed: %w", err)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	migrator, err := migrate.NewWithInstance("iofs", src, driver, dbDriver)
	if err != nil {
		return fmt.Errorf("init migrator failed: %w", err)
	}
	defer func() {
		_ = src.Close()
	}()

	if err := step(migrator); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migrate failed: %w", err)
	}
	return nil
}
