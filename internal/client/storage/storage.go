// Package storage opens the durable namespace selected by configuration:
// an SQLite file (the default, one file per profile), a Postgres database, or
// process memory.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/adminpanel/internal/client/migrations"
	"github.com/dmitrijs2005/adminpanel/internal/client/repositories/namespace"
	"github.com/dmitrijs2005/adminpanel/internal/filex"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

type Options struct {
	Driver string
	// Path is the SQLite database file.
	Path string
	// DSN is the Postgres connection string.
	DSN    string
	Origin string
}

// Storage owns the database handle behind a namespace.
type Storage struct {
	Namespace namespace.Repository
	db        *sql.DB
}

// Close releases the database handle, if any.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Open connects to the configured backend and applies migrations.
func Open(ctx context.Context, opts Options) (*Storage, error) {
	switch opts.Driver {
	case DriverMemory:
		return &Storage{Namespace: namespace.NewMemoryRepository()}, nil

	case DriverSQLite, "":
		path, err := filex.EnsureParentDir(opts.Path)
		if err != nil {
			return nil, err
		}
		db, err := openAndMigrate(ctx, "sqlite", path, "sqlite3", migrations.SQLiteDir)
		if err != nil {
			return nil, err
		}
		// A single connection keeps SQLite writers from failing with SQLITE_BUSY.
		db.SetMaxOpenConns(1)
		return &Storage{Namespace: namespace.NewSQLiteRepository(db, opts.Origin), db: db}, nil

	case DriverPostgres:
		db, err := openAndMigrate(ctx, "pgx", opts.DSN, "postgres", migrations.PostgresDir)
		if err != nil {
			return nil, err
		}
		return &Storage{Namespace: namespace.NewPostgresRepository(db, opts.Origin), db: db}, nil

	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownDriver, opts.Driver)
	}
}

func openAndMigrate(ctx context.Context, driverName, dsn, dialect, dir string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}

	if err := RunMigrations(ctx, db, dialect, dir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// RunMigrations applies the embedded migrations in dir using the given goose
// dialect. Applying them twice is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB, dialect, dir string) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect %s: %w", dialect, err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate %s: %w", dir, err)
	}
	return nil
}
