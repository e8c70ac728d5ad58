package namespace

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/adminpanel/internal/dbx"
)

type queries struct {
	get       string
	getLocked string
	set       string
	del       string
	list      string
	clear     string
}

var sqliteQueries = queries{
	get:       `SELECT value FROM namespace WHERE origin = ? AND key = ?`,
	getLocked: `SELECT value FROM namespace WHERE origin = ? AND key = ?`,
	set: `
		INSERT INTO namespace (origin, key, value) VALUES (?, ?, ?)
		ON CONFLICT(origin, key) DO UPDATE SET value = excluded.value
	`,
	del:   `DELETE FROM namespace WHERE origin = ? AND key = ?`,
	list:  `SELECT key, value FROM namespace WHERE origin = ?`,
	clear: `DELETE FROM namespace WHERE origin = ?`,
}

var postgresQueries = queries{
	get:       `SELECT value FROM namespace WHERE origin = $1 AND key = $2`,
	getLocked: `SELECT value FROM namespace WHERE origin = $1 AND key = $2 FOR UPDATE`,
	set: `
		INSERT INTO namespace (origin, key, value) VALUES ($1, $2, $3)
		ON CONFLICT (origin, key) DO UPDATE SET value = EXCLUDED.value
	`,
	del:   `DELETE FROM namespace WHERE origin = $1 AND key = $2`,
	list:  `SELECT key, value FROM namespace WHERE origin = $1`,
	clear: `DELETE FROM namespace WHERE origin = $1`,
}

// SQLRepository stores the namespace in the `namespace` table created by the
// storage migrations. The SQLite and Postgres backends differ only in their
// query text.
type SQLRepository struct {
	db     *sql.DB
	origin string
	q      queries
}

func NewSQLiteRepository(db *sql.DB, origin string) *SQLRepository {
	return &SQLRepository{db: db, origin: origin, q: sqliteQueries}
}

func NewPostgresRepository(db *sql.DB, origin string) *SQLRepository {
	return &SQLRepository{db: db, origin: origin, q: postgresQueries}
}

func (r *SQLRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.get(ctx, r.db, r.q.get, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get namespace[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.set(ctx, r.db, key, value); err != nil {
		return fmt.Errorf("failed to set namespace[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, r.q.del, r.origin, key); err != nil {
		return fmt.Errorf("failed to delete namespace[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.q.clear, r.origin); err != nil {
		return fmt.Errorf("failed to clear namespace: %w", err)
	}
	return nil
}

func (r *SQLRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, r.q.list, r.origin)
	if err != nil {
		return nil, fmt.Errorf("failed to list namespace: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan namespace row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate namespace rows: %w", err)
	}

	return result, nil
}

// Update reads and rewrites key inside one transaction. On Postgres the row
// is locked for the duration.
func (r *SQLRepository) Update(ctx context.Context, key string, fn UpdateFunc) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := r.get(ctx, tx, r.q.getLocked, key)
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		return r.set(ctx, tx, key, next)
	})
	if err != nil {
		return fmt.Errorf("failed to update namespace[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLRepository) get(ctx context.Context, q dbx.DBTX, query, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, query, r.origin, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (r *SQLRepository) set(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, r.q.set, r.origin, key, value)
	return err
}
