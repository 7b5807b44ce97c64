// Package sqlstore keeps key-value entries in a two-column SQL table.
// PostgreSQL (lib/pq) and MySQL (go-sql-driver/mysql) are supported.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/idilsaglam/tasklist/internal/store"
)

// DefaultTable is the table used when none is configured.
const DefaultTable = "tasklist_kv"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// Dialect holds the per-database statements.
type Dialect struct {
	Driver string
	Create string
	Select string
	Upsert string
}

// DialectFor returns the statements for driver ("postgres" or "mysql")
// against table.
func DialectFor(driver, table string) (Dialect, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tableName.MatchString(table) {
		return Dialect{}, fmt.Errorf("invalid table name %q", table)
	}
	switch driver {
	case "postgres":
		return Dialect{
			Driver: "postgres",
			Create: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    k VARCHAR(255) PRIMARY KEY,
    v TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`, table),
			Select: fmt.Sprintf(`SELECT v FROM %s WHERE k = $1`, table),
			Upsert: fmt.Sprintf(`INSERT INTO %s (k, v, updated_at) VALUES ($1, $2, NOW())
ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v, updated_at = NOW()`, table),
		}, nil
	case "mysql":
		return Dialect{
			Driver: "mysql",
			Create: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    k VARCHAR(255) PRIMARY KEY,
    v LONGTEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`, table),
			Select: fmt.Sprintf(`SELECT v FROM %s WHERE k = ?`, table),
			Upsert: fmt.Sprintf(`INSERT INTO %s (k, v) VALUES (?, ?)
ON DUPLICATE KEY UPDATE v = VALUES(v)`, table),
		}, nil
	}
	return Dialect{}, fmt.Errorf("%w: %q", store.ErrUnknownBackend, driver)
}

type Store struct {
	db *sql.DB
	d  Dialect
}

// Open connects, pings and creates the table if needed.
func Open(ctx context.Context, driver, dsn, table string) (*Store, error) {
	d, err := DialectFor(driver, table)
	if err != nil {
		return nil, err
	}
	if dsn == "" {
		return nil, fmt.Errorf("%s: empty dsn", driver)
	}
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	s := New(db, d)
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing handle. The table is assumed to exist.
func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, d: d}
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.d.Create); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, s.d.Select, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select %q: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.d.Upsert, key, value); err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }
