// Package backends opens the configured store.KV implementation.
package backends

import (
	"context"
	"fmt"
	"strings"

	"github.com/idilsaglam/tasklist/internal/store"
	"github.com/idilsaglam/tasklist/internal/store/jsonstore"
	"github.com/idilsaglam/tasklist/internal/store/memstore"
	"github.com/idilsaglam/tasklist/internal/store/sqlstore"
)

// Names accepted by Open.
const (
	File     = "file"
	Memory   = "memory"
	Postgres = "postgres"
	MySQL    = "mysql"
)

// Options selects and parameterizes a backend.
type Options struct {
	Backend string
	Path    string // file backend
	DSN     string // sql backends
	Table   string // sql backends
}

// Open returns the backend named by opts.Backend. Empty means file.
func Open(ctx context.Context, opts Options) (store.KV, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", File:
		s, err := jsonstore.Open(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return s, nil
	case Memory:
		return memstore.New(), nil
	case Postgres, "postgresql", "pg":
		return openSQL(ctx, Postgres, opts)
	case MySQL:
		return openSQL(ctx, MySQL, opts)
	}
	return nil, fmt.Errorf("%w: %q", store.ErrUnknownBackend, opts.Backend)
}

func openSQL(ctx context.Context, driver string, opts Options) (store.KV, error) {
	s, err := sqlstore.Open(ctx, driver, opts.DSN, opts.Table)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}
	return s, nil
}
