// Package persist synchronizes the task list state with a durable
// key-value store: Hydrate at mount, Persist at exit.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tasklist/internal/state"
	"github.com/idilsaglam/tasklist/internal/store"
)

// DefaultNamespace prefixes every key written by the bridge.
const DefaultNamespace = "tasklist"

// ErrUnsupportedVersion means the stored record was written by a newer
// layout. Hydrate refuses it so Persist can't clobber the data.
var ErrUnsupportedVersion = errors.New("unsupported state version")

// Option configures a Bridge.
type Option func(*Bridge)

// WithNamespace sets the key prefix.
func WithNamespace(ns string) Option {
	return func(b *Bridge) {
		if ns = strings.TrimSpace(ns); ns != "" {
			b.namespace = ns
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.logger = l
		}
	}
}

// Bridge reads and writes a state.Container through a store.KV.
type Bridge struct {
	kv        store.KV
	namespace string
	logger    *log.Logger
}

func New(kv store.KV, opts ...Option) *Bridge {
	b := &Bridge{
		kv:        kv,
		namespace: DefaultNamespace,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// RecordKey is the key holding the versioned state record.
func (b *Bridge) RecordKey() string { return b.namespace + ":state" }

// Hydrate restores c from the store. Unreadable records fall back to the
// legacy per-field keys, then to defaults; only store errors and
// ErrUnsupportedVersion are returned.
func (b *Bridge) Hydrate(ctx context.Context, c *state.Container) error {
	raw, ok, err := b.kv.Get(ctx, b.RecordKey())
	if err != nil {
		return fmt.Errorf("read %s: %w", b.RecordKey(), err)
	}
	if ok {
		rec, err := decodeRecord(raw)
		switch {
		case err == nil:
			c.Restore(rec.State())
			b.logger.Debug("hydrated", "key", b.RecordKey(), "items", len(rec.List))
			return nil
		case errors.Is(err, ErrUnsupportedVersion):
			return err
		default:
			b.logger.Warn("ignoring unreadable state record", "key", b.RecordKey(), "err", err)
		}
	}
	return b.hydrateLegacy(ctx, c)
}

func (b *Bridge) hydrateLegacy(ctx context.Context, c *state.Container) error {
	st := c.Snapshot()
	found := false

	raw, ok, err := b.kv.Get(ctx, legacyNewItemKey)
	if err != nil {
		return fmt.Errorf("read %s: %w", legacyNewItemKey, err)
	}
	if ok {
		st.NewItem = decodeLegacyInput(raw)
		found = true
	}

	raw, ok, err = b.kv.Get(ctx, legacyListKey)
	if err != nil {
		return fmt.Errorf("read %s: %w", legacyListKey, err)
	}
	if ok {
		list, err := decodeLegacyList(raw)
		if err != nil {
			b.logger.Warn("ignoring unreadable legacy list", "key", legacyListKey, "err", err)
		} else {
			st.List = list
			found = true
		}
	}

	if found {
		c.Restore(st)
		b.logger.Info("migrated legacy state", "items", len(st.List))
	}
	return nil
}

// Persist writes the whole state of c as one record.
func (b *Bridge) Persist(ctx context.Context, c *state.Container) error {
	rec := recordFrom(c.Snapshot())
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := b.kv.Set(ctx, b.RecordKey(), string(data)); err != nil {
		return fmt.Errorf("write %s: %w", b.RecordKey(), err)
	}
	b.logger.Debug("persisted", "key", b.RecordKey(), "items", len(rec.List))
	return nil
}
