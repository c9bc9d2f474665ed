// Package store persists invoices and inventory items in SQLite.
//
// A Store is constructed once, handed to every component that needs it and
// closed on shutdown. Operations run to completion before returning; the
// single pooled connection serialises writers.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"dawai/m/internal/database"
	"dawai/m/internal/ids"
	"dawai/m/internal/migrations"
)

// Store owns the on-disk representation of invoices and inventory items.
type Store struct {
	db  *sqlx.DB
	log *zap.Logger
	now func() time.Time
	loc *time.Location
	ids *ids.Generator
}

// Option customises a Store.
type Option func(*Store)

// WithClock sets the time source used for timestamps and invoice ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation sets the zone used to derive an invoice date from createdAt.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) { s.loc = loc }
}

// WithIDGenerator overrides the invoice id generator.
func WithIDGenerator(g *ids.Generator) Option {
	return func(s *Store) { s.ids = g }
}

// New wraps an already migrated database.
func New(db *sqlx.DB, log *zap.Logger, opts ...Option) *Store {
	s := &Store{db: db, log: log, now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = ids.NewInvoiceGenerator(s.now)
	}
	return s
}

// Open connects to dsn, applies migrations and returns a ready Store.
func Open(ctx context.Context, dsn string, log *zap.Logger, opts ...Option) (*Store, error) {
	db, err := database.Open(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db, log, opts...), nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// Ping reports whether the backing database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// isConstraintViolation reports whether err is a primary key or unique constraint failure.
func isConstraintViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}
