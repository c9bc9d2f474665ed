package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeClock returns a fixed instant that tests advance explicitly.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(ms int64) *fakeClock { return &fakeClock{t: time.UnixMilli(ms)} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T, log *zap.Logger, opts ...Option) *Store {
	t.Helper()
	if log == nil {
		log = zap.NewNop()
	}
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "dawai.db"), log, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_PingAndClose(t *testing.T) {
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "dawai.db"), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Close())
	require.Error(t, s.Ping(context.Background()))
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "dawai.db")
	ctx := context.Background()

	s, err := Open(ctx, dsn, zap.NewNop())
	require.NoError(t, err)
	id, err := s.CreateInvoice(ctx, []byte(`{"invoiceNo":"INV-1"}`))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, dsn, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()
	inv, err := s.ReadInvoice(ctx, id)
	require.NoError(t, err)
	require.JSONEq(t, `{"invoiceNo":"INV-1"}`, string(inv.Data))
}

func TestIsConstraintViolation(t *testing.T) {
	s := newTestStore(t, nil)

	_, err := s.db.Exec(`INSERT INTO invoices (id, createdAt, data) VALUES ('INV-1', 1, '{}')`)
	require.NoError(t, err)

	_, err = s.db.Exec(`INSERT INTO invoices (id, createdAt, data) VALUES ('INV-1', 2, '{}')`)
	require.Error(t, err)
	require.True(t, isConstraintViolation(err), "primary key clash")

	_, err = s.db.Exec(`INSERT INTO invoices (id, createdAt, data) VALUES ('INV-2', 1, NULL)`)
	require.Error(t, err)
	require.False(t, isConstraintViolation(err), "NOT NULL failure is not an id clash")

	require.False(t, isConstraintViolation(nil))
}
