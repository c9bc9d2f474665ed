package ids

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerator_Format(t *testing.T) {
	g := New(InvoicePrefix, func() time.Time { return time.UnixMilli(1700000000000) })
	require.Equal(t, "INV-1700000000000", g.Next())
}

func TestGenerator_UniqueUnderFrozenClock(t *testing.T) {
	g := New(InvoicePrefix, func() time.Time { return time.UnixMilli(1700000000000) })

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := g.Next()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
	require.Equal(t, "INV-1700000001000", g.Next())
}

func TestGenerator_ClockStepsBackwards(t *testing.T) {
	clock := []int64{2000, 1000, 1000, 3000}
	i := 0
	g := New("invoice-", func() time.Time {
		ms := clock[i]
		i++
		return time.UnixMilli(ms)
	})

	require.Equal(t, "invoice-2000", g.Next())
	require.Equal(t, "invoice-2001", g.Next())
	require.Equal(t, "invoice-2002", g.Next())
	require.Equal(t, "invoice-3000", g.Next())
}

func TestNewInvoiceGenerator(t *testing.T) {
	g := NewInvoiceGenerator(func() time.Time { return time.UnixMilli(1700000000000) })
	require.Equal(t, "INV-1700000000000", g.Next())
	require.Equal(t, "INV-1700000000001", g.Next())
}

func TestNewInvoiceGenerator_NilClockUsesWallClock(t *testing.T) {
	before := time.Now().UnixMilli()
	id := NewInvoiceGenerator(nil).Next()
	require.Regexp(t, `^INV-\d{13}$`, id)

	ms, err := strconv.ParseInt(strings.TrimPrefix(id, InvoicePrefix), 10, 64)
	require.NoError(t, err)
	require.GreaterOrEqual(t, ms, before)
}
