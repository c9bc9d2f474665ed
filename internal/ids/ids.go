// Package ids issues record identifiers.
package ids

import (
	"strconv"
	"sync"
	"time"
)

// InvoicePrefix is prepended to every invoice id.
const InvoicePrefix = "INV-"

// Generator produces ids of the form <prefix><epoch-ms>. Ids are strictly increasing
// within one Generator: when the clock has not moved past the last issued
// millisecond, the next millisecond is used instead.
type Generator struct {
	mu     sync.Mutex
	prefix string
	now    func() time.Time
	last   int64
}

// New returns a Generator reading time from now.
func New(prefix string, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{prefix: prefix, now: now}
}

// NewInvoiceGenerator returns a Generator for invoice ids reading time from now.
func NewInvoiceGenerator(now func() time.Time) *Generator { return New(InvoicePrefix, now) }

// Next returns the next id.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return g.prefix + strconv.FormatInt(ms, 10)
}
