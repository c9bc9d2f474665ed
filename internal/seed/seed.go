// Package seed fills a fresh store from files left by earlier installs: the
// month/day JSON tree of the file-backed invoice store and stock catalog CSVs.
package seed

import (
	"context"

	"dawai/m/domain"
)

// InvoiceImporter inserts invoices with their original id and timestamp and
// reads back existing ones to tell a re-import from an id clash.
type InvoiceImporter interface {
	ImportInvoice(ctx context.Context, inv domain.Invoice) (bool, error)
	ReadInvoice(ctx context.Context, id string) (*domain.Invoice, error)
}

// InventoryCreator validates and stores stock items.
type InventoryCreator interface {
	CreateInventory(ctx context.Context, in domain.NewInventoryItem) (string, error)
}

// Result counts what a seeding run did.
type Result struct {
	Imported int
	Skipped  int
}
