package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"dawai/m/domain"
	"dawai/m/internal/errs"
	"dawai/m/internal/query"
)

const inventoryColumns = `id, name, category, batchNo, unit, minStock, rack, productType, createdAt, updatedAt`

// validateInventory checks the mandatory fields in form order and reports the first failure.
func validateInventory(in domain.NewInventoryItem) error {
	required := []struct {
		field string
		value string
	}{
		{"id", in.ID},
		{"name", in.Name},
		{"category", in.Category},
		{"batchNo", in.BatchNo},
		{"unit", in.Unit},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errs.Invalid(r.field, "is required")
		}
	}
	if in.MinStock == nil {
		return errs.Invalid("minStock", "is required")
	}
	if *in.MinStock < 0 {
		return errs.Invalid("minStock", "must not be negative")
	}
	return nil
}

// CreateInventory validates and stores a stock item, returning its id.
// A taken id yields errs.ErrAlreadyExists.
func (s *Store) CreateInventory(ctx context.Context, in domain.NewInventoryItem) (id string, err error) {
	defer func() { observe("inventory_create", err) }()

	if err := validateInventory(in); err != nil {
		return "", err
	}
	now := s.now().UnixMilli()
	item := domain.InventoryItem{
		ID:          strings.TrimSpace(in.ID),
		Name:        strings.TrimSpace(in.Name),
		Category:    strings.TrimSpace(in.Category),
		BatchNo:     strings.TrimSpace(in.BatchNo),
		Unit:        strings.TrimSpace(in.Unit),
		MinStock:    *in.MinStock,
		Rack:        strings.TrimSpace(in.Rack),
		ProductType: strings.TrimSpace(in.ProductType),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = s.db.NamedExecContext(ctx, `INSERT INTO inventory (`+inventoryColumns+`)
        VALUES (:id, :name, :category, :batchNo, :unit, :minStock, :rack, :productType, :createdAt, :updatedAt)`, item)
	if isConstraintViolation(err) {
		return "", fmt.Errorf("inventory item %s: %w", item.ID, errs.ErrAlreadyExists)
	}
	if err != nil {
		return "", fmt.Errorf("create inventory item %s: %w", item.ID, err)
	}
	return item.ID, nil
}

// ReadInventory returns the stock item with the given id.
func (s *Store) ReadInventory(ctx context.Context, id string) (item *domain.InventoryItem, err error) {
	defer func() { observe("inventory_read", err) }()

	var out domain.InventoryItem
	err = s.db.GetContext(ctx, &out, `SELECT `+inventoryColumns+` FROM inventory WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read inventory item %s: %w", id, err)
	}
	return &out, nil
}

// ListInventory returns stock items most recently updated first, narrowed by
// case-insensitive substring matches on name and category.
func (s *Store) ListInventory(ctx context.Context, f domain.InventoryFilter) (out []domain.InventoryItem, err error) {
	defer func() { observe("inventory_list", err) }()

	var items []domain.InventoryItem
	if err := s.db.SelectContext(ctx, &items,
		`SELECT `+inventoryColumns+` FROM inventory ORDER BY updatedAt DESC, id DESC`); err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}

	return query.Filter(items,
		func(it domain.InventoryItem) bool { return query.ContainsFold(it.Name, f.Name) },
		func(it domain.InventoryItem) bool { return query.ContainsFold(it.Category, f.Category) },
	), nil
}
