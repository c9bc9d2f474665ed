package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dawai/m/domain"
	"dawai/m/internal/errs"
)

func stock(n int64) *int64 { return &n }

func validItem(id string) domain.NewInventoryItem {
	return domain.NewInventoryItem{
		ID:       id,
		Name:     "Paracetamol 500",
		Category: "Tablet",
		BatchNo:  "B-17",
		Unit:     "strip",
		MinStock: stock(5),
	}
}

func TestCreateInventory_Validation(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		mut   func(*domain.NewInventoryItem)
		field string
	}{
		{"empty id", func(in *domain.NewInventoryItem) { in.ID = "" }, "id"},
		{"blank name", func(in *domain.NewInventoryItem) { in.Name = "  " }, "name"},
		{"no category", func(in *domain.NewInventoryItem) { in.Category = "" }, "category"},
		{"no batch", func(in *domain.NewInventoryItem) { in.BatchNo = "" }, "batchNo"},
		{"no unit", func(in *domain.NewInventoryItem) { in.Unit = "" }, "unit"},
		{"no min stock", func(in *domain.NewInventoryItem) { in.MinStock = nil }, "minStock"},
		{"negative min stock", func(in *domain.NewInventoryItem) { in.MinStock = stock(-1) }, "minStock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validItem("ITM-1")
			tt.mut(&in)

			_, err := s.CreateInventory(ctx, in)
			require.ErrorIs(t, err, errs.ErrInvalid)
			var ve *errs.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	list, err := s.ListInventory(ctx, domain.InventoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "rejected items are not written")
}

func TestCreateInventory_ZeroMinStockAllowed(t *testing.T) {
	s := newTestStore(t, nil)
	in := validItem("ITM-0")
	in.MinStock = stock(0)

	_, err := s.CreateInventory(context.Background(), in)
	require.NoError(t, err)
}

func TestCreateInventory_ReadBack(t *testing.T) {
	clock := newFakeClock(baseMillis)
	s := newTestStore(t, nil, WithClock(clock.Now))
	ctx := context.Background()

	in := validItem(" ITM-1 ")
	in.Rack = "R2"
	id, err := s.CreateInventory(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "ITM-1", id)

	got, err := s.ReadInventory(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.InventoryItem{
		ID:          "ITM-1",
		Name:        "Paracetamol 500",
		Category:    "Tablet",
		BatchNo:     "B-17",
		Unit:        "strip",
		MinStock:    5,
		Rack:        "R2",
		ProductType: "",
		CreatedAt:   baseMillis,
		UpdatedAt:   baseMillis,
	}, *got)
}

func TestCreateInventory_Duplicate(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	_, err := s.CreateInventory(ctx, validItem("ITM-1"))
	require.NoError(t, err)

	_, err = s.CreateInventory(ctx, validItem("ITM-1"))
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestReadInventory_NotFound(t *testing.T) {
	s := newTestStore(t, nil)
	_, err := s.ReadInventory(context.Background(), "nope")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestListInventory(t *testing.T) {
	clock := newFakeClock(baseMillis)
	s := newTestStore(t, nil, WithClock(clock.Now))
	ctx := context.Background()

	add := func(id, name, category string) {
		in := validItem(id)
		in.Name, in.Category = name, category
		_, err := s.CreateInventory(ctx, in)
		require.NoError(t, err)
		clock.Advance(time.Second)
	}
	add("A", "Paracetamol 500", "Tablet")
	add("B", "Cough Syrup", "Syrup")
	add("C", "Paracetamol Suspension", "Syrup")

	ids := func(items []domain.InventoryItem) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.ID
		}
		return out
	}

	tests := []struct {
		name   string
		filter domain.InventoryFilter
		want   []string
	}{
		{"all newest first", domain.InventoryFilter{}, []string{"C", "B", "A"}},
		{"name", domain.InventoryFilter{Name: "PARA"}, []string{"C", "A"}},
		{"category", domain.InventoryFilter{Category: "syrup"}, []string{"C", "B"}},
		{"both", domain.InventoryFilter{Name: "para", Category: "syr"}, []string{"C"}},
		{"none", domain.InventoryFilter{Name: "insulin"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListInventory(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}
