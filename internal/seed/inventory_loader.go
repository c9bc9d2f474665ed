package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"dawai/m/domain"
	"dawai/m/internal/errs"
)

var inventoryHeader = []string{"id", "name", "category", "batchNo", "unit", "minStock", "rack", "productType"}

// LoadInventoryCSV ingests a stock catalog into the inventory table. Columns are
// matched by header name; rack and productType may be omitted. Invalid rows and
// ids already present are skipped.
func LoadInventoryCSV(ctx context.Context, store InventoryCreator, csvPath string, log *zap.Logger) (Result, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return Result{}, fmt.Errorf("open inventory catalog: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("read inventory header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, name := range inventoryHeader[:6] {
		if _, ok := cols[name]; !ok {
			return Result{}, fmt.Errorf("inventory header: missing column %q", name)
		}
	}

	var res Result
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Warn("unable to read inventory row", zap.Int("line", line), zap.Error(err))
			res.Skipped++
			continue
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		item := domain.NewInventoryItem{
			ID:          field("id"),
			Name:        field("name"),
			Category:    field("category"),
			BatchNo:     field("batchNo"),
			Unit:        field("unit"),
			Rack:        field("rack"),
			ProductType: field("productType"),
		}
		if raw := field("minStock"); raw != "" {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				log.Warn("invalid minStock", zap.Int("line", line), zap.String("value", raw))
				res.Skipped++
				continue
			}
			item.MinStock = &n
		}

		if _, err := store.CreateInventory(ctx, item); err != nil {
			if !errors.Is(err, errs.ErrInvalid) && !errors.Is(err, errs.ErrAlreadyExists) {
				return res, err
			}
			log.Debug("inventory row skipped", zap.Int("line", line), zap.Error(err))
			res.Skipped++
			continue
		}
		res.Imported++
	}

	log.Info("seeded inventory catalog", zap.Int("rows", res.Imported), zap.Int("skipped", res.Skipped))
	return res, nil
}
