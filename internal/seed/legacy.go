package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"dawai/m/domain"
	"dawai/m/internal/errs"
	"dawai/m/internal/ids"
)

// ImportLegacyInvoices copies invoices from a file-backed tree laid out as
// root/MM-YY/DD-MM.json, each file holding a JSON array of invoice objects.
// Saved invoices carry no id of their own; they take their invoiceNo, or an id
// derived from the file's day and array position. Unreadable files and
// malformed directory names are skipped. Records already in the store are
// left alone, so re-running is safe.
func ImportLegacyInvoices(ctx context.Context, store InvoiceImporter, root string, loc *time.Location, log *zap.Logger) (Result, error) {
	var res Result

	months, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("read legacy root: %w", err)
	}

	for _, month := range months {
		if !month.IsDir() {
			continue
		}
		monthPath := filepath.Join(root, month.Name())
		files, err := os.ReadDir(monthPath)
		if err != nil {
			log.Warn("unable to read legacy month", zap.String("dir", monthPath), zap.Error(err))
			continue
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
				continue
			}
			day, ok := legacyDay(month.Name(), f.Name(), loc)
			if !ok {
				log.Warn("unexpected legacy file name", zap.String("dir", month.Name()), zap.String("file", f.Name()))
				continue
			}
			path := filepath.Join(monthPath, f.Name())
			n, skipped, err := importLegacyFile(ctx, store, path, day, log)
			if err != nil {
				return res, err
			}
			res.Imported += n
			res.Skipped += skipped
		}
	}

	log.Info("legacy invoices imported", zap.String("root", root),
		zap.Int("imported", res.Imported), zap.Int("skipped", res.Skipped))
	return res, nil
}

// legacyDay parses "MM-YY" and "DD-MM.json" into noon of that day.
func legacyDay(monthDir, file string, loc *time.Location) (time.Time, bool) {
	ym, err := time.ParseInLocation("01-06", monthDir, loc)
	if err != nil {
		return time.Time{}, false
	}
	dm, err := time.ParseInLocation("02-01", strings.TrimSuffix(file, ".json"), loc)
	if err != nil || dm.Month() != ym.Month() {
		return time.Time{}, false
	}
	return time.Date(ym.Year(), ym.Month(), dm.Day(), 12, 0, 0, 0, loc), true
}

func importLegacyFile(ctx context.Context, store InvoiceImporter, path string, day time.Time, log *zap.Logger) (imported, skipped int, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Warn("unable to read legacy file", zap.String("file", path), zap.Error(err))
		return 0, 0, nil
	}
	var objects []map[string]json.RawMessage
	if err := json.Unmarshal(content, &objects); err != nil {
		log.Warn("unable to parse legacy file", zap.String("file", path), zap.Error(err))
		return 0, 0, nil
	}

	for i, obj := range objects {
		inv, candidates, ok := legacyInvoice(obj, day, i)
		if !ok {
			log.Warn("unreadable legacy invoice", zap.String("file", path), zap.Int("index", i))
			skipped++
			continue
		}
		inserted, err := importFirstFree(ctx, store, inv, candidates)
		if errors.Is(err, errs.ErrInvalid) {
			log.Warn("legacy invoice rejected", zap.String("file", path), zap.Int("index", i), zap.Error(err))
			skipped++
			continue
		}
		if errors.Is(err, errs.ErrAlreadyExists) {
			log.Warn("legacy invoice ids taken", zap.String("file", path), zap.Strings("ids", candidates))
			skipped++
			continue
		}
		if err != nil {
			return imported, skipped, err
		}
		if inserted {
			imported++
		} else {
			skipped++
		}
	}
	return imported, skipped, nil
}

// importFirstFree inserts inv under the first free candidate id. A candidate
// already holding the same body means the record was imported earlier and
// reports false. When every candidate belongs to a different record the
// result is errs.ErrAlreadyExists.
func importFirstFree(ctx context.Context, store InvoiceImporter, inv domain.Invoice, candidates []string) (bool, error) {
	for _, id := range candidates {
		inv.ID = id
		inserted, err := store.ImportInvoice(ctx, inv)
		if err != nil || inserted {
			return inserted, err
		}
		existing, err := store.ReadInvoice(ctx, id)
		if err != nil && !errors.As(err, new(*errs.DecodeError)) {
			return false, err
		}
		if err == nil && bytes.Equal(existing.Data, inv.Data) {
			return false, nil
		}
	}
	return false, errs.ErrAlreadyExists
}

// legacyInvoice splits the store-owned id and createdAt keys off a legacy
// object; the remaining keys become the invoice body. The returned ids are
// tried in order: the object's own id, else its invoiceNo followed by one
// derived from day and index.
func legacyInvoice(obj map[string]json.RawMessage, day time.Time, index int) (domain.Invoice, []string, bool) {
	createdAt := day.UnixMilli()
	if raw, ok := obj["createdAt"]; ok {
		var ms int64
		if json.Unmarshal(raw, &ms) == nil && ms > 0 {
			createdAt = ms
		}
	}

	body := make(map[string]json.RawMessage, len(obj))
	for k, v := range obj {
		if k != "id" && k != "createdAt" {
			body[k] = v
		}
	}
	data, err := json.Marshal(body)
	if err != nil {
		return domain.Invoice{}, nil, false
	}

	var candidates []string
	if id := stringField(obj, "id"); id != "" {
		candidates = []string{id}
	} else {
		if no := stringField(obj, "invoiceNo"); strings.HasPrefix(no, ids.InvoicePrefix) {
			candidates = append(candidates, no)
		}
		candidates = append(candidates, ids.InvoicePrefix+strconv.FormatInt(day.UnixMilli()+int64(index), 10))
	}
	return domain.Invoice{CreatedAt: createdAt, Data: data}, candidates, true
}

func stringField(obj map[string]json.RawMessage, key string) string {
	var v string
	if raw, ok := obj[key]; ok && json.Unmarshal(raw, &v) == nil {
		return strings.TrimSpace(v)
	}
	return ""
}
