package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"dawai/m/domain"
	"dawai/m/internal/dates"
	"dawai/m/internal/errs"
	"dawai/m/internal/query"
)

// maxIDAttempts bounds retries when a freshly generated id is already taken.
const maxIDAttempts = 5

var emptyBody = json.RawMessage(`{}`)

type invoiceRow struct {
	ID          string `db:"id"`
	CreatedAt   int64  `db:"createdAt"`
	PatientName string `db:"patientName"`
	Mobile      string `db:"mobile"`
	Data        string `db:"data"`
}

func (r invoiceRow) invoice() domain.Invoice {
	return domain.Invoice{
		ID:          r.ID,
		CreatedAt:   r.CreatedAt,
		PatientName: r.PatientName,
		Mobile:      r.Mobile,
		Data:        json.RawMessage(r.Data),
	}
}

// CreateInvoice stores a new invoice and returns its id. A nil or blank payload
// is stored as an empty document.
func (s *Store) CreateInvoice(ctx context.Context, payload json.RawMessage) (id string, err error) {
	defer func() { observe("invoice_create", err) }()

	if len(bytes.TrimSpace(payload)) == 0 {
		payload = emptyBody
	}
	doc, err := decodeDocument(payload)
	if err != nil {
		return "", errs.Invalid("data", err.Error())
	}
	p := doc.patient()

	const ins = `INSERT INTO invoices (id, createdAt, patientName, mobile, data) VALUES (?, ?, ?, ?, ?)`
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id = s.ids.Next()
		_, err = s.db.ExecContext(ctx, ins, id, s.now().UnixMilli(), p.Name, p.Mobile, string(payload))
		if err == nil {
			return id, nil
		}
		if !isConstraintViolation(err) {
			return "", fmt.Errorf("create invoice: %w", err)
		}
		s.log.Warn("invoice id taken, retrying", zap.String("id", id), zap.Int("attempt", attempt+1))
	}
	return "", fmt.Errorf("create invoice: %w", errs.ErrAlreadyExists)
}

// ReadInvoice returns the invoice with the given id.
func (s *Store) ReadInvoice(ctx context.Context, id string) (inv *domain.Invoice, err error) {
	defer func() { observe("invoice_read", err) }()

	var row invoiceRow
	err = s.db.GetContext(ctx, &row, `SELECT id, createdAt, patientName, mobile, data FROM invoices WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read invoice %s: %w", id, err)
	}
	if _, err := decodeDocument([]byte(row.Data)); err != nil {
		return nil, &errs.DecodeError{ID: id, Err: err}
	}
	out := row.invoice()
	return &out, nil
}

// UpdateInvoice replaces the body of an existing invoice and refreshes its
// createdAt and patient columns. Unknown ids yield errs.ErrNotFound.
func (s *Store) UpdateInvoice(ctx context.Context, id string, payload json.RawMessage) (err error) {
	defer func() { observe("invoice_update", err) }()

	if len(bytes.TrimSpace(payload)) == 0 {
		return errs.Invalid("data", "is required")
	}
	doc, err := decodeDocument(payload)
	if err != nil {
		return errs.Invalid("data", err.Error())
	}
	p := doc.patient()

	res, err := s.db.ExecContext(ctx,
		`UPDATE invoices SET data = ?, createdAt = ?, patientName = ?, mobile = ? WHERE id = ?`,
		string(payload), s.now().UnixMilli(), p.Name, p.Mobile, id)
	if err != nil {
		return fmt.Errorf("update invoice %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update invoice %s: %w", id, err)
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// DeleteInvoice removes an invoice and reports whether one was removed.
func (s *Store) DeleteInvoice(ctx context.Context, id string) (deleted bool, err error) {
	defer func() { observe("invoice_delete", err) }()

	res, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete invoice %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete invoice %s: %w", id, err)
	}
	return n > 0, nil
}

// ImportInvoice inserts a fully formed invoice, keeping its id and createdAt.
// It reports false when a record with that id already exists.
func (s *Store) ImportInvoice(ctx context.Context, inv domain.Invoice) (inserted bool, err error) {
	defer func() { observe("invoice_import", err) }()

	if inv.ID == "" {
		return false, errs.Invalid("id", "is required")
	}
	body := inv.Data
	if len(bytes.TrimSpace(body)) == 0 {
		body = emptyBody
	}
	doc, err := decodeDocument(body)
	if err != nil {
		return false, errs.Invalid("data", err.Error())
	}
	p := doc.patient()

	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO invoices (id, createdAt, patientName, mobile, data) VALUES (?, ?, ?, ?, ?)`,
		inv.ID, inv.CreatedAt, p.Name, p.Mobile, string(body))
	if err != nil {
		return false, fmt.Errorf("import invoice %s: %w", inv.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("import invoice %s: %w", inv.ID, err)
	}
	return n > 0, nil
}

type invoiceView struct {
	inv     domain.Invoice
	doc     document
	patient patient
}

// ListInvoices returns invoices newest first, narrowed by f. Records whose body
// cannot be decoded are logged and skipped.
func (s *Store) ListInvoices(ctx context.Context, f domain.InvoiceFilter) (out []domain.Invoice, err error) {
	defer func() { observe("invoice_list", err) }()

	rows, err := s.db.QueryxContext(ctx,
		`SELECT id, createdAt, patientName, mobile, data FROM invoices ORDER BY createdAt DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var views []invoiceView
	for rows.Next() {
		var row invoiceRow
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("list invoices: %w", err)
		}
		doc, err := decodeDocument([]byte(row.Data))
		if err != nil {
			skippedRecords.Inc()
			s.log.Warn("skipping unreadable invoice", zap.Error(&errs.DecodeError{ID: row.ID, Err: err}))
			continue
		}
		views = append(views, invoiceView{inv: row.invoice(), doc: doc, patient: doc.patient()})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	matched := query.Filter(views, s.invoicePredicates(f)...)
	out = make([]domain.Invoice, len(matched))
	for i, v := range matched {
		out[i] = v.inv
	}
	return out, nil
}

func (s *Store) invoicePredicates(f domain.InvoiceFilter) []query.Predicate[invoiceView] {
	var preds []query.Predicate[invoiceView]
	if want := dates.Normalize(f.Date); want != "" {
		preds = append(preds, func(v invoiceView) bool {
			return query.Equal(v.doc.date(v.inv.CreatedAt, s.loc), want)
		})
	}
	if f.InvoiceNo != "" {
		preds = append(preds, func(v invoiceView) bool {
			return query.Contains(v.doc.text("invoiceNo"), f.InvoiceNo)
		})
	}
	if f.PatientName != "" {
		preds = append(preds, func(v invoiceView) bool {
			return query.ContainsFold(v.patient.Name, f.PatientName)
		})
	}
	if f.Mobile != "" {
		preds = append(preds, func(v invoiceView) bool {
			return query.Contains(v.patient.Mobile, f.Mobile)
		})
	}
	return preds
}
