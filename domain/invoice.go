package domain

import "encoding/json"

// Invoice is a stored sales bill. Data is the billing document exactly as it was written.
type Invoice struct {
	ID          string          `db:"id" json:"id"`
	CreatedAt   int64           `db:"createdAt" json:"createdAt"`
	PatientName string          `db:"patientName" json:"patientName"`
	Mobile      string          `db:"mobile" json:"mobile"`
	Data        json.RawMessage `db:"-" json:"data"`
}

// InvoiceEntry is the listing shape consumed by the desktop shell.
type InvoiceEntry struct {
	Title        string          `json:"title"`
	LastEditTime int64           `json:"lastEditTime"`
	Data         json.RawMessage `json:"data"`
}

// Entry converts the invoice into its listing shape.
func (inv Invoice) Entry() InvoiceEntry {
	return InvoiceEntry{Title: inv.ID, LastEditTime: inv.CreatedAt, Data: inv.Data}
}

// InvoiceFilter narrows an invoice listing. Empty fields match everything.
type InvoiceFilter struct {
	Date        string `json:"date,omitempty"`
	InvoiceNo   string `json:"invoiceNo,omitempty"`
	PatientName string `json:"patientName,omitempty"`
	Mobile      string `json:"mobile,omitempty"`
}
