package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"dawai/m/domain"
)

// readBody returns the raw request body, or nil when it is blank.
func readBody(w http.ResponseWriter, r *http.Request) (json.RawMessage, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	return body, nil
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	payload, err := readBody(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := h.invoices.CreateInvoice(r.Context(), payload)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) getInvoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.InvoiceFilter{
		Date:        strings.TrimSpace(q.Get("date")),
		InvoiceNo:   strings.TrimSpace(q.Get("invoiceNo")),
		PatientName: strings.TrimSpace(firstParam(q.Get("patientName"), q.Get("patientname"), q.Get("patient"))),
		Mobile:      strings.TrimSpace(q.Get("mobile")),
	}
	invoices, err := h.invoices.ListInvoices(r.Context(), filter)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	entries := make([]domain.InvoiceEntry, len(invoices))
	for i, inv := range invoices {
		entries[i] = inv.Entry()
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *Handler) getInvoiceByID(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoices.ReadInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, inv.Entry())
}

func (h *Handler) readInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoices.ReadInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, inv)
}

func (h *Handler) writeInvoice(w http.ResponseWriter, r *http.Request) {
	payload, err := readBody(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload == nil {
		respondError(w, http.StatusBadRequest, "invoice body is required")
		return
	}
	if err := h.invoices.UpdateInvoice(r.Context(), chi.URLParam(r, "id"), payload); err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.invoices.DeleteInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

func firstParam(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
