package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"dawai/m/domain"
)

var errEmptyBody = errors.New("request body is required")

func (h *Handler) createInventory(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req domain.NewInventoryItem
	if err := decodeJSON(r, &req); err != nil {
		if errors.Is(err, io.EOF) {
			err = errEmptyBody
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := h.inventory.CreateInventory(r.Context(), req)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) getInventory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.inventory.ListInventory(r.Context(), domain.InventoryFilter{
		Name:     strings.TrimSpace(q.Get("name")),
		Category: strings.TrimSpace(q.Get("category")),
	})
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) getInventoryByID(w http.ResponseWriter, r *http.Request) {
	item, err := h.inventory.ReadInventory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}
