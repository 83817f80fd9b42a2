// internal/handlers/stores.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/nexisretail/nexis-be/internal/core/ports"
)

// StoreHandler serves per-store ledger reads
type StoreHandler struct {
	ledger ports.LedgerRepository
	logger *slog.Logger
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(ledger ports.LedgerRepository, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{
		ledger: ledger,
		logger: logger.With(slog.String("handler", "stores")),
	}
}

// ListSales handles GET /api/v1/stores/{store}/sales
func (h *StoreHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeName := r.PathValue("store")
	known, err := h.ledger.StoreExists(ctx, storeName)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to check store",
			slog.String("store", storeName),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to read ledger")
		return
	}
	if !known {
		h.respondError(w, http.StatusNotFound, "Store not found")
		return
	}

	params := ports.LedgerListParams{
		StoreName: storeName,
		Page:      parseIntQuery(r, "page", 1),
		PageSize:  parseIntQuery(r, "page_size", 20),
	}
	if from := r.URL.Query().Get("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			params.From = t
		}
	}
	if to := r.URL.Query().Get("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			params.To = t
		}
	}

	result, err := h.ledger.ListByStore(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list sales",
			slog.String("store", storeName),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to read ledger")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return defaultValue
}

func (h *StoreHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *StoreHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
