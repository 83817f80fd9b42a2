// internal/handlers/items.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/nexisretail/nexis-be/internal/core/domain"
	"github.com/nexisretail/nexis-be/internal/core/ports"
)

// ItemHandler handles item availability HTTP requests
type ItemHandler struct {
	service ports.CheckoutService
	logger  *slog.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(service ports.CheckoutService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "items")),
	}
}

// GetAvailability handles GET /api/v1/items/{id}/availability
func (h *ItemHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	availability, err := h.service.Availability(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			h.respondError(w, http.StatusNotFound, "Item not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to read availability",
			slog.String("item_id", itemID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to read availability")
		return
	}

	h.respondJSON(w, http.StatusOK, availability)
}

func (h *ItemHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *ItemHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
