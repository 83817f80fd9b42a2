// internal/handlers/clients.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/nexisretail/nexis-be/internal/core/ports"
)

// ClientHandler exposes the buyer-facing cart read.
type ClientHandler struct {
	clients ports.ClientRepository
	logger  *slog.Logger
}

// NewClientHandler creates a new client handler
func NewClientHandler(clients ports.ClientRepository, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{
		clients: clients,
		logger:  logger.With(slog.String("handler", "clients")),
	}
}

// CartResponse is the body for GET /api/v1/clients/cart
type CartResponse struct {
	Items []uuid.UUID `json:"items"`
	Count int         `json:"count"`
}

// GetCart handles GET /api/v1/clients/cart. The client identity comes from
// the session component's header; an unknown client reads as an empty cart.
func (h *ClientHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientID, err := uuid.Parse(r.Header.Get("X-Client-ID"))
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Missing or invalid client identity")
		return
	}

	cart, err := h.clients.FindCart(ctx, clientID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read cart",
			slog.String("client_id", clientID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to read cart")
		return
	}
	if cart == nil {
		cart = []uuid.UUID{}
	}

	h.respondJSON(w, http.StatusOK, CartResponse{Items: cart, Count: len(cart)})
}

func (h *ClientHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (h *ClientHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
