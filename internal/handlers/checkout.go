// internal/handlers/checkout.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/nexisretail/nexis-be/internal/core/domain"
	"github.com/nexisretail/nexis-be/internal/core/ports"
)

// CheckoutHandler handles checkout HTTP requests
type CheckoutHandler struct {
	service ports.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(service ports.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "checkout")),
	}
}

// CheckoutRequest is the body for POST /api/v1/checkout
type CheckoutRequest struct {
	Items   []string        `json:"items"`
	Payment json.RawMessage `json:"payment,omitempty"`
}

// Validate checks the request shape before any storage work
func (r *CheckoutRequest) Validate() error {
	if len(r.Items) == 0 {
		return fmt.Errorf("items is required")
	}
	if len(r.Items) > 100 {
		return fmt.Errorf("too many items in a single checkout")
	}
	return nil
}

// CartCheckoutRequest is the body for POST /api/v1/checkout/cart
type CartCheckoutRequest struct {
	Payment json.RawMessage `json:"payment,omitempty"`
}

// EmployeeCheckoutRequest is the body for POST /api/v1/employee/checkout
type EmployeeCheckoutRequest struct {
	Items     []string        `json:"items"`
	BuyerName string          `json:"buyer_name"`
	Payment   json.RawMessage `json:"payment,omitempty"`
}

// Validate checks the request shape
func (r *EmployeeCheckoutRequest) Validate() error {
	if len(r.Items) == 0 {
		return fmt.Errorf("items is required")
	}
	if len(r.Items) > 100 {
		return fmt.Errorf("too many items in a single checkout")
	}
	return nil
}

// Checkout handles POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Checkout(ctx, ports.CheckoutParams{
		ClientID: clientID,
		ItemIDs:  req.Items,
		Payment:  req.Payment,
	})
	if err != nil {
		h.respondCheckoutError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, result)
}

// CartCheckout handles POST /api/v1/checkout/cart
func (h *CheckoutHandler) CartCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	var req CartCheckoutRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	result, err := h.service.CartCheckout(ctx, ports.CartCheckoutParams{
		ClientID: clientID,
		Payment:  req.Payment,
	})
	if err != nil {
		h.respondCheckoutError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, result)
}

// EmployeeCheckout handles POST /api/v1/employee/checkout
func (h *CheckoutHandler) EmployeeCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	operatorID, err := uuid.Parse(r.Header.Get("X-Employee-ID"))
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Missing or invalid employee identity")
		return
	}
	storeName := r.Header.Get("X-Store")
	if storeName == "" {
		h.respondError(w, http.StatusBadRequest, "Missing store header")
		return
	}

	var req EmployeeCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.EmployeeCheckout(ctx, ports.EmployeeCheckoutParams{
		OperatorID: operatorID,
		StoreName:  storeName,
		BuyerName:  req.BuyerName,
		ItemIDs:    req.Items,
		Payment:    req.Payment,
	})
	if err != nil {
		h.respondCheckoutError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, result)
}

// clientID reads the trusted client identity header set by the session
// component in front of this service.
func (h *CheckoutHandler) clientID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.Header.Get("X-Client-ID"))
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Missing or invalid client identity")
		return uuid.Nil, false
	}
	return id, true
}

// respondCheckoutError maps engine errors onto HTTP statuses. Partial
// ledger failures still report an error; the reservation itself is already
// committed and recoverable from logs.
func (h *CheckoutHandler) respondCheckoutError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidItemID):
		h.respondError(w, http.StatusBadRequest, "Invalid item id in request")
	case errors.Is(err, domain.ErrEmptyCart):
		h.respondError(w, http.StatusBadRequest, "Cart is empty")
	case errors.Is(err, domain.ErrItemNotFound):
		h.respondError(w, http.StatusNotFound, "Item not found")
	case errors.Is(err, domain.ErrUnknownStore):
		h.respondError(w, http.StatusNotFound, "Store not found")
	case errors.Is(err, domain.ErrItemSoldOut):
		h.respondError(w, http.StatusConflict, "Item is sold out")
	case errors.Is(err, domain.ErrLedgerWrite):
		h.logger.ErrorContext(ctx, "checkout ledger write failed",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Sale could not be fully recorded")
	default:
		h.logger.ErrorContext(ctx, "checkout failed",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Checkout failed")
	}
}

func (h *CheckoutHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *CheckoutHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
