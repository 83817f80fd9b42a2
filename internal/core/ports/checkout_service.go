// internal/core/ports/checkout_service.go
package ports

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/nexisretail/nexis-be/internal/core/domain"
)

// CheckoutService is the application service port for the reservation and
// sale-recording engine. Implemented by services.CheckoutService.
type CheckoutService interface {
	// Checkout sells an explicit list of item ids to a registered client.
	Checkout(ctx context.Context, params CheckoutParams) (*CheckoutResult, error)

	// CartCheckout sells the client's saved cart, then clears it.
	CartCheckout(ctx context.Context, params CartCheckoutParams) (*CheckoutResult, error)

	// EmployeeCheckout records a walk-in sale: the operator names the store
	// and the buyer, and the whole sale lands on that store's ledger.
	EmployeeCheckout(ctx context.Context, params EmployeeCheckoutParams) (*CheckoutResult, error)

	// Availability reports an item's summary and the advisory count of
	// units still sellable. The count is a point-in-time snapshot, not a
	// reservation guarantee.
	Availability(ctx context.Context, itemID uuid.UUID) (*ItemAvailability, error)
}

// CheckoutParams drives an ad-hoc checkout. ItemIDs are raw strings: the
// engine validates every one before touching storage.
type CheckoutParams struct {
	ClientID uuid.UUID
	ItemIDs  []string
	Payment  json.RawMessage
}

// CartCheckoutParams drives a saved-cart checkout.
type CartCheckoutParams struct {
	ClientID uuid.UUID
	Payment  json.RawMessage
}

// EmployeeCheckoutParams drives an employee-assisted walk-in sale. The
// operator identity and target store come from the external session
// component and are trusted as given.
type EmployeeCheckoutParams struct {
	OperatorID uuid.UUID
	StoreName  string
	BuyerName  string
	ItemIDs    []string
	Payment    json.RawMessage
}

// CheckoutResult reports the committed sale. Remaining carries the advisory
// pre-reservation availability per item; it is diagnostic data only.
type CheckoutResult struct {
	Entries   []domain.SaleEntry `json:"entries"`
	Units     int                `json:"units"`
	Remaining map[uuid.UUID]int  `json:"remaining,omitempty"`
}

// ItemAvailability is the read-only availability projection.
type ItemAvailability struct {
	Item      domain.ItemSummary `json:"item"`
	Remaining int                `json:"remaining"`
}
