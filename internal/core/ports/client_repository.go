// internal/core/ports/client_repository.go
package ports

import (
	"context"

	"github.com/google/uuid"
)

// ClientRepository is the persistence port for the buyer record's cart.
// The checkout engine reads the cart once and clears it once; everything
// else about clients belongs to the identity component.
type ClientRepository interface {
	// FindCart returns the item ids saved in a client's cart. Returns
	// (nil, nil) when the client is unknown.
	FindCart(ctx context.Context, clientID uuid.UUID) ([]uuid.UUID, error)

	// ClearCart empties a client's cart.
	ClearCart(ctx context.Context, clientID uuid.UUID) error
}
