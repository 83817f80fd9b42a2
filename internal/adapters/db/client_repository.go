// internal/adapters/db/client_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nexisretail/nexis-be/internal/core/ports"
)

// clientRepository implements ports.ClientRepository
type clientRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *Database, logger *slog.Logger) ports.ClientRepository {
	return &clientRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "client")),
	}
}

// FindCart returns the item ids saved in the client's cart. Unknown clients
// yield (nil, nil), indistinguishable from an empty cart.
func (r *clientRepository) FindCart(ctx context.Context, clientID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT cart FROM clients WHERE id = $1`

	var cart []uuid.UUID
	err := r.db.QueryRow(ctx, query, clientID).Scan(&cart)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	return cart, nil
}

// ClearCart empties the client's cart after a successful cart checkout.
func (r *clientRepository) ClearCart(ctx context.Context, clientID uuid.UUID) error {
	query := `UPDATE clients SET cart = '{}', updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, clientID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("client not found: %s", clientID)
	}

	r.logger.DebugContext(ctx, "cart cleared",
		slog.String("client_id", clientID.String()))

	return nil
}
