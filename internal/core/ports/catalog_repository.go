// internal/core/ports/catalog_repository.go
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nexisretail/nexis-be/internal/core/domain"
)

// CatalogRepository is the persistence port for the item index, lots and
// unit reservation. Implemented by the database adapter.
type CatalogRepository interface {
	// FindSummary resolves an item id against the global index. Returns
	// (nil, nil) when the id is unknown.
	FindSummary(ctx context.Context, itemID uuid.UUID) (*domain.ItemSummary, error)

	// FindLots returns every lot of an item, oldest first. Read-only: it
	// never removes codes.
	FindLots(ctx context.Context, itemID uuid.UUID) ([]domain.Lot, error)

	// ReserveUnits commits every reservation in one transaction. Each unit
	// is pulled from its lot with a conditional single-row update; a unit
	// whose code is no longer present fails the whole batch with a
	// *domain.ReservationConflict and leaves storage unchanged.
	ReserveUnits(ctx context.Context, units []domain.ReservedUnit) error

	// PruneEmptyLots deletes lots whose code set has been empty for longer
	// than the retention window. Returns the number of lots removed.
	PruneEmptyLots(ctx context.Context, olderThan time.Duration) (int64, error)
}
