// internal/adapters/db/catalog_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nexisretail/nexis-be/internal/core/domain"
	"github.com/nexisretail/nexis-be/internal/core/ports"
)

// catalogRepository implements ports.CatalogRepository
type catalogRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *Database, logger *slog.Logger) ports.CatalogRepository {
	return &catalogRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "catalog")),
	}
}

// FindSummary returns the sale-facing view of one item, or (nil, nil) when
// the id is unknown.
func (r *catalogRepository) FindSummary(ctx context.Context, itemID uuid.UUID) (*domain.ItemSummary, error) {
	query := `
		SELECT id, name, category, price, price_per_kg
		FROM items
		WHERE id = $1`

	var summary domain.ItemSummary
	err := r.db.QueryRow(ctx, query, itemID).Scan(
		&summary.ID,
		&summary.Name,
		&summary.Category,
		&summary.Price,
		&summary.PricePerKg,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}

	return &summary, nil
}

// FindLots returns the item's lots that still hold unsold codes, ordered
// oldest entry first.
func (r *catalogRepository) FindLots(ctx context.Context, itemID uuid.UUID) ([]domain.Lot, error) {
	query := `
		SELECT id, item_id, entered_at, codes
		FROM lots
		WHERE item_id = $1 AND cardinality(codes) > 0
		ORDER BY entered_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lots: %w", err)
	}
	defer rows.Close()

	var lots []domain.Lot
	for rows.Next() {
		var lot domain.Lot
		if err := rows.Scan(&lot.ID, &lot.ItemID, &lot.EnteredAt, &lot.Codes); err != nil {
			return nil, fmt.Errorf("failed to scan lot: %w", err)
		}
		lots = append(lots, lot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lots: %w", err)
	}

	return lots, nil
}

// ReserveUnits removes each unit's code from its lot in a single
// transaction. The conditional update matches the code inside the row, so
// the zero-rows outcome is the authoritative lost-race signal. Any conflict
// rolls back the whole batch and surfaces as *domain.ReservationConflict.
func (r *catalogRepository) ReserveUnits(ctx context.Context, units []domain.ReservedUnit) error {
	if len(units) == 0 {
		return nil
	}

	query := `
		UPDATE lots
		SET codes = array_remove(codes, $3), updated_at = NOW()
		WHERE item_id = $1 AND id = $2 AND $3 = ANY(codes)`

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		for _, unit := range units {
			tag, err := tx.Exec(ctx, query, unit.ItemID, unit.LotID, unit.Code)
			if err != nil {
				return fmt.Errorf("failed to reserve code %s: %w", unit.Code, err)
			}
			if tag.RowsAffected() == 0 {
				return &domain.ReservationConflict{Unit: unit}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "units reserved",
		slog.Int("count", len(units)))

	return nil
}

// PruneEmptyLots deletes lots drained of codes that have been untouched for
// at least olderThan.
func (r *catalogRepository) PruneEmptyLots(ctx context.Context, olderThan time.Duration) (int64, error) {
	query := `
		DELETE FROM lots
		WHERE cardinality(codes) = 0 AND updated_at < $1`

	tag, err := r.db.Exec(ctx, query, time.Now().UTC().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("failed to prune lots: %w", err)
	}

	return tag.RowsAffected(), nil
}
