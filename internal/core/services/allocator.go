// internal/core/services/allocator.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nexisretail/nexis-be/internal/core/domain"
)

const summaryCachePrefix = "item:summary:"

// resolveSummary returns the sale-facing view of an item, read through the
// cache when one is configured. Unknown ids surface as ErrItemNotFound.
func (s *CheckoutService) resolveSummary(ctx context.Context, itemID uuid.UUID) (*domain.ItemSummary, error) {
	fetch := func() (*domain.ItemSummary, error) {
		summary, err := s.catalog.FindSummary(ctx, itemID)
		if err != nil {
			return nil, fmt.Errorf("resolving item %s: %w", itemID, err)
		}
		if summary == nil {
			return nil, fmt.Errorf("item %s: %w", itemID, domain.ErrItemNotFound)
		}
		return summary, nil
	}

	if s.cache == nil {
		return fetch()
	}

	var summary domain.ItemSummary
	key := summaryCachePrefix + itemID.String()
	err := s.cache.GetOrSet(ctx, key, &summary, func() (interface{}, error) {
		fetched, err := fetch()
		if err != nil {
			return nil, err
		}
		return fetched, nil
	}, s.config.SummaryTTL)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// allocateUnits selects n sellable codes for an item, oldest lot first.
// It never writes: the selected codes are candidates until the reservation
// batch commits them. exclude holds codes already spoken for elsewhere in
// the same checkout. The second return value is the item's total remaining
// units at read time, before these candidates are removed.
func (s *CheckoutService) allocateUnits(ctx context.Context, summary domain.ItemSummary, n int, exclude map[uuid.UUID]bool) ([]domain.ReservedUnit, int, error) {
	lots, err := s.catalog.FindLots(ctx, summary.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("reading lots for item %s: %w", summary.ID, err)
	}
	domain.SortLotsByEntry(lots)

	units := make([]domain.ReservedUnit, 0, n)
	for _, lot := range lots {
		for _, code := range lot.Codes {
			if exclude[code] {
				continue
			}
			units = append(units, domain.ReservedUnit{
				ItemID:   summary.ID,
				Category: summary.Category,
				LotID:    lot.ID,
				Code:     code,
			})
			if len(units) == n {
				return units, domain.TotalCodes(lots), nil
			}
		}
	}
	return nil, domain.TotalCodes(lots), fmt.Errorf("item %s: %w", summary.ID, domain.ErrItemSoldOut)
}
