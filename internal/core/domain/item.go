// internal/core/domain/item.go
package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemCategory represents catalog item categories
type ItemCategory string

// Category constants
const (
	CategoryTech         ItemCategory = "tech"
	CategoryTechCPU      ItemCategory = "tech_cpu"
	CategoryTechGPU      ItemCategory = "tech_gpu"
	CategoryTechKeyboard ItemCategory = "tech_keyboard"
	CategoryTechOther    ItemCategory = "tech_other"
	CategoryFood         ItemCategory = "food"
	CategoryClothes      ItemCategory = "clothes"
	CategoryLibrary      ItemCategory = "library"
)

// Categories lists every known catalog category.
func Categories() []ItemCategory {
	return []ItemCategory{
		CategoryTech, CategoryTechCPU, CategoryTechGPU,
		CategoryTechKeyboard, CategoryTechOther,
		CategoryFood, CategoryClothes, CategoryLibrary,
	}
}

// ItemSummary is the lightweight projection kept in the global item index.
// It resolves a bare item id to its category and display attributes without
// materializing the item's lots.
type ItemSummary struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Category ItemCategory    `json:"category"`
	Price    decimal.Decimal `json:"price"`
	// PricePerKg is set for items sold by weight (food); nil otherwise.
	PricePerKg *decimal.Decimal `json:"price_per_kg,omitempty"`
}

// Lot is a received batch of stock for one catalog item. Codes identifies
// the physically sellable units still in the batch; a code belongs to at
// most one lot, at most once, at any time.
type Lot struct {
	ID        uuid.UUID   `json:"id"`
	ItemID    uuid.UUID   `json:"item_id"`
	EnteredAt time.Time   `json:"entered_at"`
	Codes     []uuid.UUID `json:"codes"`
}

// SortLotsByEntry orders lots oldest-first for FIFO depletion. Ties are
// broken arbitrarily; each lot is a distinct batch so the order between
// equal timestamps carries no meaning.
func SortLotsByEntry(lots []Lot) {
	sort.SliceStable(lots, func(i, j int) bool {
		return lots[i].EnteredAt.Before(lots[j].EnteredAt)
	})
}

// TotalCodes returns the number of sellable units across all lots.
func TotalCodes(lots []Lot) int {
	var n int
	for i := range lots {
		n += len(lots[i].Codes)
	}
	return n
}
