// internal/core/domain/sale.go
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ReservedUnit identifies one stock unit earmarked for sale: the item it
// belongs to, the lot it came from, and the unit code itself. It only
// becomes a committed reservation once the code has been pulled from its
// lot by the conditional update in the catalog repository.
type ReservedUnit struct {
	ItemID   uuid.UUID    `json:"item_id"`
	Category ItemCategory `json:"category"`
	LotID    uuid.UUID    `json:"lot_id"`
	Code     uuid.UUID    `json:"code"`
}

// Buyer references whoever the sale was made to. Registered clients are
// referenced by id; walk-in sales recorded by an employee carry only a
// display name.
type Buyer struct {
	ClientID *uuid.UUID `json:"client_id,omitempty"`
	Name     string     `json:"name,omitempty"`
}

// SaleEntry is one append-only record in a store's ledger. Entries are
// created once at checkout completion and never mutated or deleted.
type SaleEntry struct {
	ID        uuid.UUID       `json:"id"`
	StoreName string          `json:"store_name"`
	Date      time.Time       `json:"date"`
	Buyer     Buyer           `json:"buyer"`
	Payment   json.RawMessage `json:"payment,omitempty"` // opaque, recorded as received
	Items     []ReservedUnit  `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
}

// StoreDirectory maps each item category to the store that owns it. It is
// injected into the checkout service at construction; there is no
// process-wide table.
type StoreDirectory map[ItemCategory]string

// DefaultStoreDirectory mirrors the retail group's standing assignment of
// categories to stores.
func DefaultStoreDirectory() StoreDirectory {
	return StoreDirectory{
		CategoryTech:         "cyberion",
		CategoryTechCPU:      "cyberion",
		CategoryTechGPU:      "cyberion",
		CategoryTechKeyboard: "cyberion",
		CategoryTechOther:    "cyberion",
		CategoryFood:         "savoro",
		CategoryClothes:      "savoro",
		CategoryLibrary:      "vesti",
	}
}

// StoreFor returns the store owning a category, or "" when the category is
// not assigned to any store.
func (d StoreDirectory) StoreFor(category ItemCategory) string {
	return d[category]
}

// Stores returns the distinct store names in the directory.
func (d StoreDirectory) Stores() []string {
	seen := make(map[string]struct{}, len(d))
	var names []string
	for _, s := range d {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			names = append(names, s)
		}
	}
	return names
}
