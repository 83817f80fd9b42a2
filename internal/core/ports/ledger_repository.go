// internal/core/ports/ledger_repository.go
package ports

import (
	"context"
	"time"

	"github.com/nexisretail/nexis-be/internal/core/domain"
)

// LedgerRepository is the persistence port for store ledgers. Sale entries
// are append-only; there is no update or delete.
type LedgerRepository interface {
	// AppendSale appends one entry to the owning store's ledger and fills
	// in the entry's generated id and created_at.
	AppendSale(ctx context.Context, entry *domain.SaleEntry) error

	// StoreExists reports whether a store is known.
	StoreExists(ctx context.Context, name string) (bool, error)

	// ListByStore returns a store's ledger page, newest first.
	ListByStore(ctx context.Context, params LedgerListParams) (*LedgerListResult, error)
}

// LedgerListParams filters a store's ledger. Zero From/To means unbounded.
type LedgerListParams struct {
	StoreName string
	From      time.Time
	To        time.Time
	Page      int
	PageSize  int
}

// LedgerListResult holds one page of a store's ledger.
type LedgerListResult struct {
	Entries    []domain.SaleEntry `json:"entries"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalCount int64              `json:"total_count"`
}
