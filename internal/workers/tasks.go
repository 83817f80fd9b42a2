// internal/workers/tasks.go
package workers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/nexisretail/nexis-be/internal/core/domain"
)

// Task type names. Queue routing in cmd/worker keys off these.
const (
	TypeSaleRecorded = "sale:recorded"
	TypeLotPrune     = "lots:prune"
)

// SaleRecordedPayload is the analytics handoff for a committed sale entry.
// It carries identifiers and counts, never buyer or payment detail.
type SaleRecordedPayload struct {
	EntryID   uuid.UUID `json:"entry_id"`
	StoreName string    `json:"store_name"`
	Date      time.Time `json:"date"`
	Units     int       `json:"units"`
}

// NewSaleRecordedTask builds the background task emitted after a sale entry
// lands in a store ledger.
func NewSaleRecordedTask(entry *domain.SaleEntry) (*asynq.Task, error) {
	payload, err := json.Marshal(SaleRecordedPayload{
		EntryID:   entry.ID,
		StoreName: entry.StoreName,
		Date:      entry.Date,
		Units:     len(entry.Items),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sale payload: %w", err)
	}
	return asynq.NewTask(TypeSaleRecorded, payload, asynq.Queue("analytics")), nil
}

// LotPrunePayload parameterizes the periodic sweep of emptied lots.
type LotPrunePayload struct {
	OlderThan time.Duration `json:"older_than"`
}

// NewLotPruneTask builds the periodic task that removes lots whose codes
// have all been sold.
func NewLotPruneTask(olderThan time.Duration) (*asynq.Task, error) {
	payload, err := json.Marshal(LotPrunePayload{OlderThan: olderThan})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prune payload: %w", err)
	}
	return asynq.NewTask(TypeLotPrune, payload, asynq.Queue("maintenance")), nil
}
