// internal/workers/analytics_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/nexisretail/nexis-be/internal/core/ports"
)

// AnalyticsProcessor folds committed sales into the per-store daily rollup.
type AnalyticsProcessor struct {
	db     ports.Database
	logger *slog.Logger
}

// NewAnalyticsProcessor creates a new analytics processor.
func NewAnalyticsProcessor(db ports.Database, logger *slog.Logger) *AnalyticsProcessor {
	return &AnalyticsProcessor{
		db:     db,
		logger: logger.With(slog.String("processor", "analytics")),
	}
}

// HandleSaleRecorded bumps the store's daily counters for one sale entry.
// The upsert is idempotent per entry only because asynq delivers each task
// once on success; a retried task re-runs after a handler error, which is
// safe since the previous attempt rolled back.
func (p *AnalyticsProcessor) HandleSaleRecorded(ctx context.Context, t *asynq.Task) error {
	var payload SaleRecordedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal sale payload: %w", err)
	}

	query := `
		INSERT INTO store_daily_sales (store_name, day, entries, units)
		VALUES ($1, $2::date, 1, $3)
		ON CONFLICT (store_name, day)
		DO UPDATE SET entries = store_daily_sales.entries + 1,
		              units   = store_daily_sales.units + EXCLUDED.units,
		              updated_at = NOW()`

	if _, err := p.db.Exec(ctx, query, payload.StoreName, payload.Date, payload.Units); err != nil {
		return fmt.Errorf("failed to update daily rollup: %w", err)
	}

	p.logger.InfoContext(ctx, "daily rollup updated",
		slog.String("store", payload.StoreName),
		slog.String("entry_id", payload.EntryID.String()),
		slog.Int("units", payload.Units))

	return nil
}
