// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/nexisretail/nexis-be/internal/core/ports"
)

// CleanupProcessor handles periodic storage maintenance.
type CleanupProcessor struct {
	catalog ports.CatalogRepository
	logger  *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor.
func NewCleanupProcessor(catalog ports.CatalogRepository, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		catalog: catalog,
		logger:  logger.With(slog.String("processor", "cleanup")),
	}
}

// HandlePrune removes lots whose codes have all been sold. Emptied lots
// linger briefly so in-flight allocations observing them fail cleanly on
// reservation instead of on a vanished row.
func (p *CleanupProcessor) HandlePrune(ctx context.Context, t *asynq.Task) error {
	payload := LotPrunePayload{OlderThan: 24 * time.Hour}
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal prune payload: %w", err)
		}
	}

	pruned, err := p.catalog.PruneEmptyLots(ctx, payload.OlderThan)
	if err != nil {
		return fmt.Errorf("failed to prune lots: %w", err)
	}

	p.logger.InfoContext(ctx, "empty lots pruned",
		slog.Int64("lots_deleted", pruned),
		slog.Duration("older_than", payload.OlderThan))

	return nil
}
