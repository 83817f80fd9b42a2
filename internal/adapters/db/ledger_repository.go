// internal/adapters/db/ledger_repository.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/nexisretail/nexis-be/internal/core/domain"
	"github.com/nexisretail/nexis-be/internal/core/ports"
)

// ledgerRepository implements ports.LedgerRepository
type ledgerRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *Database, logger *slog.Logger) ports.LedgerRepository {
	return &ledgerRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "ledger")),
	}
}

// AppendSale appends one entry to a store's ledger. Entries are immutable
// once written; there is no update path.
func (r *ledgerRepository) AppendSale(ctx context.Context, entry *domain.SaleEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	itemsJSON, err := json.Marshal(entry.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal sale items: %w", err)
	}

	payment := entry.Payment
	if len(payment) == 0 {
		payment = json.RawMessage(`{}`)
	}

	query := `
		INSERT INTO sale_entries (
			id, store_name, sale_date, client_id, buyer_name, payment, items
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err = r.db.QueryRow(ctx, query,
		entry.ID, entry.StoreName, entry.Date,
		entry.Buyer.ClientID, entry.Buyer.Name,
		payment, itemsJSON,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append sale entry: %w", err)
	}

	r.logger.DebugContext(ctx, "sale entry appended",
		slog.String("entry_id", entry.ID.String()),
		slog.String("store", entry.StoreName),
		slog.Int("items", len(entry.Items)))

	return nil
}

// StoreExists reports whether a store ledger with this name is registered.
func (r *ledgerRepository) StoreExists(ctx context.Context, storeName string) (bool, error) {
	exists, err := r.db.Exists(ctx, "SELECT 1 FROM stores WHERE name = $1", storeName)
	if err != nil {
		return false, fmt.Errorf("failed to check store: %w", err)
	}
	return exists, nil
}

// ListByStore returns a page of a store's ledger, newest first.
func (r *ledgerRepository) ListByStore(ctx context.Context, params ports.LedgerListParams) (*ports.LedgerListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}

	qb := squirrel.Select(
		"id", "store_name", "sale_date", "client_id", "buyer_name",
		"payment", "items", "created_at",
	).
		From("sale_entries").
		Where(squirrel.Eq{"store_name": params.StoreName}).
		PlaceholderFormat(squirrel.Dollar)

	countQB := squirrel.Select("COUNT(*)").
		From("sale_entries").
		Where(squirrel.Eq{"store_name": params.StoreName}).
		PlaceholderFormat(squirrel.Dollar)

	if !params.From.IsZero() {
		qb = qb.Where(squirrel.GtOrEq{"sale_date": params.From})
		countQB = countQB.Where(squirrel.GtOrEq{"sale_date": params.From})
	}
	if !params.To.IsZero() {
		qb = qb.Where(squirrel.Lt{"sale_date": params.To})
		countQB = countQB.Where(squirrel.Lt{"sale_date": params.To})
	}

	countSQL, countArgs, err := countQB.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count sale entries: %w", err)
	}

	qb = qb.OrderBy("sale_date DESC", "created_at DESC").
		Limit(uint64(params.PageSize)).
		Offset(uint64((params.Page - 1) * params.PageSize))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.SaleEntry
	for rows.Next() {
		entry, err := scanSaleEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale entries: %w", err)
	}

	return &ports.LedgerListResult{
		Entries:    entries,
		TotalCount: total,
		Page:       params.Page,
		PageSize:   params.PageSize,
	}, nil
}

func scanSaleEntry(scan func(dest ...any) error) (*domain.SaleEntry, error) {
	var (
		entry     domain.SaleEntry
		clientID  *uuid.UUID
		buyerName *string
		itemsJSON []byte
		payment   []byte
		saleDate  time.Time
	)
	err := scan(
		&entry.ID, &entry.StoreName, &saleDate, &clientID, &buyerName,
		&payment, &itemsJSON, &entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sale entry: %w", err)
	}

	entry.Date = saleDate
	entry.Buyer.ClientID = clientID
	if buyerName != nil {
		entry.Buyer.Name = *buyerName
	}
	entry.Payment = json.RawMessage(payment)
	if err := json.Unmarshal(itemsJSON, &entry.Items); err != nil {
		return nil, fmt.Errorf("failed to decode sale items: %w", err)
	}

	return &entry, nil
}
