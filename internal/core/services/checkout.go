// internal/core/services/checkout.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nexisretail/nexis-be/internal/core/domain"
	"github.com/nexisretail/nexis-be/internal/core/ports"
	"github.com/nexisretail/nexis-be/internal/workers"
)

// CheckoutConfig carries the engine's tunables. The fan-out caps bound
// storage-layer load; correctness never depends on them.
type CheckoutConfig struct {
	// ItemConcurrency caps concurrent per-item resolution+allocation.
	ItemConcurrency int
	// StoreConcurrency caps concurrent per-store ledger writes.
	StoreConcurrency int
	// ReserveRetries is how many times a lost reservation race re-enters
	// allocation before the affected item is treated as sold out.
	ReserveRetries int
	// SummaryTTL bounds how long resolved item summaries stay cached.
	SummaryTTL time.Duration
}

func (c *CheckoutConfig) withDefaults() {
	if c.ItemConcurrency <= 0 {
		c.ItemConcurrency = 10
	}
	if c.StoreConcurrency <= 0 {
		c.StoreConcurrency = 5
	}
	if c.ReserveRetries <= 0 {
		c.ReserveRetries = 3
	}
	if c.SummaryTTL <= 0 {
		c.SummaryTTL = 15 * time.Minute
	}
}

// CheckoutService implements the reservation and sale-recording engine. It
// holds no locks: the catalog repository's conditional update is the only
// synchronization point, so checkouts may run across replicas.
type CheckoutService struct {
	catalog   ports.CatalogRepository
	ledger    ports.LedgerRepository
	clients   ports.ClientRepository
	cache     ports.CacheRepository // optional
	tasks     ports.TaskEnqueuer    // optional
	directory domain.StoreDirectory
	config    CheckoutConfig
	logger    *slog.Logger
}

// Statically assert that *CheckoutService implements the service port.
var _ ports.CheckoutService = (*CheckoutService)(nil)

// NewCheckoutService creates a new checkout service. cache and tasks may be
// nil; the engine then resolves summaries directly from storage and skips
// background task handoff.
func NewCheckoutService(
	catalog ports.CatalogRepository,
	ledger ports.LedgerRepository,
	clients ports.ClientRepository,
	cache ports.CacheRepository,
	tasks ports.TaskEnqueuer,
	directory domain.StoreDirectory,
	config CheckoutConfig,
	logger *slog.Logger,
) *CheckoutService {
	config.withDefaults()
	if directory == nil {
		directory = domain.DefaultStoreDirectory()
	}
	return &CheckoutService{
		catalog:   catalog,
		ledger:    ledger,
		clients:   clients,
		cache:     cache,
		tasks:     tasks,
		directory: directory,
		config:    config,
		logger:    logger.With(slog.String("service", "checkout")),
	}
}

// Checkout sells an explicit list of item ids to a registered client.
func (s *CheckoutService) Checkout(ctx context.Context, params ports.CheckoutParams) (*ports.CheckoutResult, error) {
	ids, err := parseItemIDs(params.ItemIDs)
	if err != nil {
		return nil, err
	}

	units, remaining, err := s.reserveAll(ctx, ids)
	if err != nil {
		return nil, err
	}

	buyer := domain.Buyer{ClientID: &params.ClientID}
	entries, err := s.recordByStore(ctx, buyer, params.Payment, units)
	result := &ports.CheckoutResult{Entries: entries, Units: len(units), Remaining: remaining}
	if err != nil {
		return result, err
	}

	s.logger.InfoContext(ctx, "checkout complete",
		slog.String("client_id", params.ClientID.String()),
		slog.Int("units", len(units)),
		slog.Int("stores", len(entries)))

	return result, nil
}

// CartCheckout sells the client's saved cart, then clears it.
func (s *CheckoutService) CartCheckout(ctx context.Context, params ports.CartCheckoutParams) (*ports.CheckoutResult, error) {
	cart, err := s.clients.FindCart(ctx, params.ClientID)
	if err != nil {
		return nil, fmt.Errorf("reading cart: %w", err)
	}
	if len(cart) == 0 {
		return nil, fmt.Errorf("client %s: %w", params.ClientID, domain.ErrEmptyCart)
	}

	units, remaining, err := s.reserveAll(ctx, cart)
	if err != nil {
		return nil, err
	}

	buyer := domain.Buyer{ClientID: &params.ClientID}
	entries, err := s.recordByStore(ctx, buyer, params.Payment, units)
	result := &ports.CheckoutResult{Entries: entries, Units: len(units), Remaining: remaining}
	if err != nil {
		return result, err
	}

	if err := s.clients.ClearCart(ctx, params.ClientID); err != nil {
		// The sale is committed and recorded; a stale cart is an
		// operational wrinkle, not a checkout failure.
		s.logger.ErrorContext(ctx, "failed to clear cart after checkout",
			slog.String("client_id", params.ClientID.String()),
			slog.String("error", err.Error()))
	}

	s.logger.InfoContext(ctx, "cart checkout complete",
		slog.String("client_id", params.ClientID.String()),
		slog.Int("units", len(units)))

	return result, nil
}

// EmployeeCheckout records a walk-in sale against the operator's store. The
// store and buyer name come from the external session component and are
// trusted as given.
func (s *CheckoutService) EmployeeCheckout(ctx context.Context, params ports.EmployeeCheckoutParams) (*ports.CheckoutResult, error) {
	known, err := s.ledger.StoreExists(ctx, params.StoreName)
	if err != nil {
		return nil, fmt.Errorf("checking store: %w", err)
	}
	if !known {
		return nil, fmt.Errorf("store %q: %w", params.StoreName, domain.ErrUnknownStore)
	}

	ids, err := parseItemIDs(params.ItemIDs)
	if err != nil {
		return nil, err
	}

	units, remaining, err := s.reserveAll(ctx, ids)
	if err != nil {
		return nil, err
	}

	// The operator already names the store, so the whole sale lands on one
	// ledger without per-store grouping.
	entry := domain.SaleEntry{
		StoreName: params.StoreName,
		Date:      time.Now().UTC(),
		Buyer:     domain.Buyer{Name: params.BuyerName},
		Payment:   params.Payment,
		Items:     units,
	}
	if err := s.ledger.AppendSale(ctx, &entry); err != nil {
		s.logger.ErrorContext(ctx, "ledger append failed after reservation",
			slog.String("store", params.StoreName),
			slog.Int("units", len(units)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("store %q: %w", params.StoreName, domain.ErrLedgerWrite)
	}
	s.enqueueSaleRecorded(ctx, &entry)

	s.logger.InfoContext(ctx, "employee checkout complete",
		slog.String("operator_id", params.OperatorID.String()),
		slog.String("store", params.StoreName),
		slog.Int("units", len(units)))

	return &ports.CheckoutResult{
		Entries:   []domain.SaleEntry{entry},
		Units:     len(units),
		Remaining: remaining,
	}, nil
}

// Availability reports an item's summary and the advisory count of units
// still sellable. Point-in-time snapshot only.
func (s *CheckoutService) Availability(ctx context.Context, itemID uuid.UUID) (*ports.ItemAvailability, error) {
	summary, err := s.resolveSummary(ctx, itemID)
	if err != nil {
		return nil, err
	}
	lots, err := s.catalog.FindLots(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("reading lots: %w", err)
	}
	return &ports.ItemAvailability{
		Item:      *summary,
		Remaining: domain.TotalCodes(lots),
	}, nil
}

// reserveAll resolves, allocates and commits one unit per requested id
// (ids may repeat). Nothing is committed unless every unit is: allocation
// is read-only and the reservation batch runs in one transaction. The
// returned map carries the advisory pre-reservation availability per item.
func (s *CheckoutService) reserveAll(ctx context.Context, ids []uuid.UUID) ([]domain.ReservedUnit, map[uuid.UUID]int, error) {
	type allocation struct {
		summary domain.ItemSummary
		units   []domain.ReservedUnit
	}

	counts, order := countItems(ids)
	allocs := make(map[uuid.UUID]*allocation, len(order))
	remaining := make(map[uuid.UUID]int, len(order))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.ItemConcurrency)
	results := make([]*allocation, len(order))
	remainders := make([]int, len(order))
	for i, itemID := range order {
		g.Go(func() error {
			summary, err := s.resolveSummary(gctx, itemID)
			if err != nil {
				return err
			}
			units, left, err := s.allocateUnits(gctx, *summary, counts[itemID], nil)
			if err != nil {
				return err
			}
			results[i] = &allocation{summary: *summary, units: units}
			remainders[i] = left
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	for i, itemID := range order {
		allocs[itemID] = results[i]
		remaining[itemID] = remainders[i]
	}

	units := make([]domain.ReservedUnit, 0, len(ids))
	for _, itemID := range order {
		units = append(units, allocs[itemID].units...)
	}

	// Commit phase. A lost race rolls the whole batch back; the affected
	// item re-enters allocation with a fresh candidate, everything else
	// keeps its candidate for the next attempt.
	for attempt := 0; ; attempt++ {
		err := s.catalog.ReserveUnits(ctx, units)
		if err == nil {
			return units, remaining, nil
		}

		var conflict *domain.ReservationConflict
		if !errors.As(err, &conflict) {
			return nil, nil, fmt.Errorf("reserving units: %w", err)
		}

		itemID := conflict.Unit.ItemID
		s.logger.DebugContext(ctx, "reservation race lost, reallocating",
			slog.String("item_id", itemID.String()),
			slog.String("code", conflict.Unit.Code.String()),
			slog.Int("attempt", attempt+1))

		if attempt+1 >= s.config.ReserveRetries {
			return nil, nil, fmt.Errorf("item %s lost %d reservation races: %w",
				itemID, attempt+1, domain.ErrItemSoldOut)
		}

		replacement, err := s.reallocate(ctx, allocs[itemID].summary, units, conflict.Unit)
		if err != nil {
			return nil, nil, err
		}
		for i := range units {
			if units[i] == conflict.Unit {
				units[i] = replacement
				break
			}
		}
	}
}

// reallocate picks a fresh candidate for an item whose unit lost its race,
// steering clear of codes already earmarked for sibling units of the same
// item in this checkout.
func (s *CheckoutService) reallocate(ctx context.Context, summary domain.ItemSummary, units []domain.ReservedUnit, lost domain.ReservedUnit) (domain.ReservedUnit, error) {
	exclude := make(map[uuid.UUID]bool)
	exclude[lost.Code] = true
	for _, u := range units {
		if u.ItemID == lost.ItemID && u != lost {
			exclude[u.Code] = true
		}
	}
	fresh, _, err := s.allocateUnits(ctx, summary, 1, exclude)
	if err != nil {
		return domain.ReservedUnit{}, err
	}
	return fresh[0], nil
}

// recordByStore groups committed units by owning store and appends one sale
// entry per store. Per-store writes are independent: one store's failure is
// logged and reported but never blocks or rolls back another's.
func (s *CheckoutService) recordByStore(ctx context.Context, buyer domain.Buyer, payment json.RawMessage, units []domain.ReservedUnit) ([]domain.SaleEntry, error) {
	byStore := make(map[string][]domain.ReservedUnit)
	for _, u := range units {
		store := s.directory.StoreFor(u.Category)
		if store == "" {
			return nil, fmt.Errorf("no store owns category %q", u.Category)
		}
		byStore[store] = append(byStore[store], u)
	}

	date := time.Now().UTC()
	entries := make([]domain.SaleEntry, 0, len(byStore))
	var failed []string

	// Plain errgroup without shared context: a failed store write must not
	// cancel the others.
	var g errgroup.Group
	g.SetLimit(s.config.StoreConcurrency)
	type outcome struct {
		entry domain.SaleEntry
		err   error
	}
	outcomes := make([]outcome, len(byStore))
	i := 0
	for store, storeUnits := range byStore {
		idx := i
		i++
		g.Go(func() error {
			entry := domain.SaleEntry{
				StoreName: store,
				Date:      date,
				Buyer:     buyer,
				Payment:   payment,
				Items:     storeUnits,
			}
			if err := s.ledger.AppendSale(ctx, &entry); err != nil {
				s.logger.ErrorContext(ctx, "ledger append failed after reservation",
					slog.String("store", store),
					slog.Int("units", len(storeUnits)),
					slog.String("error", err.Error()))
				outcomes[idx] = outcome{err: fmt.Errorf("store %q: %w", store, err)}
				return nil
			}
			outcomes[idx] = outcome{entry: entry}
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range outcomes {
		if o.err != nil {
			failed = append(failed, o.err.Error())
			continue
		}
		entries = append(entries, o.entry)
		s.enqueueSaleRecorded(ctx, &o.entry)
	}

	if len(failed) > 0 {
		return entries, fmt.Errorf("%d of %d stores failed (%v): %w",
			len(failed), len(byStore), failed, domain.ErrLedgerWrite)
	}
	return entries, nil
}

// enqueueSaleRecorded hands the committed sale to the background worker.
// Best effort: a queue hiccup never fails a recorded sale.
func (s *CheckoutService) enqueueSaleRecorded(ctx context.Context, entry *domain.SaleEntry) {
	if s.tasks == nil {
		return
	}
	task, err := workers.NewSaleRecordedTask(entry)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to build sale task",
			slog.String("error", err.Error()))
		return
	}
	if _, err := s.tasks.Enqueue(ctx, task); err != nil {
		s.logger.ErrorContext(ctx, "failed to enqueue sale task",
			slog.String("store", entry.StoreName),
			slog.String("error", err.Error()))
	}
}

// parseItemIDs validates the whole request up front; one malformed id
// aborts the checkout before any storage work.
func parseItemIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("no items requested: %w", domain.ErrInvalidItemID)
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", r, domain.ErrInvalidItemID)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// countItems collapses repeated ids into multiplicities, preserving first
// appearance order.
func countItems(ids []uuid.UUID) (map[uuid.UUID]int, []uuid.UUID) {
	counts := make(map[uuid.UUID]int, len(ids))
	order := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}
	return counts, order
}
