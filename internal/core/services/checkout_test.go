// internal/core/services/checkout_test.go
package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nexisretail/nexis-be/internal/core/domain"
	"github.com/nexisretail/nexis-be/internal/core/ports"
	"github.com/nexisretail/nexis-be/internal/core/services"
	"github.com/nexisretail/nexis-be/test/helpers"
	"github.com/nexisretail/nexis-be/test/mocks"
)

func newTestService(t *testing.T, ctrl *gomock.Controller, opts ...func(*testDeps)) (*services.CheckoutService, *testDeps) {
	t.Helper()
	deps := &testDeps{
		catalog: mocks.NewMockCatalogRepository(ctrl),
		ledger:  mocks.NewMockLedgerRepository(ctrl),
		clients: mocks.NewMockClientRepository(ctrl),
	}
	for _, opt := range opts {
		opt(deps)
	}
	// A typed nil mock inside the interface would defeat the service's
	// nil checks for the optional collaborators.
	var cache ports.CacheRepository
	if deps.cache != nil {
		cache = deps.cache
	}
	var tasks ports.TaskEnqueuer
	if deps.tasks != nil {
		tasks = deps.tasks
	}
	svc := services.NewCheckoutService(
		deps.catalog, deps.ledger, deps.clients,
		cache, tasks, nil,
		services.CheckoutConfig{},
		helpers.TestLogger(),
	)
	return svc, deps
}

type testDeps struct {
	catalog *mocks.MockCatalogRepository
	ledger  *mocks.MockLedgerRepository
	clients *mocks.MockClientRepository
	cache   *mocks.MockCacheRepository
	tasks   *mocks.MockTaskEnqueuer
}

// expectAppendSale stamps the generated fields the way the real repository
// does and records which stores were written to.
func expectAppendSale(m *mocks.MockLedgerRepository, times int, stores *[]string, mu *sync.Mutex) {
	m.EXPECT().
		AppendSale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *domain.SaleEntry) error {
			entry.ID = uuid.New()
			entry.CreatedAt = time.Now().UTC()
			mu.Lock()
			*stores = append(*stores, entry.StoreName)
			mu.Unlock()
			return nil
		}).
		Times(times)
}

func TestCheckoutService_Checkout_GroupsEntriesByStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newTestService(t, ctrl, func(d *testDeps) {
		d.tasks = mocks.NewMockTaskEnqueuer(ctrl)
	})

	clientID := uuid.New()
	keyboard := helpers.TestItemSummary()
	coffee := helpers.TestItemSummary(func(s *domain.ItemSummary) {
		s.Name = "Coffee Beans 1kg"
		s.Category = domain.CategoryFood
	})
	keyboardLot := helpers.TestLot(keyboard.ID, 48*time.Hour, 4)
	coffeeLot := helpers.TestLot(coffee.ID, 24*time.Hour, 2)

	deps.catalog.EXPECT().FindSummary(gomock.Any(), keyboard.ID).Return(&keyboard, nil)
	deps.catalog.EXPECT().FindSummary(gomock.Any(), coffee.ID).Return(&coffee, nil)
	deps.catalog.EXPECT().FindLots(gomock.Any(), keyboard.ID).Return([]domain.Lot{keyboardLot}, nil)
	deps.catalog.EXPECT().FindLots(gomock.Any(), coffee.ID).Return([]domain.Lot{coffeeLot}, nil)

	var reserved []domain.ReservedUnit
	deps.catalog.EXPECT().
		ReserveUnits(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, units []domain.ReservedUnit) error {
			reserved = units
			return nil
		})

	var mu sync.Mutex
	var stores []string
	expectAppendSale(deps.ledger, 2, &stores, &mu)
	deps.tasks.EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		Return(&asynq.TaskInfo{}, nil).
		Times(2)

	result, err := svc.Checkout(context.Background(), ports.CheckoutParams{
		ClientID: clientID,
		ItemIDs:  []string{keyboard.ID.String(), coffee.ID.String()},
		Payment:  json.RawMessage(`{"method":"card"}`),
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.Units)
	assert.Len(t, result.Entries, 2)
	assert.Len(t, reserved, 2)
	assert.ElementsMatch(t, []string{"cyberion", "savoro"}, stores)
	assert.Equal(t, 4, result.Remaining[keyboard.ID])
	assert.Equal(t, 2, result.Remaining[coffee.ID])

	for _, entry := range result.Entries {
		assert.NotEqual(t, uuid.Nil, entry.ID)
		require.NotNil(t, entry.Buyer.ClientID)
		assert.Equal(t, clientID, *entry.Buyer.ClientID)
		assert.JSONEq(t, `{"method":"card"}`, string(entry.Payment))
	}
}

func TestCheckoutService_Checkout_ValidatesBeforeStorage(t *testing.T) {
	tests := []struct {
		name    string
		itemIDs []string
	}{
		{name: "empty_item_list", itemIDs: nil},
		{name: "malformed_id", itemIDs: []string{"not-a-uuid"}},
		{name: "malformed_id_among_valid", itemIDs: []string{uuid.NewString(), "???"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No repository expectations: a bad id must abort before any
			// storage call.
			svc, _ := newTestService(t, ctrl)

			result, err := svc.Checkout(context.Background(), ports.CheckoutParams{
				ClientID: uuid.New(),
				ItemIDs:  tt.itemIDs,
			})

			assert.Nil(t, result)
			assert.ErrorIs(t, err, domain.ErrInvalidItemID)
		})
	}
}

func TestCheckoutService_Checkout_UnknownItemAbortsSale(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newTestService(t, ctrl)

	unknown := uuid.New()
	deps.catalog.EXPECT().FindSummary(gomock.Any(), unknown).Return(nil, nil)

	result, err := svc.Checkout(context.Background(), ports.CheckoutParams{
		ClientID: uuid.New(),
		ItemIDs:  []string{unknown.String()},
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestCheckoutService_Checkout_SoldOutBeforeReservation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newTestService(t, ctrl)

	summary := helpers.TestItemSummary()
	empty := helpers.TestLot(summary.ID, time.Hour, 0)

	deps.catalog.EXPECT().FindSummary(gomock.Any(), summary.ID).Return(&summary, nil)
	deps.catalog.EXPECT().FindLots(gomock.Any(), summary.ID).Return([]domain.Lot{empty}, nil)
	// ReserveUnits must not be called: nothing is committed when any item
	// has no sellable unit.

	result, err := svc.Checkout(context.Background(), ports.CheckoutParams{
		ClientID: uuid.New(),
		ItemIDs:  []string{summary.ID.String()},
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrItemSoldOut)
}

func TestCheckoutService_Checkout_DrawsFromOldestLot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newTestService(t, ctrl)

	summary := helpers.TestItemSummary()
	newer := helpers.TestLot(summary.ID, 24*time.Hour, 3)
	oldest := helpers.TestLot(summary.ID, 30*24*time.Hour, 2)

	deps.catalog.EXPECT().FindSummary(gomock.Any(), summary.ID).Return(&summary, nil)
	// Returned newest-first to prove the service orders lots itself.
	deps.catalog.EXPECT().FindLots(gomock.Any(), summary.ID).
		Return([]domain.Lot{newer, oldest}, nil)

	deps.catalog.EXPECT().
		ReserveUnits(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, units []domain.ReservedUnit) error {
			require.Len(t, units, 1)
			assert.Equal(t, oldest.ID, units[0].LotID)
			assert.Equal(t, oldest.Codes[0], units[0].Code)
			return nil
		})

	var mu sync.Mutex
	var stores []string
	expectAppendSale(deps.ledger, 1, &stores, &mu)

	result, err := svc.Checkout(context.Background(), ports.CheckoutParams{
		ClientID: uuid.New(),
		ItemIDs:  []string{summary.ID.String()},
	})

	require.NoError(t, err)
	assert.Equal(t, 5, result.Remaining[summary.ID])
}

func TestCheckoutService_Checkout_DuplicateIDsGetDistinctCodes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newTestService(t, ctrl)

	summary := helpers.TestItemSummary()
	lot := helpers.TestLot(summary.ID, time.Hour, 3)

	// The repeated id is collapsed into one resolution and one lot read.
	deps.catalog.EXPECT().FindSummary(gomock.Any(), summary.ID).Return(&summary, nil)
	deps.catalog.EXPECT().FindLots(gomock.Any(), summary.ID).Return([]domain.Lot{lot}, nil)

	deps.catalog.EXPECT().
		ReserveUnits(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, units []domain.ReservedUnit) error {
			require.Len(t, units, 2)
			assert.NotEqual(t, units[0].Code, units[1].Code)
			return nil
		})

	var mu sync.Mutex
	var stores []string
	expectAppendSale(deps.ledger, 1, &stores, &mu)

	result, err := svc.Checkout(context.Background(), ports.CheckoutParams{
		ClientID: uuid.New(),
		ItemIDs:  []string{summary.ID.String(), summary.ID.String()},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Units)
	require.Len(t, result.Entries, 1)
	assert.Len(t, result.Entries[0].Items, 2)
}

func TestCheckoutService_Checkout_RetriesLostRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newTestService(t, ctrl)

	summary := helpers.TestItemSummary()
	lot := helpers.TestLot(summary.ID, time.Hour, 2)

	deps.catalog.EXPECT().FindSummary(gomock.Any(), summary.ID).Return(&summary, nil)
	// Once for allocation, once for the post-conflict reallocation.
	deps.catalog.EXPECT().FindLots(gomock.Any(), summary.ID).
		Return([]domain.Lot{lot}, nil).
		Times(2)

	var lostCode uuid.UUID
	first := deps.catalog.EXPECT().
		ReserveUnits(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, units []domain.ReservedUnit) error {
			lostCode = units[0].Code
			return &domain.ReservationConflict{Unit: units[0]}
		})
	deps.catalog.EXPECT().
		ReserveUnits(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, units []domain.ReservedUnit) error {
			require.Len(t, units, 1)
			assert.NotEqual(t, lostCode, units[0].Code)
			return nil
		}).
		After(first)

	var mu sync.Mutex
	var stores []string
	expectAppendSale(deps.ledger, 1, &stores, &mu)

	result, err := svc.Checkout(context.Background(), ports.CheckoutParams{
		ClientID: uuid.New(),
		ItemIDs:  []string{summary.ID.String()},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Units)
}

func TestCheckoutService_Checkout_ExhaustedRetriesMeanSoldOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newTestService(t, ctrl)

	summary := helpers.TestItemSummary()
	lot := helpers.TestLot(summary.ID, time.Hour, 5)

	deps.catalog.EXPECT().FindSummary(gomock.Any(), summary.ID).Return(&summary, nil)
	// Initial allocation plus one reallocation per surviving retry.
	deps.catalog.EXPECT().FindLots(gomock.Any(), summary.ID).
		Return([]domain.Lot{lot}, nil).
		Times(3)

	deps.catalog.EXPECT().
		ReserveUnits(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, units []domain.ReservedUnit) error {
			return &domain.ReservationConflict{Unit: units[0]}
		}).
		Times(3)

	result, err := svc.Checkout(context.Background(), ports.CheckoutParams{
		ClientID: uuid.New(),
		ItemIDs:  []string{summary.ID.String()},
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrItemSoldOut)
}

func TestCheckoutService_Checkout_PartialLedgerFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newTestService(t, ctrl)

	keyboard := helpers.TestItemSummary()
	book := helpers.TestItemSummary(func(s *domain.ItemSummary) {
		s.Name = "The Go Programming Language"
		s.Category = domain.CategoryLibrary
	})
	keyboardLot := helpers.TestLot(keyboard.ID, time.Hour, 1)
	bookLot := helpers.TestLot(book.ID, time.Hour, 1)

	deps.catalog.EXPECT().FindSummary(gomock.Any(), keyboard.ID).Return(&keyboard, nil)
	deps.catalog.EXPECT().FindSummary(gomock.Any(), book.ID).Return(&book, nil)
	deps.catalog.EXPECT().FindLots(gomock.Any(), keyboard.ID).Return([]domain.Lot{keyboardLot}, nil)
	deps.catalog.EXPECT().FindLots(gomock.Any(), book.ID).Return([]domain.Lot{bookLot}, nil)
	deps.catalog.EXPECT().ReserveUnits(gomock.Any(), gomock.Any()).Return(nil)

	deps.ledger.EXPECT().
		AppendSale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *domain.SaleEntry) error {
			if entry.StoreName == "vesti" {
				return errors.New("connection reset")
			}
			entry.ID = uuid.New()
			entry.CreatedAt = time.Now().UTC()
			return nil
		}).
		Times(2)

	result, err := svc.Checkout(context.Background(), ports.CheckoutParams{
		ClientID: uuid.New(),
		ItemIDs:  []string{keyboard.ID.String(), book.ID.String()},
	})

	assert.ErrorIs(t, err, domain.ErrLedgerWrite)
	// The reservation is committed, so the surviving entries are still
	// reported alongside the error.
	require.NotNil(t, result)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "cyberion", result.Entries[0].StoreName)
	assert.Equal(t, 2, result.Units)
}

func TestCheckoutService_CartCheckout(t *testing.T) {
	summary := helpers.TestItemSummary()

	tests := []struct {
		name          string
		setupMocks    func(*testDeps)
		expectedError error
		expectResult  bool
	}{
		{
			name: "empty_cart",
			setupMocks: func(d *testDeps) {
				d.clients.EXPECT().FindCart(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			expectedError: domain.ErrEmptyCart,
		},
		{
			name: "unknown_client",
			setupMocks: func(d *testDeps) {
				d.clients.EXPECT().FindCart(gomock.Any(), gomock.Any()).
					Return([]uuid.UUID{}, nil)
			},
			expectedError: domain.ErrEmptyCart,
		},
		{
			name: "clears_cart_after_sale",
			setupMocks: func(d *testDeps) {
				lot := helpers.TestLot(summary.ID, time.Hour, 1)
				d.clients.EXPECT().FindCart(gomock.Any(), gomock.Any()).
					Return([]uuid.UUID{summary.ID}, nil)
				d.catalog.EXPECT().FindSummary(gomock.Any(), summary.ID).Return(&summary, nil)
				d.catalog.EXPECT().FindLots(gomock.Any(), summary.ID).Return([]domain.Lot{lot}, nil)
				d.catalog.EXPECT().ReserveUnits(gomock.Any(), gomock.Any()).Return(nil)
				d.ledger.EXPECT().AppendSale(gomock.Any(), gomock.Any()).Return(nil)
				d.clients.EXPECT().ClearCart(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectResult: true,
		},
		{
			name: "clear_failure_does_not_undo_sale",
			setupMocks: func(d *testDeps) {
				lot := helpers.TestLot(summary.ID, time.Hour, 1)
				d.clients.EXPECT().FindCart(gomock.Any(), gomock.Any()).
					Return([]uuid.UUID{summary.ID}, nil)
				d.catalog.EXPECT().FindSummary(gomock.Any(), summary.ID).Return(&summary, nil)
				d.catalog.EXPECT().FindLots(gomock.Any(), summary.ID).Return([]domain.Lot{lot}, nil)
				d.catalog.EXPECT().ReserveUnits(gomock.Any(), gomock.Any()).Return(nil)
				d.ledger.EXPECT().AppendSale(gomock.Any(), gomock.Any()).Return(nil)
				d.clients.EXPECT().ClearCart(gomock.Any(), gomock.Any()).
					Return(errors.New("client row locked"))
			},
			expectResult: true,
		},
		{
			name: "cart_is_not_cleared_when_sale_fails",
			setupMocks: func(d *testDeps) {
				d.clients.EXPECT().FindCart(gomock.Any(), gomock.Any()).
					Return([]uuid.UUID{summary.ID}, nil)
				d.catalog.EXPECT().FindSummary(gomock.Any(), summary.ID).Return(&summary, nil)
				d.catalog.EXPECT().FindLots(gomock.Any(), summary.ID).
					Return([]domain.Lot{helpers.TestLot(summary.ID, time.Hour, 0)}, nil)
			},
			expectedError: domain.ErrItemSoldOut,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, deps := newTestService(t, ctrl)
			tt.setupMocks(deps)

			result, err := svc.CartCheckout(context.Background(), ports.CartCheckoutParams{
				ClientID: uuid.New(),
			})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			if tt.expectResult {
				require.NotNil(t, result)
				assert.Equal(t, 1, result.Units)
			}
		})
	}
}

func TestCheckoutService_EmployeeCheckout(t *testing.T) {
	t.Run("unknown_store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestService(t, ctrl)
		deps.ledger.EXPECT().StoreExists(gomock.Any(), "nowhere").Return(false, nil)

		result, err := svc.EmployeeCheckout(context.Background(), ports.EmployeeCheckoutParams{
			OperatorID: uuid.New(),
			StoreName:  "nowhere",
			ItemIDs:    []string{uuid.NewString()},
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrUnknownStore)
	})

	t.Run("whole_sale_lands_on_operator_store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestService(t, ctrl)

		// A food item sold at cyberion: the operator's store wins over the
		// category directory for walk-in sales.
		summary := helpers.TestItemSummary(func(s *domain.ItemSummary) {
			s.Category = domain.CategoryFood
		})
		lot := helpers.TestLot(summary.ID, time.Hour, 2)

		deps.ledger.EXPECT().StoreExists(gomock.Any(), "cyberion").Return(true, nil)
		deps.catalog.EXPECT().FindSummary(gomock.Any(), summary.ID).Return(&summary, nil)
		deps.catalog.EXPECT().FindLots(gomock.Any(), summary.ID).Return([]domain.Lot{lot}, nil)
		deps.catalog.EXPECT().ReserveUnits(gomock.Any(), gomock.Any()).Return(nil)
		deps.ledger.EXPECT().
			AppendSale(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *domain.SaleEntry) error {
				assert.Equal(t, "cyberion", entry.StoreName)
				assert.Equal(t, "Walk-in Buyer", entry.Buyer.Name)
				assert.Nil(t, entry.Buyer.ClientID)
				entry.ID = uuid.New()
				return nil
			})

		result, err := svc.EmployeeCheckout(context.Background(), ports.EmployeeCheckoutParams{
			OperatorID: uuid.New(),
			StoreName:  "cyberion",
			BuyerName:  "Walk-in Buyer",
			ItemIDs:    []string{summary.ID.String()},
		})

		require.NoError(t, err)
		require.Len(t, result.Entries, 1)
		assert.Equal(t, 1, result.Units)
	})

	t.Run("ledger_failure_after_reservation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestService(t, ctrl)

		summary := helpers.TestItemSummary()
		lot := helpers.TestLot(summary.ID, time.Hour, 1)

		deps.ledger.EXPECT().StoreExists(gomock.Any(), "cyberion").Return(true, nil)
		deps.catalog.EXPECT().FindSummary(gomock.Any(), summary.ID).Return(&summary, nil)
		deps.catalog.EXPECT().FindLots(gomock.Any(), summary.ID).Return([]domain.Lot{lot}, nil)
		deps.catalog.EXPECT().ReserveUnits(gomock.Any(), gomock.Any()).Return(nil)
		deps.ledger.EXPECT().
			AppendSale(gomock.Any(), gomock.Any()).
			Return(errors.New("disk full"))

		result, err := svc.EmployeeCheckout(context.Background(), ports.EmployeeCheckoutParams{
			OperatorID: uuid.New(),
			StoreName:  "cyberion",
			ItemIDs:    []string{summary.ID.String()},
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrLedgerWrite)
	})
}

func TestCheckoutService_Availability(t *testing.T) {
	t.Run("counts_codes_across_lots", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestService(t, ctrl)

		summary := helpers.TestItemSummary()
		lots := []domain.Lot{
			helpers.TestLot(summary.ID, 48*time.Hour, 3),
			helpers.TestLot(summary.ID, time.Hour, 2),
			helpers.TestLot(summary.ID, 24*time.Hour, 0),
		}

		deps.catalog.EXPECT().FindSummary(gomock.Any(), summary.ID).Return(&summary, nil)
		deps.catalog.EXPECT().FindLots(gomock.Any(), summary.ID).Return(lots, nil)

		availability, err := svc.Availability(context.Background(), summary.ID)

		require.NoError(t, err)
		assert.Equal(t, summary.ID, availability.Item.ID)
		assert.Equal(t, 5, availability.Remaining)
	})

	t.Run("unknown_item", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestService(t, ctrl)

		itemID := uuid.New()
		deps.catalog.EXPECT().FindSummary(gomock.Any(), itemID).Return(nil, nil)

		availability, err := svc.Availability(context.Background(), itemID)

		assert.Nil(t, availability)
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("reads_summary_through_cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestService(t, ctrl, func(d *testDeps) {
			d.cache = mocks.NewMockCacheRepository(ctrl)
		})

		summary := helpers.TestItemSummary()

		deps.cache.EXPECT().
			GetOrSet(gomock.Any(), "item:summary:"+summary.ID.String(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dest interface{}, fetch func() (interface{}, error), _ time.Duration) error {
				fetched, err := fetch()
				if err != nil {
					return err
				}
				*dest.(*domain.ItemSummary) = *fetched.(*domain.ItemSummary)
				return nil
			})
		deps.catalog.EXPECT().FindSummary(gomock.Any(), summary.ID).Return(&summary, nil)
		deps.catalog.EXPECT().FindLots(gomock.Any(), summary.ID).Return(nil, nil)

		availability, err := svc.Availability(context.Background(), summary.ID)

		require.NoError(t, err)
		assert.Equal(t, summary.Name, availability.Item.Name)
		assert.Equal(t, 0, availability.Remaining)
	})
}
