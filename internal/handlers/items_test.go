// internal/handlers/items_test.go
package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nexisretail/nexis-be/internal/core/domain"
	"github.com/nexisretail/nexis-be/internal/core/ports"
	"github.com/nexisretail/nexis-be/internal/handlers"
	"github.com/nexisretail/nexis-be/test/helpers"
	"github.com/nexisretail/nexis-be/test/mocks"
)

func availabilityRequest(itemID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/"+itemID+"/availability", nil)
	req.SetPathValue("id", itemID)
	return req
}

func TestItemHandler_GetAvailability(t *testing.T) {
	summary := helpers.TestItemSummary()

	tests := []struct {
		name           string
		itemID         string
		setupMocks     func(*mocks.MockCheckoutService)
		expectedStatus int
	}{
		{
			name:   "returns_availability",
			itemID: summary.ID.String(),
			setupMocks: func(m *mocks.MockCheckoutService) {
				m.EXPECT().
					Availability(gomock.Any(), summary.ID).
					Return(&ports.ItemAvailability{Item: summary, Remaining: 7}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed_id",
			itemID:         "not-a-uuid",
			setupMocks:     func(m *mocks.MockCheckoutService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown_item",
			itemID: summary.ID.String(),
			setupMocks: func(m *mocks.MockCheckoutService) {
				m.EXPECT().
					Availability(gomock.Any(), summary.ID).
					Return(nil, fmt.Errorf("item %s: %w", summary.ID, domain.ErrItemNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := mocks.NewMockCheckoutService(ctrl)
			tt.setupMocks(service)

			handler := handlers.NewItemHandler(service, helpers.TestLogger())
			rec := httptest.NewRecorder()

			handler.GetAvailability(rec, availabilityRequest(tt.itemID))

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusOK {
				var got ports.ItemAvailability
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, summary.ID, got.Item.ID)
				assert.Equal(t, 7, got.Remaining)
			}
		})
	}
}

func TestStoreHandler_ListSales(t *testing.T) {
	t.Run("unknown_store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ledger := mocks.NewMockLedgerRepository(ctrl)
		ledger.EXPECT().StoreExists(gomock.Any(), "nowhere").Return(false, nil)

		handler := handlers.NewStoreHandler(ledger, helpers.TestLogger())
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stores/nowhere/sales", nil)
		req.SetPathValue("store", "nowhere")

		handler.ListSales(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("passes_pagination_and_date_filters", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ledger := mocks.NewMockLedgerRepository(ctrl)
		ledger.EXPECT().StoreExists(gomock.Any(), "cyberion").Return(true, nil)
		ledger.EXPECT().
			ListByStore(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, params ports.LedgerListParams) (*ports.LedgerListResult, error) {
				assert.Equal(t, "cyberion", params.StoreName)
				assert.Equal(t, 3, params.Page)
				assert.Equal(t, 50, params.PageSize)
				assert.Equal(t, 2026, params.From.Year())
				assert.True(t, params.To.IsZero())
				return &ports.LedgerListResult{
					Entries:    []domain.SaleEntry{{ID: uuid.New(), StoreName: "cyberion"}},
					Page:       3,
					PageSize:   50,
					TotalCount: 101,
				}, nil
			})

		handler := handlers.NewStoreHandler(ledger, helpers.TestLogger())
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/stores/cyberion/sales?page=3&page_size=50&from=2026-08-01T00:00:00Z", nil)
		req.SetPathValue("store", "cyberion")

		handler.ListSales(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got ports.LedgerListResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int64(101), got.TotalCount)
		require.Len(t, got.Entries, 1)
	})
}
