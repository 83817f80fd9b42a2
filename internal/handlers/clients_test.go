// internal/handlers/clients_test.go
package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nexisretail/nexis-be/internal/handlers"
	"github.com/nexisretail/nexis-be/test/helpers"
	"github.com/nexisretail/nexis-be/test/mocks"
)

func TestClientHandler_GetCart(t *testing.T) {
	clientID := uuid.New()
	saved := []uuid.UUID{uuid.New(), uuid.New()}

	tests := []struct {
		name           string
		clientHeader   string
		setupMocks     func(*mocks.MockClientRepository)
		expectedStatus int
		expectedCount  int
	}{
		{
			name:         "returns_saved_cart",
			clientHeader: clientID.String(),
			setupMocks: func(m *mocks.MockClientRepository) {
				m.EXPECT().FindCart(gomock.Any(), clientID).Return(saved, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:         "unknown_client_reads_as_empty",
			clientHeader: clientID.String(),
			setupMocks: func(m *mocks.MockClientRepository) {
				m.EXPECT().FindCart(gomock.Any(), clientID).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:           "missing_client_identity",
			clientHeader:   "",
			setupMocks:     func(m *mocks.MockClientRepository) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:         "storage_failure",
			clientHeader: clientID.String(),
			setupMocks: func(m *mocks.MockClientRepository) {
				m.EXPECT().FindCart(gomock.Any(), clientID).
					Return(nil, errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			clients := mocks.NewMockClientRepository(ctrl)
			tt.setupMocks(clients)

			handler := handlers.NewClientHandler(clients, helpers.TestLogger())
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/clients/cart", nil)
			if tt.clientHeader != "" {
				req.Header.Set("X-Client-ID", tt.clientHeader)
			}

			handler.GetCart(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var got handlers.CartResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, tt.expectedCount, got.Count)
				assert.Len(t, got.Items, tt.expectedCount)
			}
		})
	}
}
