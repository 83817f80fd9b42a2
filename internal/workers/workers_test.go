// internal/workers/workers_test.go
package workers_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nexisretail/nexis-be/internal/core/domain"
	"github.com/nexisretail/nexis-be/internal/workers"
	"github.com/nexisretail/nexis-be/test/helpers"
	"github.com/nexisretail/nexis-be/test/mocks"
)

func TestNewSaleRecordedTask(t *testing.T) {
	clientID := uuid.New()
	entry := &domain.SaleEntry{
		ID:        uuid.New(),
		StoreName: "savoro",
		Date:      time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		Buyer:     domain.Buyer{ClientID: &clientID},
		Items: []domain.ReservedUnit{
			{ItemID: uuid.New(), Code: uuid.New()},
			{ItemID: uuid.New(), Code: uuid.New()},
		},
	}

	task, err := workers.NewSaleRecordedTask(entry)
	require.NoError(t, err)
	assert.Equal(t, workers.TypeSaleRecorded, task.Type())

	var payload workers.SaleRecordedPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, entry.ID, payload.EntryID)
	assert.Equal(t, "savoro", payload.StoreName)
	assert.Equal(t, 2, payload.Units)
	// Buyer and payment detail stay out of the analytics payload.
	assert.NotContains(t, string(task.Payload()), clientID.String())
}

func TestCleanupProcessor_HandlePrune(t *testing.T) {
	tests := []struct {
		name       string
		payload    []byte
		setupMocks func(*mocks.MockCatalogRepository)
		wantErr    bool
	}{
		{
			name:    "explicit_retention_window",
			payload: mustMarshal(t, workers.LotPrunePayload{OlderThan: 72 * time.Hour}),
			setupMocks: func(m *mocks.MockCatalogRepository) {
				m.EXPECT().
					PruneEmptyLots(gomock.Any(), 72*time.Hour).
					Return(int64(3), nil)
			},
		},
		{
			name:    "empty_payload_defaults_to_one_day",
			payload: nil,
			setupMocks: func(m *mocks.MockCatalogRepository) {
				m.EXPECT().
					PruneEmptyLots(gomock.Any(), 24*time.Hour).
					Return(int64(0), nil)
			},
		},
		{
			name:    "storage_error_propagates_for_retry",
			payload: nil,
			setupMocks: func(m *mocks.MockCatalogRepository) {
				m.EXPECT().
					PruneEmptyLots(gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			catalog := mocks.NewMockCatalogRepository(ctrl)
			tt.setupMocks(catalog)

			processor := workers.NewCleanupProcessor(catalog, helpers.TestLogger())
			err := processor.HandlePrune(context.Background(),
				asynq.NewTask(workers.TypeLotPrune, tt.payload))

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnalyticsProcessor_HandleSaleRecorded(t *testing.T) {
	t.Run("updates_daily_rollup", func(t *testing.T) {
		db := &execRecorder{}
		processor := workers.NewAnalyticsProcessor(db, helpers.TestLogger())

		task, err := workers.NewSaleRecordedTask(&domain.SaleEntry{
			ID:        uuid.New(),
			StoreName: "cyberion",
			Date:      time.Now().UTC(),
			Items:     []domain.ReservedUnit{{Code: uuid.New()}},
		})
		require.NoError(t, err)

		require.NoError(t, processor.HandleSaleRecorded(context.Background(), task))

		require.Len(t, db.execs, 1)
		assert.Contains(t, db.execs[0].sql, "store_daily_sales")
		assert.Equal(t, "cyberion", db.execs[0].args[0])
	})

	t.Run("malformed_payload_fails", func(t *testing.T) {
		processor := workers.NewAnalyticsProcessor(&execRecorder{}, helpers.TestLogger())

		err := processor.HandleSaleRecorded(context.Background(),
			asynq.NewTask(workers.TypeSaleRecorded, []byte("not json")))

		assert.Error(t, err)
	})

	t.Run("storage_error_propagates_for_retry", func(t *testing.T) {
		db := &execRecorder{err: errors.New("connection refused")}
		processor := workers.NewAnalyticsProcessor(db, helpers.TestLogger())

		task, err := workers.NewSaleRecordedTask(&domain.SaleEntry{
			ID:        uuid.New(),
			StoreName: "cyberion",
			Date:      time.Now().UTC(),
		})
		require.NoError(t, err)

		assert.Error(t, processor.HandleSaleRecorded(context.Background(), task))
	})
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

// execRecorder is a ports.Database stub that captures Exec calls. The
// processors only exercise Exec; the rest of the interface is inert.
type execRecorder struct {
	execs []capturedExec
	err   error
}

type capturedExec struct {
	sql  string
	args []interface{}
}

func (r *execRecorder) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	if r.err != nil {
		return pgconn.CommandTag{}, r.err
	}
	r.execs = append(r.execs, capturedExec{sql: sql, args: args})
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (r *execRecorder) Close()                                    {}
func (r *execRecorder) Ping(context.Context) error                { return nil }
func (r *execRecorder) Health(context.Context) map[string]interface{} {
	return map[string]interface{}{"status": "healthy"}
}
func (r *execRecorder) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}
func (r *execRecorder) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}
func (r *execRecorder) Transaction(context.Context, func(pgx.Tx) error) error {
	return errors.New("not implemented")
}
