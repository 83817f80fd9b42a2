// test/helpers/helpers.go
package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/nexisretail/nexis-be/internal/adapters/db"
	"github.com/nexisretail/nexis-be/internal/core/domain"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestDB creates a PostgreSQL container for integration tests. Tests
// calling it are skipped when Docker is not reachable.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if os.Getenv("SKIP_DOCKER_TESTS") != "" {
		t.Skip("SKIP_DOCKER_TESTS is set")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("Docker not available: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("Docker not reachable: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_retail",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_retail",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		EnableQueryLogging: testing.Verbose(),
	}

	// Wait for the database to accept connections
	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")

	t.Cleanup(database.Close)

	migrationConfig := &db.MigrationConfig{
		DatabaseURL: fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
			dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port,
			dbConfig.Database, dbConfig.SSLMode),
		TableName:  "schema_migrations",
		SchemaName: "public",
	}
	migrator, err := db.NewMigrator(migrationConfig, TestLogger())
	require.NoError(t, err, "Could not create migrator")
	defer migrator.Close()

	require.NoError(t, migrator.Up(context.Background()), "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis creates a mock Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// TestItemSummary builds an item summary with sensible defaults.
func TestItemSummary(overrides ...func(*domain.ItemSummary)) domain.ItemSummary {
	summary := domain.ItemSummary{
		ID:       uuid.New(),
		Name:     "Mechanical Keyboard",
		Category: domain.CategoryTechKeyboard,
		Price:    decimal.NewFromFloat(129.99),
	}
	for _, override := range overrides {
		override(&summary)
	}
	return summary
}

// TestLot builds a lot for an item with freshly generated unit codes,
// entered the given duration ago.
func TestLot(itemID uuid.UUID, age time.Duration, codeCount int) domain.Lot {
	codes := make([]uuid.UUID, codeCount)
	for i := range codes {
		codes[i] = uuid.New()
	}
	return domain.Lot{
		ID:        uuid.New(),
		ItemID:    itemID,
		EnteredAt: time.Now().UTC().Add(-age).Truncate(time.Microsecond),
		Codes:     codes,
	}
}

// SeedStore inserts a store row.
func SeedStore(t *testing.T, pool *pgxpool.Pool, name string) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO stores (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	require.NoError(t, err)
}

// SeedItem inserts an item row from a summary.
func SeedItem(t *testing.T, pool *pgxpool.Pool, summary domain.ItemSummary) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO items (id, name, category, price, price_per_kg)
		 VALUES ($1, $2, $3, $4, $5)`,
		summary.ID, summary.Name, string(summary.Category), summary.Price, summary.PricePerKg)
	require.NoError(t, err)
}

// SeedLot inserts a lot row.
func SeedLot(t *testing.T, pool *pgxpool.Pool, lot domain.Lot) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO lots (id, item_id, entered_at, codes) VALUES ($1, $2, $3, $4)`,
		lot.ID, lot.ItemID, lot.EnteredAt, lot.Codes)
	require.NoError(t, err)
}

// SeedClient inserts a client row with the given cart.
func SeedClient(t *testing.T, pool *pgxpool.Pool, clientID uuid.UUID, cart []uuid.UUID) {
	t.Helper()
	if cart == nil {
		cart = []uuid.UUID{}
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO clients (id, name, cart) VALUES ($1, $2, $3)`,
		clientID, "Test Client", cart)
	require.NoError(t, err)
}

// TruncateAllTables clears all data between tests.
func TruncateAllTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`TRUNCATE TABLE store_daily_sales, sale_entries, lots, items, clients, stores CASCADE`)
	require.NoError(t, err)
}

// LotCodes reads a lot's current code set straight from storage.
func LotCodes(t *testing.T, pool *pgxpool.Pool, lotID uuid.UUID) []uuid.UUID {
	t.Helper()
	var codes []uuid.UUID
	err := pool.QueryRow(context.Background(),
		`SELECT codes FROM lots WHERE id = $1`, lotID).Scan(&codes)
	require.NoError(t, err)
	return codes
}
