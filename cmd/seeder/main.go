// cmd/seeder/main.go
//
// Seeds a development database with stores, catalog items, stocked lots and
// demo clients so the checkout API has something to sell.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/nexisretail/nexis-be/internal/adapters/db"
	"github.com/nexisretail/nexis-be/internal/core/domain"
	"github.com/nexisretail/nexis-be/internal/pkg/config"
	"github.com/nexisretail/nexis-be/internal/pkg/logger"
)

var itemNames = map[domain.ItemCategory][]string{
	domain.CategoryTech:         {"USB-C Dock", "Portable SSD 1TB", "Webcam Pro", "Noise-Cancelling Headset"},
	domain.CategoryTechCPU:      {"Octa-Core CPU 3.8GHz", "Hexa-Core CPU 4.2GHz"},
	domain.CategoryTechGPU:      {"GPU 12GB", "GPU 8GB Compact"},
	domain.CategoryTechKeyboard: {"Mechanical Keyboard TKL", "Low-Profile Wireless Keyboard"},
	domain.CategoryTechOther:    {"Smart Hub", "Mesh Router"},
	domain.CategoryFood:         {"Arabica Beans 1kg", "Olive Oil Extra Virgin", "Aged Cheese Wheel"},
	domain.CategoryClothes:      {"Denim Jacket", "Wool Scarf", "Canvas Sneakers"},
	domain.CategoryLibrary:      {"Hardcover Novel", "Illustrated Atlas", "Poetry Anthology"},
}

func main() {
	var (
		lotsPerItem  = flag.Int("lots", 3, "lots per item")
		codesPerLot  = flag.Int("codes", 5, "unit codes per lot")
		clientCount  = flag.Int("clients", 10, "demo clients to create")
		runMigration = flag.Bool("migrate", true, "run migrations before seeding")
	)
	flag.Parse()

	slogger := logger.SetupLogger(&logger.LogConfig{Level: "info", Format: "text"})

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	if *runMigration {
		migrator, err := db.NewMigrator(&db.MigrationConfig{DatabaseURL: cfg.GetDatabaseURL()}, slogger)
		if err != nil {
			slogger.Error("failed to create migrator", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := migrator.Up(ctx); err != nil {
			slogger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		_ = migrator.Close()
	}

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Database:       cfg.Database.Name,
		SSLMode:        cfg.Database.SSLMode,
		MaxConnections: 5,
		MinConnections: 1,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	}, slogger)
	if err != nil {
		slogger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	if err := seed(ctx, database, cfg.Checkout.StoreDirectory, *lotsPerItem, *codesPerLot, *clientCount, slogger); err != nil {
		slogger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("seeding complete")
}

func seed(ctx context.Context, database *db.Database, directory domain.StoreDirectory,
	lotsPerItem, codesPerLot, clientCount int, slogger *slog.Logger) error {

	return database.Transaction(ctx, func(tx pgx.Tx) error {
		for _, store := range directory.Stores() {
			if _, err := tx.Exec(ctx,
				`INSERT INTO stores (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, store); err != nil {
				return fmt.Errorf("failed to insert store %s: %w", store, err)
			}
		}

		itemCount := 0
		for category, names := range itemNames {
			for _, name := range names {
				itemID := uuid.New()
				price := decimal.NewFromFloat(5 + rand.Float64()*495).Round(2)

				var pricePerKg *decimal.Decimal
				if category == domain.CategoryFood {
					kg := decimal.NewFromFloat(2 + rand.Float64()*48).Round(2)
					pricePerKg = &kg
				}

				if _, err := tx.Exec(ctx,
					`INSERT INTO items (id, name, category, price, price_per_kg) VALUES ($1, $2, $3, $4, $5)`,
					itemID, name, category, price, pricePerKg); err != nil {
					return fmt.Errorf("failed to insert item %s: %w", name, err)
				}
				itemCount++

				for l := 0; l < lotsPerItem; l++ {
					codes := make([]uuid.UUID, codesPerLot)
					for c := range codes {
						codes[c] = uuid.New()
					}
					// Stagger entry dates so oldest-first allocation is
					// observable in demos.
					enteredAt := time.Now().UTC().AddDate(0, 0, -(lotsPerItem-l)*7)

					if _, err := tx.Exec(ctx,
						`INSERT INTO lots (id, item_id, entered_at, codes) VALUES ($1, $2, $3, $4)`,
						uuid.New(), itemID, enteredAt, codes); err != nil {
						return fmt.Errorf("failed to insert lot for %s: %w", name, err)
					}
				}
			}
		}

		for i := 0; i < clientCount; i++ {
			if _, err := tx.Exec(ctx,
				`INSERT INTO clients (id, name) VALUES ($1, $2)`,
				uuid.New(), fmt.Sprintf("demo-client-%02d", i+1)); err != nil {
				return fmt.Errorf("failed to insert client: %w", err)
			}
		}

		slogger.Info("seeded catalog",
			slog.Int("stores", len(directory.Stores())),
			slog.Int("items", itemCount),
			slog.Int("lots_per_item", lotsPerItem),
			slog.Int("codes_per_lot", codesPerLot),
			slog.Int("clients", clientCount))

		return nil
	})
}
