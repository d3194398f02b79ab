// Command seed fills a development database with sample products and sales
// so the storefront pages have something to show.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/domain/entity"
	"storefront/internal/infrastructure/persistence"
	"storefront/pkg/application/connectors"
	"storefront/pkg/contextx"
	"storefront/pkg/dbx"
	"storefront/pkg/errcodes"
	"storefront/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.RFC3339,
	}))
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	if err := run(ctx); err != nil {
		log.Error("seed failed", logx.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Only the database section is needed here; a full config.Load would
	// demand the Google credentials too.
	cfg, err := config.LoadPostgres()
	if err != nil {
		return fmt.Errorf("config.LoadPostgres: %w", err)
	}

	pg := &connectors.Postgres{
		DSN:             cfg.DSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := dbx.MigrateFromFile(ctx, db, cfg.MigrationsFile); err != nil {
		return fmt.Errorf("dbx.MigrateFromFile: %w", err)
	}

	productRepo := persistence.NewProductRepository(db)
	salesRepo := persistence.NewSalesRepository(db)

	logger := contextx.LoggerFromContextOrDefault(ctx)

	for _, sample := range sampleProducts() {
		product := sample

		existing, err := productRepo.GetBySlug(ctx, product.Slug)
		if err == nil {
			logger.Info("product already seeded", "slug", existing.Slug)
			continue
		}

		if code, ok := domain.GetCode(err); !ok || code != errcodes.ProductNotFound {
			return fmt.Errorf("productRepo.GetBySlug: %w", err)
		}

		if err := productRepo.Create(ctx, &product); err != nil {
			return fmt.Errorf("productRepo.Create: %w", err)
		}

		if err := seedSales(ctx, salesRepo, product.ID); err != nil {
			return err
		}

		logger.Info("product seeded", "slug", product.Slug, "id", product.ID)
	}

	return nil
}

// seedSales spreads a few random order lines over the last week so the
// top-sellers ranking has data.
func seedSales(ctx context.Context, salesRepo *persistence.SalesRepository, productID int64) error {
	lines := rand.Intn(6) //nolint:gosec // sample data

	for i := 0; i < lines; i++ {
		//nolint:gosec // sample data
		sale := &entity.Sale{
			ProductID: productID,
			Units:     1 + rand.Intn(3),
			SoldAt:    time.Now().Add(-time.Duration(rand.Intn(7*24)) * time.Hour),
		}

		if err := salesRepo.Record(ctx, sale); err != nil {
			return fmt.Errorf("salesRepo.Record: %w", err)
		}
	}

	return nil
}

func sampleProducts() []entity.Product {
	return []entity.Product{
		{
			Slug:        "classic-hoodie",
			Name:        "Classic Hoodie",
			Description: "Heavyweight fleece hoodie with a brushed interior.",
			PriceCents:  4900,
			Stock:       25,
		},
		{
			Slug:        "canvas-tote",
			Name:        "Canvas Tote",
			Description: "Reinforced 16oz canvas tote with interior pocket.",
			PriceCents:  1900,
			Stock:       60,
		},
		{
			Slug:        "enamel-mug",
			Name:        "Enamel Mug",
			Description: "12oz enamel camping mug, dishwasher safe.",
			PriceCents:  1400,
			Stock:       80,
		},
		{
			Slug:        "wool-beanie",
			Name:        "Wool Beanie",
			Description: "Merino wool beanie, one size.",
			PriceCents:  2400,
			Stock:       40,
		},
		{
			Slug:        "desk-mat",
			Name:        "Desk Mat",
			Description: "90x40cm stitched-edge desk mat.",
			PriceCents:  2900,
			Stock:       35,
		},
	}
}
