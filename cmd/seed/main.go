// Package main provides a CLI tool for seeding the database with demo
// data: a small product catalog, a few expired lots and some dispatch
// history.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"bakestock/internal/core/apperror"
	"bakestock/internal/core/types"
	"bakestock/internal/domain/catalogs/product"
	"bakestock/internal/domain/dispatch"
	"bakestock/internal/domain/lots"
	"bakestock/internal/infrastructure/storage/postgres"
	"bakestock/internal/infrastructure/storage/postgres/catalog_repo"
	"bakestock/internal/infrastructure/storage/postgres/register_repo"
	"bakestock/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txm := postgres.NewTxManager(pool)
	productSvc := product.NewService(catalog_repo.NewProductRepo(txm))
	lotRepo := catalog_repo.NewLotRepo(txm)
	lotSvc := lots.NewService(lotRepo)
	dispatchSvc := dispatch.NewService(lotRepo, register_repo.NewDispatchRepo(txm), txm, dispatch.Config{
		AllowUncheckedAmend: true,
	})

	products := seedProducts(ctx, productSvc, log)
	seededLots := seedLots(ctx, lotSvc, products, log)
	seedDispatches(ctx, dispatchSvc, seededLots, log)

	log.Info("seeding completed successfully")
}

func seedProducts(ctx context.Context, svc *product.Service, log *logger.Logger) []*product.Product {
	demo := []struct {
		code, name, unit string
		cost, price      string
	}{
		{"BRD-001", "Sourdough loaf", "pcs", "1.20", "3.50"},
		{"BRD-002", "Rye bread", "pcs", "0.95", "2.80"},
		{"PST-001", "Butter croissant", "pcs", "0.60", "1.90"},
		{"PST-002", "Cinnamon roll", "pcs", "0.70", "2.20"},
		{"ING-001", "Wheat flour", "kg", "0.45", ""},
	}

	out := make([]*product.Product, 0, len(demo))
	for _, d := range demo {
		p := product.NewProduct(d.code, d.name, d.unit)
		if d.cost != "" {
			c := types.MustMoney(d.cost)
			p.UnitCost = &c
		}
		if d.price != "" {
			s := types.MustMoney(d.price)
			p.SellingPrice = &s
		}

		if err := svc.Create(ctx, p); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeDuplicate {
				existing, gerr := svc.GetByCode(ctx, d.code)
				if gerr == nil {
					out = append(out, existing)
					continue
				}
			}
			log.Fatalw("failed to seed product", "code", d.code, "error", err)
		}
		out = append(out, p)
	}

	log.Infow("products seeded", "count", len(out))
	return out
}

func seedLots(ctx context.Context, svc *lots.Service, products []*product.Product, log *logger.Logger) []*lots.ExpiredLot {
	now := time.Now().UTC()

	out := make([]*lots.ExpiredLot, 0, len(products))
	for i, p := range products {
		batch := now.AddDate(0, 0, -(i + 4))
		removal := now.AddDate(0, 0, -(i + 1))

		lot := lots.NewExpiredLot(p.Name, types.NewQuantityFromFloat64(float64(10*(i+1))), batch, removal)
		lot.ProductID = &p.ID
		lot.UnitCost = p.UnitCost
		lot.SellingPrice = p.SellingPrice

		if err := svc.Create(ctx, lot); err != nil {
			log.Fatalw("failed to seed lot", "product", p.Name, "error", err)
		}
		out = append(out, lot)
	}

	log.Infow("lots seeded", "count", len(out))
	return out
}

func seedDispatches(ctx context.Context, svc *dispatch.Service, seededLots []*lots.ExpiredLot, log *logger.Logger) {
	dispatchers := []string{"Maria", "Jonas", "Petra"}
	destinations := dispatch.Destinations()

	var count int
	for i, lot := range seededLots {
		// Dispatch roughly half of each lot across a couple of channels.
		half := lot.OriginalQuantity / 2
		if half <= 0 {
			continue
		}

		_, err := svc.Record(ctx, dispatch.RecordInput{
			LotID:        lot.ID,
			Destination:  destinations[i%len(destinations)],
			Quantity:     half,
			DispatchedBy: dispatchers[i%len(dispatchers)],
			DispatchDate: time.Now().UTC().AddDate(0, 0, -i),
			Notes:        "seeded",
		})
		if err != nil {
			log.Fatalw("failed to seed dispatch", "lot", lot.ProductName, "error", err)
		}
		count++
	}

	log.Infow("dispatches seeded", "count", count)
}
