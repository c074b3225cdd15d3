// Command seed populates a storage location with two years of demo data
// through the public ledger API. Point DB_PATH at a separate file to build an
// isolated sandbox instance.
package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/mycloudcondo/kuyan/internal/config"
	"github.com/mycloudcondo/kuyan/internal/database"
	"github.com/mycloudcondo/kuyan/internal/ledger"
	ledgerStore "github.com/mycloudcondo/kuyan/internal/ledger/store"
)

type account struct {
	label    string
	category ledger.Category
	currency string
	balance  float64
	drift    func(float64) float64
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	source, err := cfg.DatabaseSource()
	if err != nil {
		slog.Error("invalid database config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DB.Driver, source)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	svc := ledger.NewService(ledgerStore.New(db))

	accounts := []account{
		{"TD Chequing", ledger.CategoryCash, "CAD", 3500, func(b float64) float64 {
			return clamp(b+float64(400+rand.Intn(200)), 2000, 6500)
		}},
		{"Wealthsimple TFSA", ledger.CategoryInvestment, "CAD", 18000, func(b float64) float64 {
			return b + 500 + b*0.08/12 + (rand.Float64()-0.5)*b*0.06
		}},
		{"Chase Savings", ledger.CategoryDeposit, "USD", 2200, func(b float64) float64 {
			return b + float64(200+rand.Intn(100)) + b*0.04/12
		}},
		{"SBI Account", ledger.CategoryDeposit, "INR", 120000, func(b float64) float64 {
			return b + float64(13000+rand.Intn(4000))
		}},
		{"Visa Card", ledger.CategoryCreditCard, "CAD", 1200, func(b float64) float64 {
			return clamp(b+(rand.Float64()-0.5)*800, 300, 3000)
		}},
		{"Car Loan", ledger.CategoryLoan, "CAD", 14000, func(b float64) float64 {
			return clamp(b-350, 0, b)
		}},
	}

	// Two years of monthly snapshots starting January 1st of the previous
	// year, matching the shape of real usage: one entry per account per
	// first-of-month.
	now := time.Now().UTC()
	start := time.Date(now.Year()-1, time.January, 1, 0, 0, 0, 0, time.UTC)

	ctx := context.Background()
	created := 0

	for month := 0; month < 24; month++ {
		snapshotDate := start.AddDate(0, month, 0)

		for i := range accounts {
			acc := &accounts[i]
			acc.balance = acc.drift(acc.balance)

			_, err := svc.Add(ctx, ledger.CreateParams{
				SnapshotDate: snapshotDate,
				Category:     acc.category,
				Label:        acc.label,
				Amount:       decimal.NewFromFloat(acc.balance).Round(2),
				Currency:     acc.currency,
			})
			if err != nil {
				slog.Error("failed to add entry", "label", acc.label, "date", snapshotDate.Format(time.DateOnly), "error", err)
				os.Exit(1)
			}

			created++
		}
	}

	slog.Info("seeded demo data", "entries", created, "db", cfg.DB.Driver, "source", source)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
