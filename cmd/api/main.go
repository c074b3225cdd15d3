package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mycloudcondo/kuyan/internal/config"
	"github.com/mycloudcondo/kuyan/internal/currency"
	"github.com/mycloudcondo/kuyan/internal/database"
	"github.com/mycloudcondo/kuyan/internal/export"
	kuyanHttp "github.com/mycloudcondo/kuyan/internal/http"
	entryHandler "github.com/mycloudcondo/kuyan/internal/http/entry"
	networthHandler "github.com/mycloudcondo/kuyan/internal/http/networth"
	snapshotHandler "github.com/mycloudcondo/kuyan/internal/http/snapshot"
	transferHandler "github.com/mycloudcondo/kuyan/internal/http/transfer"
	"github.com/mycloudcondo/kuyan/internal/importer"
	"github.com/mycloudcondo/kuyan/internal/ledger"
	ledgerStore "github.com/mycloudcondo/kuyan/internal/ledger/store"
	"github.com/mycloudcondo/kuyan/internal/matching"
	matchingStore "github.com/mycloudcondo/kuyan/internal/matching/store"
	"github.com/mycloudcondo/kuyan/internal/rates"
	"github.com/mycloudcondo/kuyan/internal/rates/frankfurter"
	ratesStore "github.com/mycloudcondo/kuyan/internal/rates/store"
	"github.com/mycloudcondo/kuyan/internal/valuation"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	reporting, err := currency.Parse(cfg.Reporting.Currency)
	if err != nil {
		slog.Error("invalid reporting currency", "error", err)
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

	var (
		ledgerService = ledger.NewService(ledgerStore.New(db))
		rateProvider  = frankfurter.New(cfg.Rates.ProviderURL, cfg.Rates.Timeout)
		rateService   = rates.NewService(ratesStore.New(db), rateProvider, rates.Config{
			FallbackWindowDays: cfg.Rates.FallbackWindowDays,
			MaxRetries:         cfg.Rates.MaxRetries,
			RetryDelay:         cfg.Rates.RetryDelay,
		})
		valuationService = valuation.NewService(ledgerService, rateService)
		matchingService  = matching.NewService(matchingStore.New(db))
		importService    = importer.NewService(ledgerService, matchingService)
		exportService    = export.NewService(ledgerService)
	)

	var (
		entriesH   = entryHandler.NewHandler(ledgerService)
		snapshotsH = snapshotHandler.NewHandler(ledgerService)
		networthH  = networthHandler.NewHandler(valuationService, reporting)
		transferH  = transferHandler.NewHandler(importService, exportService, matchingService)
	)

	router := kuyanHttp.New(entriesH, snapshotsH, networthH, transferH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "db", cfg.DB.Driver, "reporting_currency", reporting)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
