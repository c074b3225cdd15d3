package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mycloudcondo/kuyan/internal/currency"
	"github.com/mycloudcondo/kuyan/internal/database"
	"github.com/mycloudcondo/kuyan/internal/rates"
)

type Store struct {
	db *database.DB
}

func New(db *database.DB) *Store {
	return &Store{db: db}
}

// Get performs an exact-match lookup. Returns (nil, nil) when the triple has
// never been cached; no interpolation.
func (s *Store) Get(ctx context.Context, base, quote currency.Code, date time.Time) (*rates.ExchangeRate, error) {
	query := s.db.Rebind(`
		SELECT rate, fetched_at
		FROM exchange_rates
		WHERE base_currency = ? AND quote_currency = ? AND rate_date = ?
	`)

	var rateStr, fetchedStr string

	err := s.db.QueryRowContext(ctx, query,
		base.String(), quote.String(), date.Format(time.DateOnly),
	).Scan(&rateStr, &fetchedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("getting rate: %w", err)
	}

	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing rate: %w", err)
	}

	fetchedAt, err := time.Parse(time.RFC3339, fetchedStr)
	if err != nil {
		return nil, fmt.Errorf("parsing fetched_at: %w", err)
	}

	return &rates.ExchangeRate{
		Base:      base,
		Quote:     quote,
		Date:      date,
		Rate:      rate,
		FetchedAt: fetchedAt,
	}, nil
}

// Put inserts a rate fact unless the triple already exists. Historical rates
// for closed trading days never change, so the first written value wins even
// when a later fetch drifts. The single-row upsert is atomic: two racing
// resolutions for the same triple cannot produce conflicting rows.
func (s *Store) Put(ctx context.Context, rate *rates.ExchangeRate) error {
	if rate.Base == rate.Quote {
		return fmt.Errorf("identity pair %s/%s is never cached", rate.Base, rate.Quote)
	}

	query := s.db.Rebind(`
		INSERT INTO exchange_rates (base_currency, quote_currency, rate_date, rate, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (base_currency, quote_currency, rate_date) DO NOTHING
	`)

	_, err := s.db.ExecContext(ctx, query,
		rate.Base.String(),
		rate.Quote.String(),
		rate.Date.Format(time.DateOnly),
		rate.Rate.String(),
		rate.FetchedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("putting rate: %w", err)
	}

	return nil
}
