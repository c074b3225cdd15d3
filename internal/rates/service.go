package rates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mycloudcondo/kuyan/internal/currency"
)

//go:generate mockgen -source=service.go -destination=rates_mock.go -package=rates

// Cache is the persistent store of previously resolved rates. Get returns
// (nil, nil) when the triple has never been cached.
type Cache interface {
	Get(ctx context.Context, base, quote currency.Code, date time.Time) (*ExchangeRate, error)
	Put(ctx context.Context, rate *ExchangeRate) error
}

// Provider fetches a rate for an exact date from an external service.
// It returns ErrNoRate when the pair or date has no published rate; any other
// error is treated as transient.
type Provider interface {
	FetchRate(ctx context.Context, base, quote currency.Code, date time.Time) (*Quote, error)
}

type Config struct {
	// FallbackWindowDays bounds the backward day-by-day search for the
	// nearest prior usable rate.
	FallbackWindowDays int
	// MaxRetries bounds retries of a transient provider failure before the
	// resolution proceeds to the fallback search.
	MaxRetries int
	RetryDelay time.Duration
}

const (
	defaultFallbackWindowDays = 7
	defaultMaxRetries         = 2
	defaultRetryDelay         = 250 * time.Millisecond
)

// Service resolves a rate for a (base, quote, date) triple: identity first,
// then the cache, then the provider, then a bounded backward search for the
// nearest prior date either side can serve.
type Service struct {
	cache    Cache
	provider Provider
	cfg      Config
}

func NewService(cache Cache, provider Provider, cfg Config) *Service {
	if cfg.FallbackWindowDays <= 0 {
		cfg.FallbackWindowDays = defaultFallbackWindowDays
	}

	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = defaultMaxRetries
	}

	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}

	return &Service{cache: cache, provider: provider, cfg: cfg}
}

var one = decimal.NewFromInt(1)

// Resolve returns the base→quote rate for the given date, or an
// *UnavailableError when nothing usable exists within the fallback window.
// Once a date's rate is cached, resolving that date again needs no network.
func (s *Service) Resolve(ctx context.Context, base, quote currency.Code, date time.Time) (*Resolution, error) {
	date = normalizeDate(date)

	if base == quote {
		return &Resolution{
			Base:          base,
			Quote:         quote,
			Rate:          one,
			RequestedDate: date,
			EffectiveDate: date,
			Source:        SourceIdentity,
		}, nil
	}

	if res, err := s.fromCache(ctx, base, quote, date, date); err != nil || res != nil {
		return res, err
	}

	q, err := s.fetchWithRetry(ctx, base, quote, date)
	if err == nil {
		effective := date
		if !q.Date.IsZero() {
			effective = normalizeDate(q.Date)
		}

		// When the provider substituted an earlier date, a fact for that
		// date may already be cached from a previous resolution. The stored
		// fact wins over the fresh quote: cached rates are immutable, so a
		// recomputation with unchanged storage stays bit-identical even if
		// the provider has since drifted.
		if !effective.Equal(date) {
			res, err := s.fromCache(ctx, base, quote, effective, date)
			if err != nil {
				return nil, err
			}

			if res != nil {
				res.Source = SourceFallback
				return res, nil
			}
		}

		s.cacheFact(ctx, base, quote, effective, q.Rate)

		source := SourceProvider
		if !effective.Equal(date) {
			source = SourceFallback
		}

		return &Resolution{
			Base:          base,
			Quote:         quote,
			Rate:          q.Rate,
			RequestedDate: date,
			EffectiveDate: effective,
			Source:        source,
		}, nil
	}

	reason := ReasonNetwork
	if errors.Is(err, ErrNoRate) {
		reason = ReasonNoData
	}

	// Backward search: nearest prior date the cache holds or, unless the
	// network is down, the provider can serve.
	for i := 1; i <= s.cfg.FallbackWindowDays; i++ {
		prior := date.AddDate(0, 0, -i)

		res, err := s.fromCache(ctx, base, quote, prior, date)
		if err != nil {
			return nil, err
		}

		if res != nil {
			res.Source = SourceFallback
			return res, nil
		}

		if reason == ReasonNetwork {
			continue
		}

		q, err := s.provider.FetchRate(ctx, base, quote, prior)
		if err != nil {
			continue
		}

		effective := prior
		if !q.Date.IsZero() {
			effective = normalizeDate(q.Date)
		}

		s.cacheFact(ctx, base, quote, effective, q.Rate)

		return &Resolution{
			Base:          base,
			Quote:         quote,
			Rate:          q.Rate,
			RequestedDate: date,
			EffectiveDate: effective,
			Source:        SourceFallback,
		}, nil
	}

	return nil, &UnavailableError{Base: base, Quote: quote, Date: date, Reason: reason}
}

// fromCache checks the cache for the pair on the given date, trying the
// inverse orientation as well. Returns (nil, nil) on a miss.
func (s *Service) fromCache(ctx context.Context, base, quote currency.Code, date, requested time.Time) (*Resolution, error) {
	cached, err := s.cache.Get(ctx, base, quote, date)
	if err != nil {
		return nil, fmt.Errorf("reading rate cache: %w", err)
	}

	if cached != nil {
		return &Resolution{
			Base:          base,
			Quote:         quote,
			Rate:          cached.Rate,
			RequestedDate: requested,
			EffectiveDate: date,
			Source:        SourceCache,
		}, nil
	}

	inverse, err := s.cache.Get(ctx, quote, base, date)
	if err != nil {
		return nil, fmt.Errorf("reading rate cache: %w", err)
	}

	if inverse != nil && !inverse.Rate.IsZero() {
		return &Resolution{
			Base:          base,
			Quote:         quote,
			Rate:          one.Div(inverse.Rate),
			RequestedDate: requested,
			EffectiveDate: date,
			Source:        SourceCache,
		}, nil
	}

	return nil, nil
}

func (s *Service) fetchWithRetry(ctx context.Context, base, quote currency.Code, date time.Time) (*Quote, error) {
	var lastErr error

	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.cfg.RetryDelay):
			}
		}

		q, err := s.provider.FetchRate(ctx, base, quote, date)
		if err == nil {
			return q, nil
		}

		if errors.Is(err, ErrNoRate) {
			return nil, err
		}

		lastErr = err
		slog.Warn("rate provider call failed",
			"base", base, "quote", quote, "date", date.Format(time.DateOnly),
			"attempt", attempt+1, "error", err)
	}

	return nil, lastErr
}

// cacheFact records a resolved rate under the date it actually applies to.
// A cache write failure degrades determinism, not correctness, so it is
// logged and the resolution proceeds.
func (s *Service) cacheFact(ctx context.Context, base, quote currency.Code, date time.Time, rate decimal.Decimal) {
	err := s.cache.Put(ctx, &ExchangeRate{
		Base:      base,
		Quote:     quote,
		Date:      date,
		Rate:      rate,
		FetchedAt: time.Now().UTC(),
	})
	if err != nil {
		slog.Warn("caching rate failed",
			"base", base, "quote", quote, "date", date.Format(time.DateOnly), "error", err)
	}
}
