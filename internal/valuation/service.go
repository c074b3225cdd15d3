package valuation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mycloudcondo/kuyan/internal/currency"
	"github.com/mycloudcondo/kuyan/internal/ledger"
	"github.com/mycloudcondo/kuyan/internal/rates"
)

//go:generate mockgen -source=service.go -destination=valuation_mock.go -package=valuation

// Ledger is the slice of the ledger service the engine reads from.
type Ledger interface {
	List(ctx context.Context, snapshotDate time.Time) ([]*ledger.Entry, error)
	SnapshotDates(ctx context.Context) ([]time.Time, error)
}

// Resolver resolves one exchange rate per distinct (currency, date) pair.
type Resolver interface {
	Resolve(ctx context.Context, base, quote currency.Code, date time.Time) (*rates.Resolution, error)
}

// Service computes net worth for snapshots. It owns no persisted state: the
// result is a pure function of (entries, rates, reporting currency), so
// recomputation with unchanged storage is bit-identical.
type Service struct {
	ledger   Ledger
	resolver Resolver
}

func NewService(l Ledger, r Resolver) *Service {
	return &Service{ledger: l, resolver: r}
}

// Subtotal aggregates one source currency's contribution to a snapshot.
type Subtotal struct {
	Currency      currency.Code
	Original      decimal.Decimal // signed sum in the source currency
	Converted     decimal.Decimal // signed sum in the reporting currency
	Rate          decimal.Decimal
	EffectiveDate time.Time
	Source        rates.Source
}

// UnresolvedEntry is an entry excluded from the total because no usable rate
// was found within the fallback window.
type UnresolvedEntry struct {
	Entry  *ledger.Entry
	Reason rates.Reason
}

// Result is the outcome for one snapshot. Total carries full precision;
// rounding happens once, at the display boundary, via DisplayTotal.
type Result struct {
	SnapshotDate      time.Time
	ReportingCurrency currency.Code
	Total             decimal.Decimal
	ByCurrency        []Subtotal // sorted by currency code
	Unresolved        []UnresolvedEntry
}

// DisplayTotal rounds the total to the reporting currency's conventional
// fraction digits. This is the only rounding point in the computation.
func (r *Result) DisplayTotal() decimal.Decimal {
	return r.Total.Round(r.ReportingCurrency.Fraction())
}

// ComputeNetWorth values one snapshot in the reporting currency. Entries
// whose currency cannot be resolved are excluded from the total and listed in
// Unresolved with the reason; the result is always partial rather than
// all-or-nothing.
func (s *Service) ComputeNetWorth(ctx context.Context, snapshotDate time.Time, reporting currency.Code) (*Result, error) {
	snapshotDate = ledger.NormalizeDate(snapshotDate)

	entries, err := s.ledger.List(ctx, snapshotDate)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot entries: %w", err)
	}

	// One resolution per distinct source currency, in sorted order so the
	// result is deterministic.
	codes := distinctCurrencies(entries)

	resolutions := make(map[currency.Code]*rates.Resolution, len(codes))
	unavailable := make(map[currency.Code]rates.Reason)

	for _, code := range codes {
		res, err := s.resolver.Resolve(ctx, code, reporting, snapshotDate)
		if err != nil {
			var ue *rates.UnavailableError
			if errors.As(err, &ue) {
				unavailable[code] = ue.Reason

				slog.Warn("rate unresolved, excluding currency from total",
					"currency", code, "reporting", reporting,
					"date", snapshotDate.Format(time.DateOnly), "reason", ue.Reason)

				continue
			}

			return nil, fmt.Errorf("resolving %s/%s rate: %w", code, reporting, err)
		}

		resolutions[code] = res
	}

	result := &Result{
		SnapshotDate:      snapshotDate,
		ReportingCurrency: reporting,
	}

	subtotals := make(map[currency.Code]*Subtotal, len(resolutions))

	for _, e := range entries {
		res, ok := resolutions[e.Currency]
		if !ok {
			result.Unresolved = append(result.Unresolved, UnresolvedEntry{
				Entry:  e,
				Reason: unavailable[e.Currency],
			})

			continue
		}

		contribution := e.Contribution()
		converted := contribution.Mul(res.Rate)

		sub, ok := subtotals[e.Currency]
		if !ok {
			sub = &Subtotal{
				Currency:      e.Currency,
				Rate:          res.Rate,
				EffectiveDate: res.EffectiveDate,
				Source:        res.Source,
			}
			subtotals[e.Currency] = sub
		}

		sub.Original = sub.Original.Add(contribution)
		sub.Converted = sub.Converted.Add(converted)
	}

	for _, code := range codes {
		sub, ok := subtotals[code]
		if !ok {
			continue
		}

		result.ByCurrency = append(result.ByCurrency, *sub)
		result.Total = result.Total.Add(sub.Converted)
	}

	return result, nil
}

// ComputeSeries values every known snapshot within [start, end], one Result
// per snapshot date, ascending. A snapshot that fails to compute is logged
// and skipped; it never aborts the rest of the series.
func (s *Service) ComputeSeries(ctx context.Context, start, end time.Time, reporting currency.Code) ([]*Result, error) {
	start = ledger.NormalizeDate(start)
	end = ledger.NormalizeDate(end)

	dates, err := s.ledger.SnapshotDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing snapshot dates: %w", err)
	}

	var results []*Result

	for _, d := range dates {
		if d.Before(start) || d.After(end) {
			continue
		}

		r, err := s.ComputeNetWorth(ctx, d, reporting)
		if err != nil {
			slog.Error("snapshot valuation failed, skipping",
				"date", d.Format(time.DateOnly), "error", err)

			continue
		}

		results = append(results, r)
	}

	return results, nil
}

func distinctCurrencies(entries []*ledger.Entry) []currency.Code {
	seen := make(map[currency.Code]struct{}, len(entries))

	var codes []currency.Code

	for _, e := range entries {
		if _, ok := seen[e.Currency]; ok {
			continue
		}

		seen[e.Currency] = struct{}{}
		codes = append(codes, e.Currency)
	}

	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	return codes
}
