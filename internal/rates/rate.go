package rates

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mycloudcondo/kuyan/internal/currency"
)

// ExchangeRate is a cached historical fact: Rate quote units per one base
// unit on Date. At most one rate exists per (base, quote, date) triple and it
// is never overwritten once stored.
type ExchangeRate struct {
	Base      currency.Code
	Quote     currency.Code
	Date      time.Time // midnight UTC, day granularity
	Rate      decimal.Decimal
	FetchedAt time.Time
}

// Quote is a provider answer. Date is the date the provider actually served,
// which may precede the requested date when no rate was published for it
// (weekends, market holidays).
type Quote struct {
	Rate decimal.Decimal
	Date time.Time
}

// normalizeDate truncates t to its calendar day at midnight UTC, the
// granularity every cached rate is keyed on.
func normalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Source records which step of the resolution produced a rate.
type Source string

const (
	SourceIdentity Source = "identity"
	SourceCache    Source = "cache"
	SourceProvider Source = "provider"
	SourceFallback Source = "fallback"
)

// Resolution is the outcome of a successful rate lookup. EffectiveDate equals
// RequestedDate unless a fallback rate from an earlier date was substituted;
// the substitution is always recorded, never silent.
type Resolution struct {
	Base          currency.Code
	Quote         currency.Code
	Rate          decimal.Decimal
	RequestedDate time.Time
	EffectiveDate time.Time
	Source        Source
}
