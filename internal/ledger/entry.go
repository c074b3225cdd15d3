package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mycloudcondo/kuyan/internal/currency"
)

// Side distinguishes entries that add to net worth from entries that subtract
// from it.
type Side string

const (
	SideAsset     Side = "asset"
	SideLiability Side = "liability"
)

// Category is a closed enumeration of entry sub-types. Every category maps to
// exactly one Side; amounts are stored as non-negative magnitudes and the
// contribution sign is derived from the category, never from the amount.
type Category string

const (
	CategoryCash       Category = "cash"
	CategoryDeposit    Category = "deposit"
	CategoryInvestment Category = "investment"
	CategoryProperty   Category = "property"
	CategoryPension    Category = "pension"
	CategoryLoan       Category = "loan"
	CategoryMortgage   Category = "mortgage"
	CategoryCreditCard Category = "credit_card"
)

var categorySides = map[Category]Side{
	CategoryCash:       SideAsset,
	CategoryDeposit:    SideAsset,
	CategoryInvestment: SideAsset,
	CategoryProperty:   SideAsset,
	CategoryPension:    SideAsset,
	CategoryLoan:       SideLiability,
	CategoryMortgage:   SideLiability,
	CategoryCreditCard: SideLiability,
}

// Side returns the side the category contributes to. ok is false for unknown
// categories.
func (c Category) Side() (Side, bool) {
	side, ok := categorySides[c]
	return side, ok
}

// Entry is one line item of wealth at one point in time.
type Entry struct {
	ID           uuid.UUID
	SnapshotDate time.Time // midnight UTC, day granularity
	Category     Category
	Label        string
	Amount       decimal.Decimal // non-negative magnitude in Currency
	Currency     currency.Code
	CreatedAt    time.Time
}

// Contribution returns the signed amount the entry contributes to net worth,
// in the entry's own currency.
func (e *Entry) Contribution() decimal.Decimal {
	if side, _ := e.Category.Side(); side == SideLiability {
		return e.Amount.Neg()
	}

	return e.Amount
}

// NormalizeDate truncates t to its calendar day at midnight UTC. All snapshot
// dates in the system pass through here so date equality is plain equality.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
