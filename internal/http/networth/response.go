package networth

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mycloudcondo/kuyan/internal/valuation"
)

type resultResponse struct {
	SnapshotDate      string              `json:"snapshot_date"`
	ReportingCurrency string              `json:"reporting_currency"`
	Total             decimal.Decimal     `json:"total"`
	ByCurrency        []subtotalResponse  `json:"by_currency"`
	Unresolved        []unresolvedEntry   `json:"unresolved,omitempty"`
}

type subtotalResponse struct {
	Currency      string          `json:"currency"`
	Original      decimal.Decimal `json:"original"`
	Converted     decimal.Decimal `json:"converted"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate string          `json:"effective_date"`
	Source        string          `json:"source"`
}

type unresolvedEntry struct {
	EntryID  uuid.UUID       `json:"entry_id"`
	Label    string          `json:"label"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Reason   string          `json:"reason"`
}

// toResponse is the display boundary: totals and converted subtotals are
// rounded here, once, to the reporting currency's fraction digits. The
// engine's Result keeps full precision.
func toResponse(r *valuation.Result) resultResponse {
	fraction := r.ReportingCurrency.Fraction()

	resp := resultResponse{
		SnapshotDate:      r.SnapshotDate.Format(time.DateOnly),
		ReportingCurrency: r.ReportingCurrency.String(),
		Total:             r.DisplayTotal(),
		ByCurrency:        make([]subtotalResponse, len(r.ByCurrency)),
	}

	for i, sub := range r.ByCurrency {
		resp.ByCurrency[i] = subtotalResponse{
			Currency:      sub.Currency.String(),
			Original:      sub.Original,
			Converted:     sub.Converted.Round(fraction),
			Rate:          sub.Rate,
			EffectiveDate: sub.EffectiveDate.Format(time.DateOnly),
			Source:        string(sub.Source),
		}
	}

	for _, u := range r.Unresolved {
		resp.Unresolved = append(resp.Unresolved, unresolvedEntry{
			EntryID:  u.Entry.ID,
			Label:    u.Entry.Label,
			Amount:   u.Entry.Amount,
			Currency: u.Entry.Currency.String(),
			Reason:   string(u.Reason),
		})
	}

	return resp
}

func toResponseList(results []*valuation.Result) []resultResponse {
	resp := make([]resultResponse, len(results))
	for i, r := range results {
		resp[i] = toResponse(r)
	}

	return resp
}
