package entry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mycloudcondo/kuyan/internal/ledger"
)

type entryResponse struct {
	ID           uuid.UUID       `json:"id"`
	SnapshotDate string          `json:"snapshot_date"`
	Category     ledger.Category `json:"category"`
	Side         ledger.Side     `json:"side"`
	Label        string          `json:"label"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toResponse(e *ledger.Entry) entryResponse {
	side, _ := e.Category.Side()

	return entryResponse{
		ID:           e.ID,
		SnapshotDate: e.SnapshotDate.Format(time.DateOnly),
		Category:     e.Category,
		Side:         side,
		Label:        e.Label,
		Amount:       e.Amount,
		Currency:     e.Currency.String(),
		CreatedAt:    e.CreatedAt,
	}
}

func toResponseList(entries []*ledger.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e)
	}

	return resp
}
