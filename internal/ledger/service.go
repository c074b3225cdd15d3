package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mycloudcondo/kuyan/internal/currency"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	ListEntries(ctx context.Context, snapshotDate time.Time) ([]*Entry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	ListSnapshotDates(ctx context.Context) ([]time.Time, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	SnapshotDate time.Time
	Category     Category
	Label        string
	Amount       decimal.Decimal
	Currency     string
}

// Add validates the input, assigns an id and persists the entry. The mutation
// is durable before Add returns.
func (s *Service) Add(ctx context.Context, params CreateParams) (*Entry, error) {
	if params.SnapshotDate.IsZero() {
		return nil, &ValidationError{Field: "snapshot_date", Reason: "must be set"}
	}

	if _, ok := params.Category.Side(); !ok {
		return nil, &ValidationError{Field: "category", Reason: "unknown category " + string(params.Category)}
	}

	if params.Label == "" {
		return nil, &ValidationError{Field: "label", Reason: "must not be empty"}
	}

	if params.Amount.IsNegative() {
		return nil, &ValidationError{Field: "amount", Reason: "must not be negative"}
	}

	code, err := currency.Parse(params.Currency)
	if err != nil {
		return nil, &ValidationError{Field: "currency", Reason: err.Error()}
	}

	entry := &Entry{
		ID:           uuid.New(),
		SnapshotDate: NormalizeDate(params.SnapshotDate),
		Category:     params.Category,
		Label:        params.Label,
		Amount:       params.Amount,
		Currency:     code,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

// List returns all entries recorded for the given snapshot date.
func (s *Service) List(ctx context.Context, snapshotDate time.Time) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, NormalizeDate(snapshotDate))
}

// Delete removes an entry permanently. Returns ErrNotFound if the id is
// unknown. Past computed valuations are not retroactively altered; callers
// recompute explicitly.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteEntry(ctx, id)
}

// SnapshotDates returns the distinct dates with at least one entry, ascending.
func (s *Service) SnapshotDates(ctx context.Context) ([]time.Time, error) {
	return s.repo.ListSnapshotDates(ctx)
}
