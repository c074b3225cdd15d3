package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mycloudcondo/kuyan/internal/currency"
	"github.com/mycloudcondo/kuyan/internal/database"
	"github.com/mycloudcondo/kuyan/internal/ledger"
)

type Store struct {
	db *database.DB
}

func New(db *database.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectEntryColumns = `id, snapshot_date, category, label, amount, currency, created_at`

func scanEntry(s scanner) (*ledger.Entry, error) {
	var idStr, dateStr, categoryStr, label, amountStr, currencyStr, createdStr string

	if err := s.Scan(&idStr, &dateStr, &categoryStr, &label, &amountStr, &currencyStr, &createdStr); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parsing entry id: %w", err)
	}

	snapshotDate, err := time.ParseInLocation(time.DateOnly, dateStr, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot date: %w", err)
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("parsing amount: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &ledger.Entry{
		ID:           id,
		SnapshotDate: snapshotDate,
		Category:     ledger.Category(categoryStr),
		Label:        label,
		Amount:       amount,
		Currency:     currency.Code(currencyStr),
		CreatedAt:    createdAt,
	}, nil
}

func (s *Store) CreateEntry(ctx context.Context, e *ledger.Entry) error {
	query := s.db.Rebind(`
		INSERT INTO entries (id, snapshot_date, category, label, amount, currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := s.db.ExecContext(ctx, query,
		e.ID.String(),
		e.SnapshotDate.Format(time.DateOnly),
		string(e.Category),
		e.Label,
		e.Amount.String(),
		e.Currency.String(),
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("creating entry: %w", err)
	}

	return nil
}

func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	query := s.db.Rebind(`SELECT ` + selectEntryColumns + ` FROM entries WHERE id = ?`)

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting entry: %w", err)
	}

	return e, nil
}

func (s *Store) ListEntries(ctx context.Context, snapshotDate time.Time) ([]*ledger.Entry, error) {
	query := s.db.Rebind(`SELECT ` + selectEntryColumns + `
		FROM entries
		WHERE snapshot_date = ?
		ORDER BY created_at ASC, id ASC`)

	rows, err := s.db.QueryContext(ctx, query, snapshotDate.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entry rows: %w", err)
	}

	return entries, nil
}

func (s *Store) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	query := s.db.Rebind(`DELETE FROM entries WHERE id = ?`)

	res, err := s.db.ExecContext(ctx, query, id.String())
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	if affected == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

func (s *Store) ListSnapshotDates(ctx context.Context) ([]time.Time, error) {
	query := `SELECT DISTINCT snapshot_date FROM entries ORDER BY snapshot_date ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing snapshot dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time

	for rows.Next() {
		var dateStr string
		if err := rows.Scan(&dateStr); err != nil {
			return nil, fmt.Errorf("scanning snapshot date: %w", err)
		}

		d, err := time.ParseInLocation(time.DateOnly, dateStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parsing snapshot date: %w", err)
		}

		dates = append(dates, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot date rows: %w", err)
	}

	return dates, nil
}
