// Package export writes ledger entries as CSV in the same column layout the
// importer accepts, so an exported file round-trips through an import.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/mycloudcondo/kuyan/internal/ledger"
)

// Ledger is the slice of the ledger service the exporter reads from.
type Ledger interface {
	List(ctx context.Context, snapshotDate time.Time) ([]*ledger.Entry, error)
	SnapshotDates(ctx context.Context) ([]time.Time, error)
}

var header = []string{"date", "category", "label", "amount", "currency"}

type Service struct {
	ledger Ledger
}

func NewService(l Ledger) *Service {
	return &Service{ledger: l}
}

// ExportSnapshot writes one snapshot's entries to w.
func (s *Service) ExportSnapshot(ctx context.Context, w io.Writer, date time.Time) error {
	entries, err := s.ledger.List(ctx, date)
	if err != nil {
		return fmt.Errorf("listing entries: %w", err)
	}

	return write(w, entries)
}

// ExportAll writes every entry of every snapshot to w, in snapshot date
// order. This is the backup path for a local-first data set.
func (s *Service) ExportAll(ctx context.Context, w io.Writer) error {
	dates, err := s.ledger.SnapshotDates(ctx)
	if err != nil {
		return fmt.Errorf("listing snapshot dates: %w", err)
	}

	var all []*ledger.Entry

	for _, d := range dates {
		entries, err := s.ledger.List(ctx, d)
		if err != nil {
			return fmt.Errorf("listing entries for %s: %w", d.Format(time.DateOnly), err)
		}

		all = append(all, entries...)
	}

	return write(w, all)
}

func write(w io.Writer, entries []*ledger.Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range entries {
		record := []string{
			e.SnapshotDate.Format(time.DateOnly),
			string(e.Category),
			e.Label,
			e.Amount.String(),
			e.Currency.String(),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing entry %s: %w", e.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}
