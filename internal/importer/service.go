package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mycloudcondo/kuyan/internal/importer/csvfile"
	"github.com/mycloudcondo/kuyan/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer

// Ledger receives the parsed entries; validation lives there, not here.
type Ledger interface {
	Add(ctx context.Context, params ledger.CreateParams) (*ledger.Entry, error)
}

// Labels rewrites raw statement labels to the user's preferred ones.
type Labels interface {
	Suggest(ctx context.Context, rawLabel string) (string, error)
}

// Summary reports what an import did. Skipped counts rows that parsed but
// failed ledger validation; they are logged, not fatal.
type Summary struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

type Service struct {
	csvImporter Importer
	ledger      Ledger
	labels      Labels
}

func NewService(l Ledger, labels Labels) *Service {
	return &Service{
		csvImporter: csvfile.NewParser(),
		ledger:      l,
		labels:      labels,
	}
}

func (s *Service) Import(ctx context.Context, format Format, r io.Reader) (*Summary, error) {
	var imp Importer

	switch format {
	case FormatCSV:
		imp = s.csvImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	params, skipped, err := imp.Parse(r)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Skipped: skipped}

	for _, p := range params {
		preferred, err := s.labels.Suggest(ctx, p.Label)
		if err != nil {
			return nil, fmt.Errorf("suggesting label for %q: %w", p.Label, err)
		}

		if preferred != "" {
			p.Label = preferred
		}

		if _, err := s.ledger.Add(ctx, p); err != nil {
			var verr *ledger.ValidationError
			if errors.As(err, &verr) {
				summary.Skipped++
				slog.Warn("skipping invalid imported row",
					"label", p.Label, "field", verr.Field, "reason", verr.Reason)

				continue
			}

			return nil, fmt.Errorf("adding imported entry %q: %w", p.Label, err)
		}

		summary.Created++
	}

	return summary, nil
}
