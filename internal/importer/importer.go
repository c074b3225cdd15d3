package importer

import (
	"io"

	"github.com/mycloudcondo/kuyan/internal/ledger"
)

type Format string

const (
	FormatCSV Format = "csv"
)

// Importer parses a statement file into ledger entry params, also reporting
// how many data rows were skipped as unusable. Implementations own delimiter,
// encoding and column-layout concerns; validation happens when the params
// reach the ledger.
type Importer interface {
	Parse(r io.Reader) ([]ledger.CreateParams, int, error)
}
