// Package csvfile reads CSV statement files and produces ledger entry
// params. It auto-detects the column layout by matching headers against
// known profiles, and the field delimiter from the header line.
package csvfile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/mycloudcondo/kuyan/internal/encoding"
	"github.com/mycloudcondo/kuyan/internal/ledger"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]ledger.CreateParams, int, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("detecting encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, 0, fmt.Errorf("reading input: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = detectDelimiter(raw)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("reading csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, 0, fmt.Errorf("no known column layout found: want a ledger or balances header")
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// detectDelimiter picks ';' over ',' when the header line leans that way;
// banking portals in much of Europe export semicolon-separated files.
func detectDelimiter(raw []byte) rune {
	line := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		line = raw[:i]
	}

	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}

	return ','
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header matching a known profile. Preamble
// rows before the real header (report titles, account metadata) are common,
// so every row is a candidate.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts entry params from data rows using the matched profile,
// also counting rows skipped as unusable. headerRowNum is the 0-based index
// of the header in the original file, used for row numbers in messages.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]ledger.CreateParams, int, error) {
	var (
		params  []ledger.CreateParams
		skipped int
	)

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, past the header

		date, ok := parseDate(p, row, cols[p.DateCol])
		if !ok {
			// Footer and summary rows have no date cell; skip them.
			continue
		}

		label := cellValue(row, cols[p.LabelCol])
		if label == "" {
			return nil, 0, fmt.Errorf("row %d: missing label", rowNum)
		}

		amountStr := cellValue(row, cols[p.AmountCol])
		if amountStr == "" {
			continue
		}

		amount, err := parseAmount(amountStr)
		if err != nil {
			// An unreadable amount invalidates the row, not the import.
			skipped++
			slog.Warn("skipping row with unparseable amount",
				"row", rowNum, "label", label, "amount", amountStr)

			continue
		}

		// Without a category column, a negative balance is owed money and a
		// positive one is held money.
		category := ledger.CategoryCash
		if p.CategoryCol != "" {
			category = ledger.Category(cellValue(row, cols[p.CategoryCol]))
		} else if amount.IsNegative() {
			category = ledger.CategoryCreditCard
			amount = amount.Neg()
		}

		params = append(params, ledger.CreateParams{
			SnapshotDate: date,
			Category:     category,
			Label:        label,
			Amount:       amount,
			Currency:     cellValue(row, cols[p.CurrencyCol]),
		})
	}

	return params, skipped, nil
}

func parseDate(p *Profile, row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.ParseInLocation(p.DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
