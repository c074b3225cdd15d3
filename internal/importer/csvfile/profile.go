package csvfile

// Profile describes the column layout of a supported CSV file. Adding a new
// layout is just adding a Profile to the profiles slice.
type Profile struct {
	Name        string
	DateCol     string
	LabelCol    string
	AmountCol   string
	CurrencyCol string
	// CategoryCol is empty for layouts that carry no category; rows then get
	// a category inferred from the amount sign.
	CategoryCol string
	DateLayout  string
}

// requiredCols returns the headers that must all be present for this profile
// to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.LabelCol, p.AmountCol, p.CurrencyCol}

	if p.CategoryCol != "" {
		cols = append(cols, p.CategoryCol)
	}

	return cols
}

// profiles is the ordered list of layouts tried during auto-detection. More
// specific profiles come first to avoid false matches.
var profiles = []Profile{
	{
		// The layout the exporter writes; round-trips losslessly.
		Name:        "ledger",
		DateCol:     "date",
		LabelCol:    "label",
		AmountCol:   "amount",
		CurrencyCol: "currency",
		CategoryCol: "category",
		DateLayout:  "2006-01-02",
	},
	{
		// Balance report as produced by common banking portals.
		Name:        "balances",
		DateCol:     "Date",
		LabelCol:    "Account",
		AmountCol:   "Balance",
		CurrencyCol: "Currency",
		DateLayout:  "02-01-2006",
	},
}
