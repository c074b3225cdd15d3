// Package frankfurter implements the rates.Provider contract against the
// frankfurter.app historical FX API.
package frankfurter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mycloudcondo/kuyan/internal/currency"
	"github.com/mycloudcondo/kuyan/internal/rates"
)

const DefaultBaseURL = "https://api.frankfurter.app"

type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// rateResponse mirrors the frankfurter payload:
//
//	{"amount":1.0,"base":"EUR","date":"2024-02-29","rates":{"USD":1.0826}}
//
// The "date" field is the date the rate actually applies to; frankfurter
// answers weekend and holiday queries with the prior banking day.
type rateResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchRate fetches the base→quote rate for the given date. It returns
// rates.ErrNoRate when the provider has nothing for the pair; transport and
// server errors are returned as-is and treated as transient by the resolver.
func (c *Client) FetchRate(ctx context.Context, base, quote currency.Code, date time.Time) (*rates.Quote, error) {
	q := url.Values{}
	q.Set("from", base.String())
	q.Set("to", quote.String())

	addr := fmt.Sprintf("%s/%s?%s", c.baseURL, date.Format(time.DateOnly), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("building rate request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching rate: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s/%s on %s: %w", base, quote, date.Format(time.DateOnly), rates.ErrNoRate)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetching rate: unexpected status %s", resp.Status)
	}

	var payload rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding rate response: %w", err)
	}

	rate, ok := payload.Rates[quote.String()]
	if !ok {
		return nil, fmt.Errorf("%s/%s on %s: %w", base, quote, date.Format(time.DateOnly), rates.ErrNoRate)
	}

	quoteOut := &rates.Quote{Rate: rate}

	if served, err := time.ParseInLocation(time.DateOnly, payload.Date, time.UTC); err == nil {
		quoteOut.Date = served
	}

	return quoteOut, nil
}
