package frankfurter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycloudcondo/kuyan/internal/currency"
	"github.com/mycloudcondo/kuyan/internal/rates"
	"github.com/mycloudcondo/kuyan/internal/rates/frankfurter"
)

func TestClient_FetchRate(t *testing.T) {
	eur := currency.MustParse("EUR")
	usd := currency.MustParse("USD")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2024-02-29", r.URL.Path)
		assert.Equal(t, "EUR", r.URL.Query().Get("from"))
		assert.Equal(t, "USD", r.URL.Query().Get("to"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"amount":1.0,"base":"EUR","date":"2024-02-29","rates":{"USD":1.0826}}`))
	}))
	defer srv.Close()

	c := frankfurter.New(srv.URL, time.Second)
	got, err := c.FetchRate(context.Background(), eur, usd, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.True(t, got.Rate.Equal(decimal.RequireFromString("1.0826")))
	assert.True(t, got.Date.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
}

func TestClient_FetchRate_WeekendServedEarlierDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Saturday request answered with Friday's rate.
		assert.Equal(t, "/2024-03-02", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"amount":1.0,"base":"EUR","date":"2024-03-01","rates":{"USD":1.0794}}`))
	}))
	defer srv.Close()

	c := frankfurter.New(srv.URL, time.Second)
	got, err := c.FetchRate(context.Background(),
		currency.MustParse("EUR"), currency.MustParse("USD"),
		time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.True(t, got.Date.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestClient_FetchRate_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := frankfurter.New(srv.URL, time.Second)
	_, err := c.FetchRate(context.Background(),
		currency.MustParse("EUR"), currency.MustParse("USD"),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	assert.ErrorIs(t, err, rates.ErrNoRate)
}

func TestClient_FetchRate_MissingPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"amount":1.0,"base":"EUR","date":"2024-03-01","rates":{"GBP":0.8551}}`))
	}))
	defer srv.Close()

	c := frankfurter.New(srv.URL, time.Second)
	_, err := c.FetchRate(context.Background(),
		currency.MustParse("EUR"), currency.MustParse("USD"),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	assert.ErrorIs(t, err, rates.ErrNoRate)
}

func TestClient_FetchRate_ServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := frankfurter.New(srv.URL, time.Second)
	_, err := c.FetchRate(context.Background(),
		currency.MustParse("EUR"), currency.MustParse("USD"),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	require.Error(t, err)
	assert.NotErrorIs(t, err, rates.ErrNoRate)
}
