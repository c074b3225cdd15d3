package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mycloudcondo/kuyan/internal/ledger"
)

func TestService_Add(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		params    ledger.CreateParams
		setupMock func(m *ledger.MockRepository)
		wantField string
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: ledger.CreateParams{
				SnapshotDate: date,
				Category:     ledger.CategoryCash,
				Label:        "TD Chequing",
				Amount:       decimal.RequireFromString("3500.00"),
				Currency:     "CAD",
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *ledger.Entry) error {
						assert.NotEqual(t, uuid.Nil, e.ID)
						assert.Equal(t, date, e.SnapshotDate)
						return nil
					})
			},
		},
		{
			name: "NormalizesDateAndCurrency",
			params: ledger.CreateParams{
				SnapshotDate: time.Date(2024, 3, 1, 15, 4, 5, 0, time.FixedZone("CET", 3600)),
				Category:     ledger.CategoryLoan,
				Label:        "Car Loan",
				Amount:       decimal.RequireFromString("14000"),
				Currency:     "cad",
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *ledger.Entry) error {
						assert.Equal(t, date, e.SnapshotDate)
						assert.Equal(t, "CAD", e.Currency.String())
						return nil
					})
			},
		},
		{
			name: "NegativeAmount",
			params: ledger.CreateParams{
				SnapshotDate: date,
				Category:     ledger.CategoryCash,
				Label:        "TD Chequing",
				Amount:       decimal.RequireFromString("-1"),
				Currency:     "CAD",
			},
			wantErr:   true,
			wantField: "amount",
		},
		{
			name: "UnknownCurrency",
			params: ledger.CreateParams{
				SnapshotDate: date,
				Category:     ledger.CategoryCash,
				Label:        "TD Chequing",
				Amount:       decimal.RequireFromString("100"),
				Currency:     "ZZZ",
			},
			wantErr:   true,
			wantField: "currency",
		},
		{
			name: "UnknownCategory",
			params: ledger.CreateParams{
				SnapshotDate: date,
				Category:     "yacht",
				Label:        "Boat",
				Amount:       decimal.RequireFromString("100"),
				Currency:     "USD",
			},
			wantErr:   true,
			wantField: "category",
		},
		{
			name: "EmptyLabel",
			params: ledger.CreateParams{
				SnapshotDate: date,
				Category:     ledger.CategoryCash,
				Amount:       decimal.RequireFromString("100"),
				Currency:     "USD",
			},
			wantErr:   true,
			wantField: "label",
		},
		{
			name: "ZeroDate",
			params: ledger.CreateParams{
				Category: ledger.CategoryCash,
				Label:    "TD Chequing",
				Amount:   decimal.RequireFromString("100"),
				Currency: "USD",
			},
			wantErr:   true,
			wantField: "snapshot_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			got, err := svc.Add(context.Background(), tt.params)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)

				var verr *ledger.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr.Field)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().DeleteEntry(gomock.Any(), id).Return(ledger.ErrNotFound)

	svc := ledger.NewService(repo)
	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	repo := ledger.NewMockRepository(ctrl)
	// List must normalize any time-of-day to the snapshot day.
	repo.EXPECT().
		ListEntries(gomock.Any(), date).
		Return([]*ledger.Entry{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	svc := ledger.NewService(repo)
	got, err := svc.List(context.Background(), date.Add(13*time.Hour))

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_SnapshotDates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().ListSnapshotDates(gomock.Any()).Return(nil, errors.New("db error"))

	svc := ledger.NewService(repo)
	_, err := svc.SnapshotDates(context.Background())

	assert.Error(t, err)
}

func TestEntry_Contribution(t *testing.T) {
	asset := &ledger.Entry{Category: ledger.CategoryInvestment, Amount: decimal.RequireFromString("1000")}
	liability := &ledger.Entry{Category: ledger.CategoryCreditCard, Amount: decimal.RequireFromString("200")}

	assert.True(t, asset.Contribution().Equal(decimal.RequireFromString("1000")))
	assert.True(t, liability.Contribution().Equal(decimal.RequireFromString("-200")))
}
