package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mycloudcondo/kuyan/internal/importer"
	"github.com/mycloudcondo/kuyan/internal/ledger"
)

func TestService_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	csv := `date,category,label,amount,currency
2024-03-01,cash,TD CHEQUING 0334,3500.00,CAD
2024-03-01,investment,Wealthsimple TFSA,18000.25,CAD
`

	labels := importer.NewMockLabels(ctrl)
	// A learned mapping rewrites the raw statement label; the other passes
	// through untouched.
	labels.EXPECT().Suggest(gomock.Any(), "TD CHEQUING 0334").Return("TD Chequing", nil)
	labels.EXPECT().Suggest(gomock.Any(), "Wealthsimple TFSA").Return("", nil)

	var added []ledger.CreateParams

	ledgerMock := importer.NewMockLedger(ctrl)
	ledgerMock.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p ledger.CreateParams) (*ledger.Entry, error) {
			added = append(added, p)
			return &ledger.Entry{ID: uuid.New()}, nil
		}).
		Times(2)

	svc := importer.NewService(ledgerMock, labels)
	summary, err := svc.Import(context.Background(), importer.FormatCSV, strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 0, summary.Skipped)

	require.Len(t, added, 2)
	assert.Equal(t, "TD Chequing", added[0].Label)
	assert.Equal(t, "Wealthsimple TFSA", added[1].Label)
}

func TestService_Import_SkipsInvalidRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	csv := `date,category,label,amount,currency
2024-03-01,cash,TD Chequing,3500.00,CAD
2024-03-01,yacht,Boat,100,CAD
`

	labels := importer.NewMockLabels(ctrl)
	labels.EXPECT().Suggest(gomock.Any(), gomock.Any()).Return("", nil).Times(2)

	ledgerMock := importer.NewMockLedger(ctrl)
	gomock.InOrder(
		ledgerMock.EXPECT().
			Add(gomock.Any(), gomock.Any()).
			Return(&ledger.Entry{ID: uuid.New()}, nil),
		ledgerMock.EXPECT().
			Add(gomock.Any(), gomock.Any()).
			Return(nil, &ledger.ValidationError{Field: "category", Reason: "unknown category"}),
	)

	svc := importer.NewService(ledgerMock, labels)
	summary, err := svc.Import(context.Background(), importer.FormatCSV, strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Skipped)
}

func TestService_Import_UnknownFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := importer.NewService(importer.NewMockLedger(ctrl), importer.NewMockLabels(ctrl))
	_, err := svc.Import(context.Background(), "ofx", strings.NewReader(""))

	assert.Error(t, err)
}
