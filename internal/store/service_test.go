package store

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/safar/shopcli/internal/inventory"
	"github.com/safar/shopcli/internal/models"
	"github.com/safar/shopcli/internal/storage"
)

// declineProcessor fails every payment, standing in for a gateway
// rejection.
type declineProcessor struct{}

func (declineProcessor) Process(amount decimal.Decimal) (string, error) {
	return "", errors.New("card declined by issuer")
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := storage.Open(t.TempDir())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ledger, err := inventory.NewLedger(st, logger)
	require.NoError(t, err)

	return NewService(st, ledger, logger, DefaultMaxCartItems)
}

func seedProduct(t *testing.T, s *Service, name, price string, stock int) *models.Product {
	t.Helper()
	p, err := s.AddProduct(name, "", "Grocery", mustDecimal(t, price), stock)
	require.NoError(t, err)
	return p
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
