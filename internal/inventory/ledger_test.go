package inventory

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safar/shopcli/internal/models"
	"github.com/safar/shopcli/internal/storage"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	st, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	ledger, err := NewLedger(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return ledger
}

func TestLedger_ReserveMovesAvailableToReserved(t *testing.T) {
	ledger := newTestLedger(t)
	require.NoError(t, ledger.SetStock(1, 10))

	require.NoError(t, ledger.Reserve(1, 4))

	rec := ledger.Stock(1)
	assert.Equal(t, 6, rec.Available)
	assert.Equal(t, 4, rec.Reserved)
}

func TestLedger_ReserveInsufficientStock(t *testing.T) {
	ledger := newTestLedger(t)
	require.NoError(t, ledger.SetStock(1, 3))

	err := ledger.Reserve(1, 4)
	require.ErrorIs(t, err, ErrInsufficientStock)

	rec := ledger.Stock(1)
	assert.Equal(t, 3, rec.Available)
	assert.Equal(t, 0, rec.Reserved)
}

func TestLedger_ReserveRejectsNonPositiveQuantity(t *testing.T) {
	ledger := newTestLedger(t)
	require.NoError(t, ledger.SetStock(1, 10))

	assert.ErrorIs(t, ledger.Reserve(1, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, ledger.Reserve(1, -2), ErrInvalidQuantity)
}

func TestLedger_ReserveReleaseRoundTrip(t *testing.T) {
	ledger := newTestLedger(t)
	require.NoError(t, ledger.SetStock(1, 10))

	require.NoError(t, ledger.Reserve(1, 7))
	require.NoError(t, ledger.Release(1, 7))

	rec := ledger.Stock(1)
	assert.Equal(t, 10, rec.Available)
	assert.Equal(t, 0, rec.Reserved)
}

func TestLedger_ReleaseBeyondReserved(t *testing.T) {
	ledger := newTestLedger(t)
	require.NoError(t, ledger.SetStock(1, 10))
	require.NoError(t, ledger.Reserve(1, 2))

	assert.ErrorIs(t, ledger.Release(1, 3), ErrInvalidRelease)
}

func TestLedger_DeductRemovesUnitsPermanently(t *testing.T) {
	ledger := newTestLedger(t)
	require.NoError(t, ledger.SetStock(1, 10))

	require.NoError(t, ledger.Reserve(1, 4))
	require.NoError(t, ledger.Deduct(1, 4))

	rec := ledger.Stock(1)
	assert.Equal(t, 6, rec.Available, "deducted units must not return to available")
	assert.Equal(t, 0, rec.Reserved)
}

func TestLedger_DeductBeyondReserved(t *testing.T) {
	ledger := newTestLedger(t)
	require.NoError(t, ledger.SetStock(1, 10))
	require.NoError(t, ledger.Reserve(1, 2))

	assert.ErrorIs(t, ledger.Deduct(1, 5), ErrInvalidDeduction)
}

func TestLedger_SetStockRejectsNegative(t *testing.T) {
	ledger := newTestLedger(t)
	assert.ErrorIs(t, ledger.SetStock(1, -1), ErrNegativeStock)
}

func TestLedger_SetStockLeavesReservedAlone(t *testing.T) {
	ledger := newTestLedger(t)
	require.NoError(t, ledger.SetStock(1, 10))
	require.NoError(t, ledger.Reserve(1, 3))

	require.NoError(t, ledger.SetStock(1, 20))

	rec := ledger.Stock(1)
	assert.Equal(t, 20, rec.Available)
	assert.Equal(t, 3, rec.Reserved)
}

func TestLedger_ReserveAllRollsBackOnPartialFailure(t *testing.T) {
	ledger := newTestLedger(t)
	require.NoError(t, ledger.SetStock(1, 5))
	require.NoError(t, ledger.SetStock(2, 0))

	err := ledger.ReserveAll([]Line{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 1},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "product 2")

	recA := ledger.Stock(1)
	assert.Equal(t, 5, recA.Available, "earlier reservation must be rolled back")
	assert.Equal(t, 0, recA.Reserved)
}

func TestLedger_ReserveAllRollsBackWhenPersistFails(t *testing.T) {
	dir := t.TempDir()
	st, err := storage.Open(dir)
	require.NoError(t, err)
	ledger, err := NewLedger(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.NoError(t, ledger.SetStock(1, 5))

	// Replace the snapshot file with a directory so the save cannot
	// land.
	stockPath := filepath.Join(dir, "stock.json")
	require.NoError(t, os.Remove(stockPath))
	require.NoError(t, os.Mkdir(stockPath, 0o755))

	err = ledger.ReserveAll([]Line{{ProductID: 1, Quantity: 2}})
	require.Error(t, err)

	rec := ledger.Stock(1)
	assert.Equal(t, 5, rec.Available, "unpersisted reservation must not survive in memory")
	assert.Equal(t, 0, rec.Reserved)
}

func TestLedger_ReserveAllThenDeductAll(t *testing.T) {
	ledger := newTestLedger(t)
	require.NoError(t, ledger.SetStock(1, 5))
	require.NoError(t, ledger.SetStock(2, 8))

	lines := []Line{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	}
	require.NoError(t, ledger.ReserveAll(lines))
	require.NoError(t, ledger.DeductAll(lines))

	assert.Equal(t, models.StockRecord{ProductID: 1, Available: 3}, ledger.Stock(1))
	assert.Equal(t, models.StockRecord{ProductID: 2, Available: 5}, ledger.Stock(2))
}

func TestLedger_PersistsAcrossReload(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := storage.Open(dir)
	require.NoError(t, err)
	ledger, err := NewLedger(st, logger)
	require.NoError(t, err)
	require.NoError(t, ledger.SetStock(1, 10))
	require.NoError(t, ledger.Reserve(1, 4))

	reopened, err := NewLedger(st, logger)
	require.NoError(t, err)
	rec := reopened.Stock(1)
	assert.Equal(t, 6, rec.Available)
	assert.Equal(t, 4, rec.Reserved)
}

func TestLedger_LowStock(t *testing.T) {
	ledger := newTestLedger(t)
	require.NoError(t, ledger.SetStock(1, 2))
	require.NoError(t, ledger.SetStock(2, 100))
	require.NoError(t, ledger.SetStock(3, 5))

	low := ledger.LowStock(5)
	require.Len(t, low, 2)
	assert.Equal(t, int64(1), low[0].ProductID)
	assert.Equal(t, int64(3), low[1].ProductID)
}
