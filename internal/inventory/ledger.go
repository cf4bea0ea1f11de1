// Package inventory holds the stock ledger: the single authority for
// how many units of each product are available for sale and how many
// are reserved by in-flight checkouts.
package inventory

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/safar/shopcli/internal/models"
	"github.com/safar/shopcli/internal/storage"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidRelease    = errors.New("release exceeds reserved stock")
	ErrInvalidDeduction  = errors.New("deduction exceeds reserved stock")
	ErrNegativeStock     = errors.New("stock cannot be negative")
)

// Line is one product-quantity pair in a multi-line reservation.
type Line struct {
	ProductID int64
	Quantity  int
}

// Ledger owns every StockRecord. There is exactly one per process,
// threaded through the services that need it. Mutations persist the
// whole stock collection before returning.
type Ledger struct {
	mu      sync.Mutex
	store   *storage.Store
	records map[int64]*models.StockRecord
	logger  *slog.Logger
}

func NewLedger(store *storage.Store, logger *slog.Logger) (*Ledger, error) {
	records, err := storage.Load[models.StockRecord](store, storage.CollectionStock)
	if err != nil {
		return nil, fmt.Errorf("load stock: %w", err)
	}

	byProduct := make(map[int64]*models.StockRecord, len(records))
	for i := range records {
		rec := records[i]
		byProduct[rec.ProductID] = &rec
	}

	return &Ledger{store: store, records: byProduct, logger: logger}, nil
}

// Stock returns the record for a product. Unknown products read as
// zero stock.
func (l *Ledger) Stock(productID int64) models.StockRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rec, ok := l.records[productID]; ok {
		return *rec
	}
	return models.StockRecord{ProductID: productID}
}

// Snapshot returns every record ordered by product id.
func (l *Ledger) Snapshot() []models.StockRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *Ledger) snapshotLocked() []models.StockRecord {
	out := make([]models.StockRecord, 0, len(l.records))
	for _, rec := range l.records {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// LowStock lists products whose available count is at or below the
// threshold.
func (l *Ledger) LowStock(threshold int) []models.StockRecord {
	var out []models.StockRecord
	for _, rec := range l.Snapshot() {
		if rec.Available <= threshold {
			out = append(out, rec)
		}
	}
	return out
}

// Reserve moves qty units from available to reserved.
func (l *Ledger) Reserve(productID int64, qty int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.reserveLocked(productID, qty); err != nil {
		return err
	}
	return l.saveLocked()
}

// Release moves qty units from reserved back to available.
func (l *Ledger) Release(productID int64, qty int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.releaseLocked(productID, qty); err != nil {
		return err
	}
	return l.saveLocked()
}

// Deduct permanently removes qty reserved units. Available is
// untouched; the units leave the ledger.
func (l *Ledger) Deduct(productID int64, qty int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.deductLocked(productID, qty); err != nil {
		return err
	}
	return l.saveLocked()
}

// SetStock sets the available count outright. Reserved is untouched.
func (l *Ledger) SetStock(productID int64, qty int) error {
	if qty < 0 {
		return fmt.Errorf("product %d: %w", productID, ErrNegativeStock)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.record(productID).Available = qty
	return l.saveLocked()
}

// ReserveAll reserves every line or none. When a line fails, lines
// already reserved in this call are rolled back before the error is
// surfaced, so a failed multi-item checkout leaves the ledger exactly
// as it found it.
func (l *Ledger) ReserveAll(lines []Line) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	reserved := make([]Line, 0, len(lines))
	for _, line := range lines {
		if err := l.reserveLocked(line.ProductID, line.Quantity); err != nil {
			for _, undo := range reserved {
				if rbErr := l.releaseLocked(undo.ProductID, undo.Quantity); rbErr != nil {
					l.logger.Error("reservation rollback failed",
						"product_id", undo.ProductID, "error", rbErr)
				}
			}
			return err
		}
		reserved = append(reserved, line)
	}

	// A reservation that never reached disk must not survive in memory
	// either; the caller sees an error and will never deduct or
	// release it.
	if err := l.saveLocked(); err != nil {
		for _, undo := range reserved {
			if rbErr := l.releaseLocked(undo.ProductID, undo.Quantity); rbErr != nil {
				l.logger.Error("reservation rollback failed",
					"product_id", undo.ProductID, "error", rbErr)
			}
		}
		return err
	}
	return nil
}

// ReleaseAll returns every line's reservation to available stock.
func (l *Ledger) ReleaseAll(lines []Line) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, line := range lines {
		if err := l.releaseLocked(line.ProductID, line.Quantity); err != nil {
			return err
		}
	}
	return l.saveLocked()
}

// DeductAll permanently deducts every line's reservation.
func (l *Ledger) DeductAll(lines []Line) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, line := range lines {
		if err := l.deductLocked(line.ProductID, line.Quantity); err != nil {
			return err
		}
	}
	return l.saveLocked()
}

func (l *Ledger) record(productID int64) *models.StockRecord {
	rec, ok := l.records[productID]
	if !ok {
		rec = &models.StockRecord{ProductID: productID}
		l.records[productID] = rec
	}
	return rec
}

func (l *Ledger) reserveLocked(productID int64, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("product %d: %w", productID, ErrInvalidQuantity)
	}
	rec := l.record(productID)
	if rec.Available < qty {
		return fmt.Errorf("product %d: %d available, %d requested: %w",
			productID, rec.Available, qty, ErrInsufficientStock)
	}
	rec.Available -= qty
	rec.Reserved += qty
	return nil
}

func (l *Ledger) releaseLocked(productID int64, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("product %d: %w", productID, ErrInvalidQuantity)
	}
	rec := l.record(productID)
	if rec.Reserved < qty {
		return fmt.Errorf("product %d: %w", productID, ErrInvalidRelease)
	}
	rec.Reserved -= qty
	rec.Available += qty
	return nil
}

func (l *Ledger) deductLocked(productID int64, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("product %d: %w", productID, ErrInvalidQuantity)
	}
	rec := l.record(productID)
	if rec.Reserved < qty {
		return fmt.Errorf("product %d: %w", productID, ErrInvalidDeduction)
	}
	rec.Reserved -= qty
	return nil
}

func (l *Ledger) saveLocked() error {
	if err := storage.Save(l.store, storage.CollectionStock, l.snapshotLocked()); err != nil {
		return fmt.Errorf("save stock: %w", err)
	}
	return nil
}
