// Package store implements the customer- and staff-facing operations:
// cart management, the checkout transaction, order fulfilment, and
// sales reporting. It owns no state of its own; everything lives in
// the storage collections and the inventory ledger.
package store

import (
	"log/slog"

	"github.com/safar/shopcli/internal/inventory"
	"github.com/safar/shopcli/internal/models"
	"github.com/safar/shopcli/internal/storage"
)

const DefaultMaxCartItems = 50

type Service struct {
	storage      *storage.Store
	ledger       *inventory.Ledger
	logger       *slog.Logger
	maxCartItems int
	processors   map[models.PaymentMethod]Processor
}

func NewService(st *storage.Store, ledger *inventory.Ledger, logger *slog.Logger, maxCartItems int) *Service {
	if maxCartItems <= 0 {
		maxCartItems = DefaultMaxCartItems
	}
	return &Service{
		storage:      st,
		ledger:       ledger,
		logger:       logger,
		maxCartItems: maxCartItems,
		processors: map[models.PaymentMethod]Processor{
			models.PaymentMethodCard:   CardProcessor{},
			models.PaymentMethodWallet: WalletProcessor{},
		},
	}
}

// RegisterProcessor swaps in a payment implementation for a method.
// The checkout transaction is identical whichever one runs.
func (s *Service) RegisterProcessor(method models.PaymentMethod, p Processor) {
	s.processors[method] = p
}

// Ledger exposes the inventory ledger for read-side consumers.
func (s *Service) Ledger() *inventory.Ledger {
	return s.ledger
}
