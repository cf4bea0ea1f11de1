package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safar/shopcli/internal/models"
)

// Processor is the single capability a payment method must offer. The
// checkout transaction drives every implementation identically.
type Processor interface {
	Process(amount decimal.Decimal) (reference string, err error)
}

// CardProcessor simulates a card gateway. There is no real gateway
// behind it; it authorizes any non-negative amount.
type CardProcessor struct{}

func (CardProcessor) Process(amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", fmt.Errorf("invalid amount %s", amount)
	}
	return "card-" + uuid.NewString(), nil
}

// WalletProcessor simulates a stored-value wallet.
type WalletProcessor struct{}

func (WalletProcessor) Process(amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", fmt.Errorf("invalid amount %s", amount)
	}
	return "wallet-" + uuid.NewString(), nil
}

func (s *Service) processorFor(method models.PaymentMethod) (Processor, error) {
	p, ok := s.processors[method]
	if !ok {
		return nil, fmt.Errorf("%q: %w", method, ErrUnsupportedPaymentMethod)
	}
	return p, nil
}
