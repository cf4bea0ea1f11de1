package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/safar/shopcli/internal/inventory"
	"github.com/safar/shopcli/internal/models"
	"github.com/safar/shopcli/internal/storage"
)

type CheckoutResult struct {
	Order   models.Order
	Invoice models.Invoice
	Payment models.Payment
}

func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%d", time.Now().UnixNano())
}

// Checkout converts the customer's cart into a paid order as one
// logical unit:
//
//  1. reserve stock for every line, all-or-nothing;
//  2. materialize a pending order snapshotting current unit prices;
//  3. run the payment;
//  4. on success deduct the reservations, mark the order paid, issue
//     the invoice, and clear the cart;
//  5. on failure release the reservations and drop the provisional
//     order, leaving cart and stock exactly as they were.
//
// A failed checkout never leaves stock reserved and never leaves a
// pending order behind.
func (s *Service) Checkout(customerID int64, method models.PaymentMethod) (*CheckoutResult, error) {
	processor, err := s.processorFor(method)
	if err != nil {
		return nil, err
	}

	carts, cart, err := s.loadCart(customerID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	products, err := s.productMap()
	if err != nil {
		return nil, err
	}

	lines := make([]inventory.Line, 0, len(cart.Items))
	items := make([]models.OrderItem, 0, len(cart.Items))
	total := decimal.Zero
	for _, item := range cart.Items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %d: %w", item.ProductID, ErrProductNotFound)
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, inventory.Line{ProductID: item.ProductID, Quantity: item.Quantity})
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}

	// Step 1: hold stock. On any line failing, the ledger has already
	// rolled the others back and the cart is untouched.
	if err := s.ledger.ReserveAll(lines); err != nil {
		s.logger.Warn("checkout reservation failed", "customer_id", customerID, "error", err)
		return nil, err
	}

	// Step 2: provisional order. Prices are frozen from here on.
	order, err := s.createPendingOrder(customerID, items, total)
	if err != nil {
		// Order never existed; put the stock back.
		if rbErr := s.ledger.ReleaseAll(lines); rbErr != nil {
			s.logger.Error("release after order create failure", "error", rbErr)
		}
		return nil, err
	}

	// Step 3: payment.
	reference, payErr := processor.Process(total)
	if payErr != nil {
		if rbErr := s.ledger.ReleaseAll(lines); rbErr != nil {
			s.logger.Error("release after declined payment", "order_id", order.ID, "error", rbErr)
		}
		if rmErr := s.deleteOrder(order.ID); rmErr != nil {
			s.logger.Error("drop provisional order", "order_id", order.ID, "error", rmErr)
		}
		if _, recErr := s.recordPayment(order.ID, method, total, models.PaymentStatusDeclined, ""); recErr != nil {
			return nil, recErr
		}
		s.logger.Warn("payment declined",
			"order_id", order.ID, "method", method, "amount", total, "error", payErr)
		return nil, fmt.Errorf("%s payment of %s declined: %w", method, total, ErrPaymentFailed)
	}

	// Step 4: commit. The reserved units are gone for good.
	if err := s.ledger.DeductAll(lines); err != nil {
		return nil, fmt.Errorf("deduct reserved stock: %w", err)
	}

	order.Status = models.OrderStatusPaid
	if err := s.updateOrder(*order); err != nil {
		return nil, err
	}

	invoice, err := s.createInvoice(*order)
	if err != nil {
		return nil, err
	}
	payment, err := s.recordPayment(order.ID, method, total, models.PaymentStatusApproved, reference)
	if err != nil {
		return nil, err
	}

	cart.Items = nil
	if err := s.saveCart(carts, cart); err != nil {
		return nil, err
	}

	s.logger.Info("checkout complete",
		"customer_id", customerID, "order_id", order.ID, "total", total, "method", method)

	return &CheckoutResult{Order: *order, Invoice: *invoice, Payment: *payment}, nil
}

func (s *Service) createPendingOrder(customerID int64, items []models.OrderItem, total decimal.Decimal) (*models.Order, error) {
	orders, err := storage.Load[models.Order](s.storage, storage.CollectionOrders)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		ID:         storage.NextID(orders, func(o models.Order) int64 { return o.ID }),
		Number:     generateOrderNumber(),
		CustomerID: customerID,
		Items:      items,
		Total:      total,
		Status:     models.OrderStatusPending,
		CreatedAt:  time.Now(),
	}
	orders = append(orders, order)
	if err := storage.Save(s.storage, storage.CollectionOrders, orders); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Service) updateOrder(order models.Order) error {
	orders, err := storage.Load[models.Order](s.storage, storage.CollectionOrders)
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID == order.ID {
			orders[i] = order
			return storage.Save(s.storage, storage.CollectionOrders, orders)
		}
	}
	return fmt.Errorf("order %d: %w", order.ID, ErrOrderNotFound)
}

func (s *Service) deleteOrder(orderID int64) error {
	orders, err := storage.Load[models.Order](s.storage, storage.CollectionOrders)
	if err != nil {
		return err
	}
	kept := orders[:0]
	for _, o := range orders {
		if o.ID != orderID {
			kept = append(kept, o)
		}
	}
	return storage.Save(s.storage, storage.CollectionOrders, kept)
}

func (s *Service) createInvoice(order models.Order) (*models.Invoice, error) {
	invoices, err := storage.Load[models.Invoice](s.storage, storage.CollectionInvoices)
	if err != nil {
		return nil, err
	}
	invoice := models.Invoice{
		ID:       storage.NextID(invoices, func(i models.Invoice) int64 { return i.ID }),
		OrderID:  order.ID,
		Items:    order.Items,
		Total:    order.Total,
		IssuedAt: time.Now(),
	}
	invoices = append(invoices, invoice)
	if err := storage.Save(s.storage, storage.CollectionInvoices, invoices); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (s *Service) recordPayment(orderID int64, method models.PaymentMethod, amount decimal.Decimal, status models.PaymentStatus, reference string) (*models.Payment, error) {
	payments, err := storage.Load[models.Payment](s.storage, storage.CollectionPayments)
	if err != nil {
		return nil, err
	}
	payment := models.Payment{
		ID:        storage.NextID(payments, func(p models.Payment) int64 { return p.ID }),
		OrderID:   orderID,
		Method:    method,
		Amount:    amount,
		Status:    status,
		Reference: reference,
		CreatedAt: time.Now(),
	}
	payments = append(payments, payment)
	if err := storage.Save(s.storage, storage.CollectionPayments, payments); err != nil {
		return nil, err
	}
	return &payment, nil
}
