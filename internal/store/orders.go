package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/safar/shopcli/internal/models"
	"github.com/safar/shopcli/internal/storage"
)

// OrderStatusInfo is the read-side answer for order-status queries.
type OrderStatusInfo struct {
	OrderID        int64
	Number         string
	Status         models.OrderStatus
	TrackingNumber string
}

// InvoiceView bundles an invoice with the payment that settled it.
type InvoiceView struct {
	Invoice models.Invoice
	Order   models.Order
	Method  models.PaymentMethod
}

func (s *Service) GetOrder(orderID int64) (*models.Order, error) {
	orders, err := storage.Load[models.Order](s.storage, storage.CollectionOrders)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.ID == orderID {
			return &o, nil
		}
	}
	return nil, fmt.Errorf("order %d: %w", orderID, ErrOrderNotFound)
}

// OrderStatus is a pure read of an order's lifecycle state.
func (s *Service) OrderStatus(orderID int64) (*OrderStatusInfo, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	return &OrderStatusInfo{
		OrderID:        order.ID,
		Number:         order.Number,
		Status:         order.Status,
		TrackingNumber: order.TrackingNumber,
	}, nil
}

// ListOrders returns a customer's orders, newest first.
func (s *Service) ListOrders(customerID int64) ([]models.Order, error) {
	orders, err := storage.Load[models.Order](s.storage, storage.CollectionOrders)
	if err != nil {
		return nil, err
	}
	var out []models.Order
	for _, o := range orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	reverse(out)
	return out, nil
}

// ListUnshipped returns every order not yet shipped, pending ones
// included, so staff can see anything still needing attention.
func (s *Service) ListUnshipped() ([]models.Order, error) {
	orders, err := storage.Load[models.Order](s.storage, storage.CollectionOrders)
	if err != nil {
		return nil, err
	}
	var out []models.Order
	for _, o := range orders {
		if o.Status != models.OrderStatusShipped {
			out = append(out, o)
		}
	}
	return out, nil
}

// ShipOrder moves a paid order to shipped, recording the tracking
// number and a shipment row. Shipping is terminal: a second call fails
// whatever tracking number it carries.
func (s *Service) ShipOrder(orderID int64, trackingNumber string) (*models.Shipment, error) {
	if strings.TrimSpace(trackingNumber) == "" {
		return nil, ErrInvalidTrackingNumber
	}

	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(order.Status, models.OrderStatusShipped) {
		if order.Status == models.OrderStatusShipped {
			return nil, fmt.Errorf("order %d: %w", orderID, ErrAlreadyShipped)
		}
		return nil, fmt.Errorf("order %d: %w", orderID, ErrOrderNotPaid)
	}

	order.Status = models.OrderStatusShipped
	order.TrackingNumber = trackingNumber
	if err := s.updateOrder(*order); err != nil {
		return nil, err
	}

	shipments, err := storage.Load[models.Shipment](s.storage, storage.CollectionShipments)
	if err != nil {
		return nil, err
	}
	shipment := models.Shipment{
		ID:             storage.NextID(shipments, func(sh models.Shipment) int64 { return sh.ID }),
		OrderID:        orderID,
		TrackingNumber: trackingNumber,
		ShippedAt:      time.Now(),
	}
	shipments = append(shipments, shipment)
	if err := storage.Save(s.storage, storage.CollectionShipments, shipments); err != nil {
		return nil, err
	}

	s.logger.Info("order shipped", "order_id", orderID, "tracking_number", trackingNumber)
	return &shipment, nil
}

// GetInvoice returns the invoice for a paid-or-later order. An order
// that never completed payment has no invoice to show.
func (s *Service) GetInvoice(orderID int64) (*InvoiceView, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusPending {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrOrderNotPaid)
	}

	invoices, err := storage.Load[models.Invoice](s.storage, storage.CollectionInvoices)
	if err != nil {
		return nil, err
	}
	var invoice *models.Invoice
	for i := range invoices {
		if invoices[i].OrderID == orderID {
			invoice = &invoices[i]
			break
		}
	}
	if invoice == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrInvoiceNotFound)
	}

	view := &InvoiceView{Invoice: *invoice, Order: *order}
	payments, err := storage.Load[models.Payment](s.storage, storage.CollectionPayments)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if p.OrderID == orderID && p.Status == models.PaymentStatusApproved {
			view.Method = p.Method
			break
		}
	}
	return view, nil
}

func reverse(orders []models.Order) {
	for i, j := 0, len(orders)-1; i < j; i, j = i+1, j-1 {
		orders[i], orders[j] = orders[j], orders[i]
	}
}
