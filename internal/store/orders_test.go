package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safar/shopcli/internal/models"
)

func placePaidOrder(t *testing.T, s *Service) models.Order {
	t.Helper()
	milk := seedProduct(t, s, "Milk 1L", "3.50", 50)
	require.NoError(t, s.AddItem(testCustomerID, milk.ID, 2))
	result, err := s.Checkout(testCustomerID, models.PaymentMethodCard)
	require.NoError(t, err)
	return result.Order
}

func TestShipOrder(t *testing.T) {
	s := newTestService(t)
	order := placePaidOrder(t, s)

	shipment, err := s.ShipOrder(order.ID, "TRACK-123")
	require.NoError(t, err)
	assert.Equal(t, "TRACK-123", shipment.TrackingNumber)

	info, err := s.OrderStatus(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, info.Status)
	assert.Equal(t, "TRACK-123", info.TrackingNumber)
}

func TestShipOrder_FailsTwice(t *testing.T) {
	s := newTestService(t)
	order := placePaidOrder(t, s)

	_, err := s.ShipOrder(order.ID, "TRACK-123")
	require.NoError(t, err)

	// Shipping is terminal, with the same or a different tracking number.
	_, err = s.ShipOrder(order.ID, "TRACK-123")
	assert.ErrorIs(t, err, ErrAlreadyShipped)
	_, err = s.ShipOrder(order.ID, "TRACK-456")
	assert.ErrorIs(t, err, ErrAlreadyShipped)
}

func TestShipOrder_EmptyTracking(t *testing.T) {
	s := newTestService(t)
	order := placePaidOrder(t, s)

	_, err := s.ShipOrder(order.ID, "")
	assert.ErrorIs(t, err, ErrInvalidTrackingNumber)
	_, err = s.ShipOrder(order.ID, "   ")
	assert.ErrorIs(t, err, ErrInvalidTrackingNumber)
}

func TestShipOrder_UnknownOrder(t *testing.T) {
	s := newTestService(t)
	_, err := s.ShipOrder(42, "TRACK-123")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestShipOrder_PendingOrderNotPaid(t *testing.T) {
	s := newTestService(t)
	milk := seedProduct(t, s, "Milk 1L", "3.50", 50)

	// A pending order can only come from crash debris; build one
	// directly to prove shipping deterministically refuses it.
	order, err := s.createPendingOrder(testCustomerID, []models.OrderItem{
		{ProductID: milk.ID, Name: milk.Name, Quantity: 1, UnitPrice: milk.Price, Subtotal: milk.Price},
	}, milk.Price)
	require.NoError(t, err)

	_, shipErr := s.ShipOrder(order.ID, "TRACK-123")
	assert.ErrorIs(t, shipErr, ErrOrderNotPaid)
}

func TestGetInvoice(t *testing.T) {
	s := newTestService(t)
	order := placePaidOrder(t, s)

	view, err := s.GetInvoice(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, view.Invoice.OrderID)
	assert.Equal(t, models.PaymentMethodCard, view.Method)
	assert.True(t, view.Invoice.Total.Equal(order.Total))
}

func TestGetInvoice_PendingOrder(t *testing.T) {
	s := newTestService(t)
	milk := seedProduct(t, s, "Milk 1L", "3.50", 50)
	order, err := s.createPendingOrder(testCustomerID, []models.OrderItem{
		{ProductID: milk.ID, Name: milk.Name, Quantity: 1, UnitPrice: milk.Price, Subtotal: milk.Price},
	}, milk.Price)
	require.NoError(t, err)

	_, invErr := s.GetInvoice(order.ID)
	assert.ErrorIs(t, invErr, ErrOrderNotPaid)
}

func TestListOrders_NewestFirst(t *testing.T) {
	s := newTestService(t)
	milk := seedProduct(t, s, "Milk 1L", "3.50", 50)

	require.NoError(t, s.AddItem(testCustomerID, milk.ID, 1))
	first, err := s.Checkout(testCustomerID, models.PaymentMethodCard)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(testCustomerID, milk.ID, 1))
	second, err := s.Checkout(testCustomerID, models.PaymentMethodCard)
	require.NoError(t, err)

	orders, err := s.ListOrders(testCustomerID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.Order.ID, orders[0].ID)
	assert.Equal(t, first.Order.ID, orders[1].ID)
}

func TestListUnshipped(t *testing.T) {
	s := newTestService(t)
	milk := seedProduct(t, s, "Milk 1L", "3.50", 50)

	require.NoError(t, s.AddItem(testCustomerID, milk.ID, 1))
	shipped, err := s.Checkout(testCustomerID, models.PaymentMethodCard)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(testCustomerID, milk.ID, 1))
	waiting, err := s.Checkout(testCustomerID, models.PaymentMethodCard)
	require.NoError(t, err)

	_, err = s.ShipOrder(shipped.Order.ID, "TRACK-1")
	require.NoError(t, err)

	unshipped, err := s.ListUnshipped()
	require.NoError(t, err)
	require.Len(t, unshipped, 1)
	assert.Equal(t, waiting.Order.ID, unshipped[0].ID)
}

func TestListUnshipped_IncludesPendingOrders(t *testing.T) {
	s := newTestService(t)
	milk := seedProduct(t, s, "Milk 1L", "3.50", 50)

	pending, err := s.createPendingOrder(testCustomerID, []models.OrderItem{
		{ProductID: milk.ID, Name: milk.Name, Quantity: 1, UnitPrice: milk.Price, Subtotal: milk.Price},
	}, milk.Price)
	require.NoError(t, err)

	unshipped, err := s.ListUnshipped()
	require.NoError(t, err)
	require.Len(t, unshipped, 1)
	assert.Equal(t, pending.ID, unshipped[0].ID)
}
