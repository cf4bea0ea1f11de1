package models

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusPaid    OrderStatus = "PAID"
	OrderStatusShipped OrderStatus = "SHIPPED"
)

var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending: {OrderStatusPaid: true},
	OrderStatusPaid:    {OrderStatusShipped: true},
	OrderStatusShipped: {},
}

// CanTransition reports whether an order may move from one status to
// another. SHIPPED is terminal.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// CountsTowardSales reports whether orders in this status contribute to
// revenue reports. Unpaid orders never count.
func (s OrderStatus) CountsTowardSales() bool {
	return s == OrderStatusPaid || s == OrderStatusShipped
}
