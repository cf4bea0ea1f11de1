package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
)

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
}

// StockRecord tracks the two counters the ledger moves units between.
// A unit is either available or reserved, never both.
type StockRecord struct {
	ProductID int64 `json:"product_id"`
	Available int   `json:"available"`
	Reserved  int   `json:"reserved"`
}

type CartItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type Cart struct {
	ID         int64      `json:"id"`
	CustomerID int64      `json:"customer_id"`
	Items      []CartItem `json:"items"`
}

// TotalQuantity is the summed quantity across every line, checked
// against the per-cart ceiling.
func (c Cart) TotalQuantity() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// OrderItem snapshots the unit price at order time so later catalog
// changes never affect an existing order.
type OrderItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type Order struct {
	ID             int64           `json:"id"`
	Number         string          `json:"number"`
	CustomerID     int64           `json:"customer_id"`
	Items          []OrderItem     `json:"items"`
	Total          decimal.Decimal `json:"total"`
	Status         OrderStatus     `json:"status"`
	TrackingNumber string          `json:"tracking_number,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Invoice is an immutable snapshot of a paid order. One exists only
// once payment has succeeded.
type Invoice struct {
	ID       int64           `json:"id"`
	OrderID  int64           `json:"order_id"`
	Items    []OrderItem     `json:"items"`
	Total    decimal.Decimal `json:"total"`
	IssuedAt time.Time       `json:"issued_at"`
}

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodWallet PaymentMethod = "wallet"
)

type PaymentStatus string

const (
	PaymentStatusApproved PaymentStatus = "APPROVED"
	PaymentStatusDeclined PaymentStatus = "DECLINED"
)

type Payment struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	Method    PaymentMethod   `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Status    PaymentStatus   `json:"status"`
	Reference string          `json:"reference,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type Shipment struct {
	ID             int64     `json:"id"`
	OrderID        int64     `json:"order_id"`
	TrackingNumber string    `json:"tracking_number"`
	ShippedAt      time.Time `json:"shipped_at"`
}

// Account links credentials to a Customer or Staff record by id; the
// linked side never points back.
type Account struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	PasswordDigest string `json:"password_digest"`
	Role           Role   `json:"role"`
	CustomerID     int64  `json:"customer_id,omitempty"`
	StaffID        int64  `json:"staff_id,omitempty"`
}

type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
}

type Staff struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}
