package store

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/safar/shopcli/internal/inventory"
	"github.com/safar/shopcli/internal/models"
	"github.com/safar/shopcli/internal/storage"
)

// CartLine is one cart entry priced for display.
type CartLine struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

type CartView struct {
	Lines []CartLine
	Total decimal.Decimal
}

// AddItem puts qty units of a product in the customer's cart, merging
// with an existing line for the same product. Stock is not touched;
// availability is checked at checkout.
func (s *Service) AddItem(customerID, productID int64, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("product %d: %w", productID, inventory.ErrInvalidQuantity)
	}
	product, err := s.FindProduct(productID)
	if err != nil {
		return err
	}

	carts, cart, err := s.loadCart(customerID)
	if err != nil {
		return err
	}

	if cart.TotalQuantity()+qty > s.maxCartItems {
		return fmt.Errorf("cart may hold at most %d items: %w", s.maxCartItems, ErrCartLimitExceeded)
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: qty})
	}

	if err := s.saveCart(carts, cart); err != nil {
		return err
	}
	s.logger.Debug("cart item added",
		"customer_id", customerID, "product_id", productID, "name", product.Name, "quantity", qty)
	return nil
}

// UpdateQuantity sets a line's quantity outright; zero removes the
// line.
func (s *Service) UpdateQuantity(customerID, productID int64, qty int) error {
	if qty < 0 {
		return fmt.Errorf("product %d: %w", productID, inventory.ErrInvalidQuantity)
	}

	carts, cart, err := s.loadCart(customerID)
	if err != nil {
		return err
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID != productID {
			continue
		}
		if qty == 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		} else {
			delta := qty - cart.Items[i].Quantity
			if cart.TotalQuantity()+delta > s.maxCartItems {
				return fmt.Errorf("cart may hold at most %d items: %w", s.maxCartItems, ErrCartLimitExceeded)
			}
			cart.Items[i].Quantity = qty
		}
		return s.saveCart(carts, cart)
	}
	return fmt.Errorf("product %d: %w", productID, ErrItemNotInCart)
}

func (s *Service) RemoveItem(customerID, productID int64) error {
	return s.UpdateQuantity(customerID, productID, 0)
}

func (s *Service) ClearCart(customerID int64) error {
	carts, cart, err := s.loadCart(customerID)
	if err != nil {
		return err
	}
	cart.Items = nil
	return s.saveCart(carts, cart)
}

// ViewCart prices the cart against the current catalog. Read-only.
func (s *Service) ViewCart(customerID int64) (*CartView, error) {
	_, cart, err := s.loadCart(customerID)
	if err != nil {
		return nil, err
	}
	products, err := s.productMap()
	if err != nil {
		return nil, err
	}

	view := &CartView{Total: decimal.Zero}
	for _, item := range cart.Items {
		product, ok := products[item.ProductID]
		if !ok {
			// Product removed from the catalog since it was added.
			continue
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Lines = append(view.Lines, CartLine{
			ProductID: item.ProductID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			Subtotal:  subtotal,
		})
		view.Total = view.Total.Add(subtotal)
	}
	return view, nil
}

// loadCart returns the full carts collection plus this customer's
// cart, creating an empty one on first use.
func (s *Service) loadCart(customerID int64) ([]models.Cart, *models.Cart, error) {
	carts, err := storage.Load[models.Cart](s.storage, storage.CollectionCarts)
	if err != nil {
		return nil, nil, err
	}
	for i := range carts {
		if carts[i].CustomerID == customerID {
			cart := carts[i]
			return carts, &cart, nil
		}
	}

	cart := models.Cart{
		ID:         storage.NextID(carts, func(c models.Cart) int64 { return c.ID }),
		CustomerID: customerID,
	}
	return carts, &cart, nil
}

func (s *Service) saveCart(carts []models.Cart, cart *models.Cart) error {
	found := false
	for i := range carts {
		if carts[i].ID == cart.ID {
			carts[i] = *cart
			found = true
			break
		}
	}
	if !found {
		carts = append(carts, *cart)
	}
	return storage.Save(s.storage, storage.CollectionCarts, carts)
}
