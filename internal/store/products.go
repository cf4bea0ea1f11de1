package store

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/safar/shopcli/internal/models"
	"github.com/safar/shopcli/internal/storage"
)

// ProductView pairs a catalog entry with its current available stock
// for display.
type ProductView struct {
	Product   models.Product
	Available int
}

func (s *Service) AddProduct(name, description, category string, price decimal.Decimal, initialStock int) (*models.Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("product price cannot be negative")
	}

	products, err := storage.Load[models.Product](s.storage, storage.CollectionProducts)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		ID:          storage.NextID(products, func(p models.Product) int64 { return p.ID }),
		Name:        name,
		Description: description,
		Category:    category,
		Price:       price,
		Active:      true,
	}
	products = append(products, product)

	if err := storage.Save(s.storage, storage.CollectionProducts, products); err != nil {
		return nil, err
	}
	if initialStock > 0 {
		if err := s.ledger.SetStock(product.ID, initialStock); err != nil {
			return nil, err
		}
	}

	s.logger.Info("product added", "product_id", product.ID, "name", product.Name)
	return &product, nil
}

// BrowseProducts lists active products, optionally filtered by
// category, with their available stock.
func (s *Service) BrowseProducts(category string) ([]ProductView, error) {
	products, err := storage.Load[models.Product](s.storage, storage.CollectionProducts)
	if err != nil {
		return nil, err
	}

	var views []ProductView
	for _, p := range products {
		if !p.Active {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		views = append(views, ProductView{
			Product:   p,
			Available: s.ledger.Stock(p.ID).Available,
		})
	}
	return views, nil
}

func (s *Service) FindProduct(productID int64) (*models.Product, error) {
	products, err := storage.Load[models.Product](s.storage, storage.CollectionProducts)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == productID {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("product %d: %w", productID, ErrProductNotFound)
}

// UpdateStock is the staff-facing absolute set of available stock.
func (s *Service) UpdateStock(productID int64, qty int) error {
	if _, err := s.FindProduct(productID); err != nil {
		return err
	}
	if err := s.ledger.SetStock(productID, qty); err != nil {
		return err
	}
	s.logger.Info("stock updated", "product_id", productID, "available", qty)
	return nil
}

// LowStock lists catalog entries at or below the threshold.
func (s *Service) LowStock(threshold int) ([]ProductView, error) {
	var views []ProductView
	for _, rec := range s.ledger.LowStock(threshold) {
		product, err := s.FindProduct(rec.ProductID)
		if err != nil {
			continue
		}
		views = append(views, ProductView{Product: *product, Available: rec.Available})
	}
	return views, nil
}

func (s *Service) productMap() (map[int64]models.Product, error) {
	products, err := storage.Load[models.Product](s.storage, storage.CollectionProducts)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}
