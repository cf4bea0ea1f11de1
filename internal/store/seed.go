package store

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/safar/shopcli/internal/config"
	"github.com/safar/shopcli/internal/models"
	"github.com/safar/shopcli/internal/storage"
)

// ImportProducts seeds the catalog and initial stock levels. It only
// runs against an empty catalog; re-running init never duplicates or
// resets a live store.
func (s *Service) ImportProducts(seed []config.SeedProduct) error {
	products, err := storage.Load[models.Product](s.storage, storage.CollectionProducts)
	if err != nil {
		return err
	}
	if len(products) > 0 {
		s.logger.Debug("catalog already seeded", "products", len(products))
		return nil
	}

	for _, sp := range seed {
		price, err := decimal.NewFromString(sp.Price)
		if err != nil {
			return fmt.Errorf("seed product %q: invalid price %q: %w", sp.Name, sp.Price, err)
		}
		if _, err := s.AddProduct(sp.Name, sp.Description, sp.Category, price, sp.Stock); err != nil {
			return fmt.Errorf("seed product %q: %w", sp.Name, err)
		}
	}
	return nil
}
