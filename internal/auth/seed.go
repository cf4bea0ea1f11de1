package auth

import (
	"fmt"

	"github.com/safar/shopcli/internal/config"
	"github.com/safar/shopcli/internal/models"
	"github.com/safar/shopcli/internal/storage"
)

// ImportAccounts creates the seed accounts with their customer or
// staff records. Existing usernames are left alone so re-running init
// is harmless.
func (s *Service) ImportAccounts(seed []config.SeedAccount) error {
	accounts, err := storage.Load[models.Account](s.storage, storage.CollectionAccounts)
	if err != nil {
		return err
	}
	customers, err := storage.Load[models.Customer](s.storage, storage.CollectionCustomers)
	if err != nil {
		return err
	}
	staff, err := storage.Load[models.Staff](s.storage, storage.CollectionStaff)
	if err != nil {
		return err
	}

	existing := make(map[string]bool, len(accounts))
	for _, acc := range accounts {
		existing[acc.Username] = true
	}

	for _, sa := range seed {
		if existing[sa.Username] {
			continue
		}

		account := models.Account{
			ID:             storage.NextID(accounts, func(a models.Account) int64 { return a.ID }),
			Username:       sa.Username,
			PasswordDigest: Digest(sa.Password),
			Role:           models.Role(sa.Role),
		}

		switch account.Role {
		case models.RoleCustomer:
			customer := models.Customer{
				ID:      storage.NextID(customers, func(c models.Customer) int64 { return c.ID }),
				Name:    sa.Name,
				Email:   sa.Email,
				Address: sa.Address,
			}
			customers = append(customers, customer)
			account.CustomerID = customer.ID
		case models.RoleStaff:
			member := models.Staff{
				ID:          storage.NextID(staff, func(m models.Staff) int64 { return m.ID }),
				DisplayName: sa.Name,
			}
			staff = append(staff, member)
			account.StaffID = member.ID
		default:
			return fmt.Errorf("seed account %q: unknown role %q", sa.Username, sa.Role)
		}

		accounts = append(accounts, account)
		existing[account.Username] = true
		s.logger.Info("account seeded", "username", account.Username, "role", account.Role)
	}

	if err := storage.Save(s.storage, storage.CollectionCustomers, customers); err != nil {
		return err
	}
	if err := storage.Save(s.storage, storage.CollectionStaff, staff); err != nil {
		return err
	}
	return storage.Save(s.storage, storage.CollectionAccounts, accounts)
}
