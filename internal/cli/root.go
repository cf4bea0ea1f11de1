package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/safar/shopcli/internal/auth"
	"github.com/safar/shopcli/internal/config"
	"github.com/safar/shopcli/internal/models"
	"github.com/safar/shopcli/internal/store"
)

func (a *App) Root() *cobra.Command {
	root := &cobra.Command{
		Use:           "shopcli",
		Short:         "Single-user store management tool",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		a.newInitCmd(),
		a.newLoginCmd(),
		a.newLogoutCmd(),
		a.newWhoamiCmd(),
		a.newBrowseCmd(),
		a.newAddToCartCmd(),
		a.newViewCartCmd(),
		a.newRemoveFromCartCmd(),
		a.newCheckoutCmd(),
		a.newViewInvoiceCmd(),
		a.newViewOrdersCmd(),
		a.newOrderStatusCmd(),
		a.newShipOrderCmd(),
		a.newUpdateStockCmd(),
		a.newLowStockCmd(),
		a.newGenerateReportCmd(),
		a.newAddProductCmd(),
	)
	return root
}

func (a *App) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Seed the catalog and sample accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := config.LoadSeed(a.cfg.SeedFile)
			if err != nil {
				return err
			}
			if err := a.storage.ClearSession(); err != nil {
				return err
			}
			if err := a.store.ImportProducts(seed.Products); err != nil {
				return err
			}
			if err := a.auth.ImportAccounts(seed.Accounts); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Store initialized.")
			return nil
		},
	}
}

func (a *App) newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Log in as a customer or staff member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.auth.Login(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Username, user.Role)
			return nil
		},
	}
}

func (a *App) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.auth.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func (a *App) newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.auth.CurrentUser()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", user.Username, user.Role)
			return nil
		},
	}
}

func (a *App) newBrowseCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "List products with stock levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := a.store.BrowseProducts(category)
			if err != nil {
				return err
			}
			renderProducts(cmd.OutOrStdout(), views)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	return cmd
}

func (a *App) newAddToCartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-to-cart <product-id> <quantity>",
		Short: "Add a product to your cart",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.auth.RequireRole(models.RoleCustomer)
			if err != nil {
				return err
			}
			productID, err := parseID(args[0], "product id")
			if err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			if err := a.store.AddItem(user.CustomerID, productID, qty); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d x product %d to cart\n", qty, productID)
			return nil
		},
	}
}

func (a *App) newViewCartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view-cart",
		Short: "Show your cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.auth.RequireRole(models.RoleCustomer)
			if err != nil {
				return err
			}
			view, err := a.store.ViewCart(user.CustomerID)
			if err != nil {
				return err
			}
			renderCart(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

func (a *App) newRemoveFromCartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-from-cart <product-id>",
		Short: "Remove a product from your cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.auth.RequireRole(models.RoleCustomer)
			if err != nil {
				return err
			}
			productID, err := parseID(args[0], "product id")
			if err != nil {
				return err
			}
			if err := a.store.RemoveItem(user.CustomerID, productID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed product %d from cart\n", productID)
			return nil
		},
	}
}

func (a *App) newCheckoutCmd() *cobra.Command {
	var method string
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Pay for the items in your cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.auth.RequireRole(models.RoleCustomer)
			if err != nil {
				return err
			}
			result, err := a.store.Checkout(user.CustomerID, models.PaymentMethod(method))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s paid: %s (invoice %d)\n",
				result.Order.Number, result.Order.Total, result.Invoice.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&method, "method", string(models.PaymentMethodCard), "payment method (card or wallet)")
	return cmd
}

func (a *App) newViewInvoiceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view-invoice <order-id>",
		Short: "Show the invoice for a paid order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.auth.CurrentUser()
			if err != nil {
				return err
			}
			orderID, err := parseID(args[0], "order id")
			if err != nil {
				return err
			}
			view, err := a.store.GetInvoice(orderID)
			if err != nil {
				return err
			}
			if user.Role == models.RoleCustomer && view.Order.CustomerID != user.CustomerID {
				return fmt.Errorf("order %d: %w", orderID, auth.ErrNotAuthorized)
			}
			renderInvoice(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

func (a *App) newViewOrdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view-orders",
		Short: "List your orders (staff: orders awaiting shipment)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.auth.CurrentUser()
			if err != nil {
				return err
			}
			var orders []models.Order
			if user.Role == models.RoleStaff {
				orders, err = a.store.ListUnshipped()
			} else {
				orders, err = a.store.ListOrders(user.CustomerID)
			}
			if err != nil {
				return err
			}
			renderOrders(cmd.OutOrStdout(), orders)
			return nil
		},
	}
}

func (a *App) newOrderStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order-status <order-id>",
		Short: "Show an order's lifecycle state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.auth.CurrentUser(); err != nil {
				return err
			}
			orderID, err := parseID(args[0], "order id")
			if err != nil {
				return err
			}
			info, err := a.store.OrderStatus(orderID)
			if err != nil {
				return err
			}
			if info.TrackingNumber != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Order %s: %s (tracking %s)\n",
					info.Number, info.Status, info.TrackingNumber)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Order %s: %s\n", info.Number, info.Status)
			}
			return nil
		},
	}
}

func (a *App) newShipOrderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ship-order <order-id> <tracking-number>",
		Short: "Mark a paid order as shipped",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.auth.RequireRole(models.RoleStaff); err != nil {
				return err
			}
			orderID, err := parseID(args[0], "order id")
			if err != nil {
				return err
			}
			shipment, err := a.store.ShipOrder(orderID, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %d shipped with tracking %s\n",
				orderID, shipment.TrackingNumber)
			return nil
		},
	}
}

func (a *App) newUpdateStockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update-stock <product-id> <quantity>",
		Short: "Set a product's available stock",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.auth.RequireRole(models.RoleStaff); err != nil {
				return err
			}
			productID, err := parseID(args[0], "product id")
			if err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			if err := a.store.UpdateStock(productID, qty); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stock for product %d set to %d\n", productID, qty)
			return nil
		},
	}
}

func (a *App) newLowStockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "low-stock",
		Short: "List products at or below the restock threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.auth.RequireRole(models.RoleStaff); err != nil {
				return err
			}
			views, err := a.store.LowStock(a.cfg.LowStockThreshold)
			if err != nil {
				return err
			}
			renderProducts(cmd.OutOrStdout(), views)
			return nil
		},
	}
}

func (a *App) newGenerateReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-report [daily|monthly|all-time]",
		Short: "Summarize sales for a period",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.auth.RequireRole(models.RoleStaff); err != nil {
				return err
			}
			raw := ""
			if len(args) == 1 {
				raw = args[0]
			}
			period, err := store.ParsePeriod(raw)
			if err != nil {
				return err
			}
			report, err := a.store.GenerateReport(period, time.Now())
			if err != nil {
				return err
			}
			renderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func (a *App) newAddProductCmd() *cobra.Command {
	var (
		description string
		category    string
		stock       int
	)
	cmd := &cobra.Command{
		Use:   "add-product <name> <price>",
		Short: "Add a product to the catalog",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.auth.RequireRole(models.RoleStaff); err != nil {
				return err
			}
			price, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid price %q", args[1])
			}
			product, err := a.store.AddProduct(args[0], description, category, price, stock)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Product %d (%s) added\n", product.ID, product.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "product description")
	cmd.Flags().StringVar(&category, "category", "Uncategorized", "product category")
	cmd.Flags().IntVar(&stock, "stock", 0, "initial stock level")
	return cmd
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return id, nil
}
