package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/safar/shopcli/internal/models"
	"github.com/safar/shopcli/internal/store"
)

func renderProducts(w io.Writer, views []store.ProductView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Category", "Price", "In Stock"})
	for _, v := range views {
		table.Append([]string{
			strconv.FormatInt(v.Product.ID, 10),
			v.Product.Name,
			v.Product.Category,
			v.Product.Price.StringFixed(2),
			strconv.Itoa(v.Available),
		})
	}
	table.Render()
}

func renderCart(w io.Writer, view *store.CartView) {
	if len(view.Lines) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Qty", "Unit Price", "Subtotal"})
	for _, line := range view.Lines {
		table.Append([]string{
			strconv.FormatInt(line.ProductID, 10),
			line.Name,
			strconv.Itoa(line.Quantity),
			line.UnitPrice.StringFixed(2),
			line.Subtotal.StringFixed(2),
		})
	}
	table.SetFooter([]string{"", "", "", "Total", view.Total.StringFixed(2)})
	table.Render()
}

func renderOrders(w io.Writer, orders []models.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders found.")
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Number", "Status", "Total", "Created", "Tracking"})
	for _, o := range orders {
		table.Append([]string{
			strconv.FormatInt(o.ID, 10),
			o.Number,
			string(o.Status),
			o.Total.StringFixed(2),
			o.CreatedAt.Format("2006-01-02 15:04"),
			o.TrackingNumber,
		})
	}
	table.Render()
}

func renderInvoice(w io.Writer, view *store.InvoiceView) {
	fmt.Fprintf(w, "Invoice %d for order %s (paid via %s)\n",
		view.Invoice.ID, view.Order.Number, view.Method)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Product", "Qty", "Unit Price", "Subtotal"})
	for _, item := range view.Invoice.Items {
		table.Append([]string{
			item.Name,
			strconv.Itoa(item.Quantity),
			item.UnitPrice.StringFixed(2),
			item.Subtotal.StringFixed(2),
		})
	}
	table.SetFooter([]string{"", "", "Total", view.Invoice.Total.StringFixed(2)})
	table.Render()
}

func renderReport(w io.Writer, report *store.Report) {
	fmt.Fprintf(w, "%s report: %d orders, revenue %s\n",
		report.Period, report.Orders, report.Revenue.StringFixed(2))
	if len(report.Products) == 0 {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Product ID", "Name", "Units Sold", "Revenue"})
	for _, p := range report.Products {
		table.Append([]string{
			strconv.FormatInt(p.ProductID, 10),
			p.Name,
			strconv.Itoa(p.Quantity),
			p.Revenue.StringFixed(2),
		})
	}
	table.Render()
}
