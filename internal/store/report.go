package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/safar/shopcli/internal/models"
	"github.com/safar/shopcli/internal/storage"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodMonthly Period = "monthly"
	PeriodAllTime Period = "all-time"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDaily, PeriodMonthly, PeriodAllTime:
		return Period(s), nil
	case "":
		return PeriodAllTime, nil
	}
	return "", fmt.Errorf("unknown report period %q", s)
}

type ProductSales struct {
	ProductID int64
	Name      string
	Quantity  int
	Revenue   decimal.Decimal
}

type Report struct {
	Period   Period
	Orders   int
	Revenue  decimal.Decimal
	Products []ProductSales
}

// GenerateReport aggregates paid and shipped orders inside the period
// ending at now. Pending orders contribute nothing. Read-only.
func (s *Service) GenerateReport(period Period, now time.Time) (*Report, error) {
	orders, err := storage.Load[models.Order](s.storage, storage.CollectionOrders)
	if err != nil {
		return nil, err
	}

	report := &Report{Period: period, Revenue: decimal.Zero}
	byProduct := make(map[int64]*ProductSales)

	for _, order := range orders {
		if !order.Status.CountsTowardSales() {
			continue
		}
		if !inWindow(period, order.CreatedAt, now) {
			continue
		}
		report.Orders++
		report.Revenue = report.Revenue.Add(order.Total)
		for _, item := range order.Items {
			sales, ok := byProduct[item.ProductID]
			if !ok {
				sales = &ProductSales{
					ProductID: item.ProductID,
					Name:      item.Name,
					Revenue:   decimal.Zero,
				}
				byProduct[item.ProductID] = sales
			}
			sales.Quantity += item.Quantity
			sales.Revenue = sales.Revenue.Add(item.Subtotal)
		}
	}

	for _, sales := range byProduct {
		report.Products = append(report.Products, *sales)
	}
	sort.Slice(report.Products, func(i, j int) bool {
		return report.Products[i].ProductID < report.Products[j].ProductID
	})
	return report, nil
}

func inWindow(period Period, createdAt, now time.Time) bool {
	switch period {
	case PeriodDaily:
		y1, m1, d1 := createdAt.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case PeriodMonthly:
		y1, m1, _ := createdAt.Date()
		y2, m2, _ := now.Date()
		return y1 == y2 && m1 == m2
	default:
		return true
	}
}
