package services

import (
	"context"
	"time"

	"github.com/Kariqs/storefront-api/models"
)

const salesWindowDays = 7

type AnalyticsData struct {
	Users        int64   `json:"users"`
	Products     int64   `json:"products"`
	TotalSales   int64   `json:"totalSales"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type AnalyticsService struct {
	users    UserStore
	products ProductStore
	orders   OrderStore
	now      func() time.Time
}

func NewAnalyticsService(users UserStore, products ProductStore, orders OrderStore) *AnalyticsService {
	return &AnalyticsService{users: users, products: products, orders: orders, now: time.Now}
}

func (s *AnalyticsService) Summary(ctx context.Context) (*AnalyticsData, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	sales, revenue, err := s.orders.Totals(ctx)
	if err != nil {
		return nil, err
	}
	return &AnalyticsData{Users: users, Products: products, TotalSales: sales, TotalRevenue: revenue}, nil
}

// DailySales returns one entry per day for the last week, oldest first, with
// days without orders zero-filled.
func (s *AnalyticsService) DailySales(ctx context.Context) ([]models.DailySales, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := today.AddDate(0, 0, -(salesWindowDays - 1))
	to := today.AddDate(0, 0, 1)

	rows, err := s.orders.DailySales(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]models.DailySales, len(rows))
	for _, row := range rows {
		byDate[row.Date] = row
	}

	days := make([]models.DailySales, 0, salesWindowDays)
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(time.DateOnly)
		day, ok := byDate[date]
		if !ok {
			day = models.DailySales{Date: date}
		}
		days = append(days, day)
	}
	return days, nil
}
