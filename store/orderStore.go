package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Kariqs/storefront-api/models"
)

type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Create persists the order with its items. When redeemCoupon is set, the
// user's coupon with that code is deactivated in the same transaction.
func (s *OrderStore) Create(ctx context.Context, order *models.Order, redeemCoupon string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if redeemCoupon != "" {
			if err := deactivateCoupon(tx, order.UserID, redeemCoupon); err != nil {
				return err
			}
		}
		return tx.Create(order).Error
	})
	return wrap(err, "create order")
}

func (s *OrderStore) FindByReference(ctx context.Context, reference string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").Where("reference = ?", reference).First(&order).Error
	if err != nil {
		return nil, wrap(err, "find order by reference")
	}
	return &order, nil
}

func (s *OrderStore) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, wrap(err, "find order")
	}
	return &order, nil
}

func (s *OrderStore) FindByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, wrap(err, "find user orders")
}

// List returns one page of orders and the total order count.
func (s *OrderStore) List(ctx context.Context, page, limit int, sort string) ([]models.Order, int64, error) {
	if sort != "asc" {
		sort = "desc"
	}
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Preload("Items").
		Order("created_at " + sort).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, wrap(err, "list orders")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return nil, 0, wrap(err, "count orders")
	}
	return orders, count, nil
}

// Totals returns the order count and summed revenue.
func (s *OrderStore) Totals(ctx context.Context) (int64, float64, error) {
	var row struct {
		Sales   int64
		Revenue float64
	}
	err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COUNT(*) AS sales, COALESCE(SUM(total_amount), 0) AS revenue").
		Scan(&row).Error
	return row.Sales, row.Revenue, wrap(err, "order totals")
}

// DailySales aggregates orders per calendar day in [from, to).
func (s *OrderStore) DailySales(ctx context.Context, from, to time.Time) ([]models.DailySales, error) {
	rows := []models.DailySales{}
	err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') AS date, COUNT(*) AS sales, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("date").
		Order("date").
		Scan(&rows).Error
	return rows, wrap(err, "daily sales")
}
