package services

import (
	"context"
	"errors"

	"github.com/Kariqs/storefront-api/models"
	"github.com/Kariqs/storefront-api/store"
)

type OrderPage struct {
	Orders     []models.Order
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

type OrderService struct {
	orders OrderStore
}

func NewOrderService(orders OrderStore) *OrderService {
	return &OrderService{orders: orders}
}

func (s *OrderService) List(ctx context.Context, page, limit int, sort string) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 15
	}
	orders, total, err := s.orders.List(ctx, page, limit, sort)
	if err != nil {
		return nil, err
	}
	return &OrderPage{
		Orders:     orders,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

func (s *OrderService) ForUser(ctx context.Context, user *models.User) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, user.ID)
}

// Get returns an order visible to user: their own, or any order for admins.
func (s *OrderService) Get(ctx context.Context, user *models.User, id uint) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != user.ID && !user.IsAdmin() {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
