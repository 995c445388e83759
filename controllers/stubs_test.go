package controllers_test

import (
	"context"
	"errors"

	"github.com/Kariqs/storefront-api/models"
	"github.com/Kariqs/storefront-api/services"
)

var errBoom = errors.New("database unavailable")

type stubAuth struct {
	users map[uint]*models.User
}

func (s *stubAuth) Signup(_ context.Context, data models.SignupData) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == data.Email {
			return nil, services.ErrEmailTaken
		}
	}
	u := &models.User{ID: uint(len(s.users) + 1), Name: data.Name, Email: data.Email, Role: models.RoleCustomer}
	s.users[u.ID] = u
	return u, nil
}

func (s *stubAuth) Login(_ context.Context, data models.LoginData) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == data.Email && data.Password == "secret1" {
			return u, nil
		}
	}
	return nil, services.ErrInvalidCredentials
}

func (s *stubAuth) User(_ context.Context, id uint) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, services.ErrUserNotFound
}

type stubCart struct {
	items map[uint][]models.CartItem
}

func (s *stubCart) Items(_ context.Context, user *models.User) ([]models.CartProduct, error) {
	out := []models.CartProduct{}
	for _, item := range s.items[user.ID] {
		out = append(out, models.CartProduct{Product: models.Product{ID: item.Product, Name: "Lamp"}, Quantity: item.Quantity})
	}
	return out, nil
}

func (s *stubCart) Add(_ context.Context, user *models.User, productID uint) ([]models.CartItem, error) {
	if productID == 0 {
		return nil, services.ErrInvalidProductID
	}
	if productID == 404 {
		return nil, services.ErrProductNotFound
	}
	s.items[user.ID] = services.AddItem(s.items[user.ID], productID)
	return s.items[user.ID], nil
}

func (s *stubCart) RemoveAll(_ context.Context, user *models.User, productID uint) ([]models.CartItem, error) {
	s.items[user.ID] = services.RemoveItems(s.items[user.ID], productID)
	return s.items[user.ID], nil
}

func (s *stubCart) UpdateQuantity(_ context.Context, user *models.User, productID uint, quantity int) ([]models.CartItem, error) {
	items, err := services.SetQuantity(s.items[user.ID], productID, quantity)
	if err != nil {
		return nil, err
	}
	s.items[user.ID] = items
	return items, nil
}

type stubCheckout struct{}

func (stubCheckout) CreateSession(_ context.Context, user *models.User, lines []models.LineItem, couponCode string) (*services.CheckoutResult, error) {
	if len(lines) == 0 {
		return nil, services.ErrEmptyProducts
	}
	total := services.CartTotal(lines).InexactFloat64()
	return &services.CheckoutResult{
		Session:     models.CheckoutSession{ID: "session_test", LineItems: lines, Products: lines, Total: total, UserID: user.ID},
		TotalAmount: total,
	}, nil
}

func (stubCheckout) CompleteSession(_ context.Context, user *models.User, session *models.CheckoutSession) (*models.Order, error) {
	if session == nil || session.ID == "" {
		return nil, services.ErrInvalidSession
	}
	return &models.Order{ID: 11, UserID: user.ID, Reference: session.ID, TotalAmount: session.Total}, nil
}

type stubCoupons struct {
	coupon *models.Coupon
}

func (s *stubCoupons) Current(context.Context, *models.User) (*models.Coupon, error) {
	return s.coupon, nil
}

func (s *stubCoupons) Validate(_ context.Context, _ *models.User, code string) (*models.Coupon, error) {
	if s.coupon == nil || s.coupon.Code != code {
		return nil, services.ErrCouponNotFound
	}
	return s.coupon, nil
}

type stubProducts struct {
	products []models.Product
	err      error
}

func (s *stubProducts) All(context.Context) ([]models.Product, error) { return s.products, s.err }

func (s *stubProducts) ByCategory(_ context.Context, category string) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, s.err
}

func (s *stubProducts) Recommendations(context.Context, string) ([]models.Product, error) {
	return s.products, s.err
}

func (s *stubProducts) Create(_ context.Context, input models.ProductInput) (*models.Product, error) {
	if len(input.Images) > models.MaxProductImages {
		return nil, services.ErrTooManyImages
	}
	return &models.Product{ID: 99, Name: input.Name}, nil
}

func (s *stubProducts) Update(_ context.Context, id uint, input models.ProductInput) (*models.Product, error) {
	if id != 1 {
		return nil, services.ErrProductNotFound
	}
	return &models.Product{ID: id, Name: input.Name}, nil
}

func (s *stubProducts) ToggleFeatured(_ context.Context, id uint) (*models.Product, error) {
	if id != 1 {
		return nil, services.ErrProductNotFound
	}
	return &models.Product{ID: id, IsFeatured: true}, nil
}

func (s *stubProducts) Delete(_ context.Context, id uint) error {
	if id != 1 {
		return services.ErrProductNotFound
	}
	return s.err
}

type stubFeatured struct {
	products []models.Product
}

func (s *stubFeatured) Featured(context.Context) ([]models.Product, error) {
	return s.products, nil
}

type stubOrders struct{}

func (stubOrders) List(_ context.Context, page, limit int, _ string) (*services.OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 15
	}
	return &services.OrderPage{Orders: []models.Order{{ID: 1}}, Total: 31, Page: page, Limit: limit, TotalPages: (31 + limit - 1) / limit}, nil
}

func (stubOrders) ForUser(_ context.Context, user *models.User) ([]models.Order, error) {
	return []models.Order{{ID: 1, UserID: user.ID}}, nil
}

func (stubOrders) Get(_ context.Context, user *models.User, id uint) (*models.Order, error) {
	if id != 1 {
		return nil, services.ErrOrderNotFound
	}
	return &models.Order{ID: 1, UserID: user.ID}, nil
}

type stubAnalytics struct{}

func (stubAnalytics) Summary(context.Context) (*services.AnalyticsData, error) {
	return &services.AnalyticsData{Users: 3, Products: 5, TotalSales: 2, TotalRevenue: 120}, nil
}

func (stubAnalytics) DailySales(context.Context) ([]models.DailySales, error) {
	return []models.DailySales{{Date: "2024-05-01"}, {Date: "2024-05-02", Sales: 2, Revenue: 120}}, nil
}
