package services

import (
	"context"
	"time"

	"github.com/Kariqs/storefront-api/models"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	EmailExists(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	SaveCart(ctx context.Context, userID uint, items []models.CartItem) error
	Count(ctx context.Context) (int64, error)
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	Save(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	FindFeatured(ctx context.Context) ([]models.Product, error)
	FindByCategory(ctx context.Context, category string) ([]models.Product, error)
	Sample(ctx context.Context, category string, n int) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
}

type CouponStore interface {
	FindActive(ctx context.Context, userID uint, code string) (*models.Coupon, error)
	FindCurrent(ctx context.Context, userID uint, now time.Time) (*models.Coupon, error)
	Replace(ctx context.Context, coupon *models.Coupon) error
	Deactivate(ctx context.Context, userID uint, code string) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order, redeemCoupon string) error
	FindByReference(ctx context.Context, reference string) (*models.Order, error)
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Order, error)
	List(ctx context.Context, page, limit int, sort string) ([]models.Order, int64, error)
	Totals(ctx context.Context) (int64, float64, error)
	DailySales(ctx context.Context, from, to time.Time) ([]models.DailySales, error)
}

// FeaturedCache is the key-value mirror of the featured product set.
type FeaturedCache interface {
	Get(ctx context.Context) ([]models.Product, bool, error)
	Set(ctx context.Context, products []models.Product) error
	Clear(ctx context.Context) error
	// Version and Fill let a read-path repopulation skip its write when a
	// Set or Clear happened after the version was read.
	Version(ctx context.Context) (int64, error)
	Fill(ctx context.Context, version int64, products []models.Product) (bool, error)
}

// ImageStore is the image CDN.
type ImageStore interface {
	Store(ctx context.Context, source string) (string, error)
	Remove(ctx context.Context, imageURL string) error
	Hosts(imageURL string) bool
}

type OrderPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
}

type CouponNotifier interface {
	CouponIssued(ctx context.Context, user *models.User, coupon *models.Coupon) error
}
