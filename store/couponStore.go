package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Kariqs/storefront-api/models"
)

type CouponStore struct {
	db *gorm.DB
}

func NewCouponStore(db *gorm.DB) *CouponStore {
	return &CouponStore{db: db}
}

// FindActive returns the user's active coupon with the given code.
func (s *CouponStore) FindActive(ctx context.Context, userID uint, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := s.db.WithContext(ctx).
		Where("code = ? AND user_id = ? AND is_active = ?", code, userID, true).
		First(&coupon).Error
	if err != nil {
		return nil, wrap(err, "find coupon")
	}
	return &coupon, nil
}

// FindCurrent returns the user's active, unexpired coupon.
func (s *CouponStore) FindCurrent(ctx context.Context, userID uint, now time.Time) (*models.Coupon, error) {
	var coupon models.Coupon
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND expiration_date > ?", userID, true, now).
		First(&coupon).Error
	if err != nil {
		return nil, wrap(err, "find current coupon")
	}
	return &coupon, nil
}

// Replace deletes any coupon the user holds and stores the new one.
func (s *CouponStore) Replace(ctx context.Context, coupon *models.Coupon) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", coupon.UserID).Delete(&models.Coupon{}).Error; err != nil {
			return err
		}
		return tx.Create(coupon).Error
	})
	return wrap(err, "replace coupon")
}

func (s *CouponStore) Deactivate(ctx context.Context, userID uint, code string) error {
	err := deactivateCoupon(s.db.WithContext(ctx), userID, code)
	return wrap(err, "deactivate coupon")
}

func deactivateCoupon(db *gorm.DB, userID uint, code string) error {
	return db.Model(&models.Coupon{}).
		Where("code = ? AND user_id = ?", code, userID).
		Update("is_active", false).Error
}
