package services

import (
	"context"
	"errors"
	"time"

	"github.com/Kariqs/storefront-api/models"
	"github.com/Kariqs/storefront-api/store"
)

type CouponService struct {
	coupons CouponStore
	now     func() time.Time
}

func NewCouponService(coupons CouponStore) *CouponService {
	return &CouponService{coupons: coupons, now: time.Now}
}

// Current returns the user's usable coupon, or nil when there is none.
func (s *CouponService) Current(ctx context.Context, user *models.User) (*models.Coupon, error) {
	coupon, err := s.coupons.FindCurrent(ctx, user.ID, s.now())
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return coupon, err
}

// Validate checks that code is an active coupon of the user. An expired
// coupon is deactivated on the way out.
func (s *CouponService) Validate(ctx context.Context, user *models.User, code string) (*models.Coupon, error) {
	coupon, err := s.coupons.FindActive(ctx, user.ID, code)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}

	if !coupon.Redeemable(s.now()) {
		if err := s.coupons.Deactivate(ctx, user.ID, code); err != nil {
			return nil, err
		}
		return nil, ErrCouponExpired
	}
	return coupon, nil
}
