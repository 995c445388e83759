package models

import "time"

type Coupon struct {
	ID                 uint      `json:"_id" gorm:"primaryKey"`
	Code               string    `json:"code" gorm:"size:32;uniqueIndex;not null"`
	DiscountPercentage float64   `json:"discountPercentage" gorm:"not null"`
	ExpirationDate     time.Time `json:"expirationDate" gorm:"not null"`
	IsActive           bool      `json:"isActive"`
	UserID             uint      `json:"userId" gorm:"uniqueIndex;not null"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Redeemable reports whether the coupon can still be applied at now.
func (c *Coupon) Redeemable(now time.Time) bool {
	return c.IsActive && now.Before(c.ExpirationDate)
}
