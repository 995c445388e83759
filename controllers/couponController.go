package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type validateCouponBody struct {
	Code string `json:"code" binding:"required"`
}

// GetCoupon returns the user's usable coupon, or null.
func (h *Handler) GetCoupon(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	coupon, err := h.Coupons.Current(ctx.Request.Context(), user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	if coupon == nil {
		ctx.JSON(http.StatusOK, nil)
		return
	}
	ctx.JSON(http.StatusOK, coupon)
}

func (h *Handler) ValidateCoupon(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var body validateCouponBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	coupon, err := h.Coupons.Validate(ctx.Request.Context(), user, body.Code)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message":            "Coupon is valid",
		"code":               coupon.Code,
		"discountPercentage": coupon.DiscountPercentage,
	})
}
