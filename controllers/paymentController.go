package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Kariqs/storefront-api/models"
	"github.com/Kariqs/storefront-api/services"
)

const msgCheckoutSuccess = "Payment successful, order created, and coupon deactivated if used."

type checkoutSessionBody struct {
	Products   []models.LineItem `json:"products"`
	CouponCode string            `json:"couponCode"`
}

type checkoutSuccessBody struct {
	Session *models.CheckoutSession `json:"session"`
}

func (h *Handler) CreateCheckoutSession(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var body checkoutSessionBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, services.ErrEmptyProducts.Error(), err)
		return
	}

	result, err := h.Checkout.CreateSession(ctx.Request.Context(), user, body.Products, body.CouponCode)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	if result.IssuedCoupon != nil {
		log.Ctx(ctx.Request.Context()).Info().Str("coupon", result.IssuedCoupon.Code).Msg("gift coupon issued")
	}

	ctx.JSON(http.StatusOK, gin.H{
		"session":     result.Session,
		"totalAmount": result.TotalAmount,
	})
}

func (h *Handler) CheckoutSuccess(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var body checkoutSuccessBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, services.ErrInvalidSession.Error(), err)
		return
	}

	order, err := h.Checkout.CompleteSession(ctx.Request.Context(), user, body.Session)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": msgCheckoutSuccess,
		"orderId": order.ID,
	})
}
