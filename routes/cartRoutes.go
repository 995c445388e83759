package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Kariqs/storefront-api/controllers"
)

func CartRoutes(api *gin.RouterGroup, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	cart := api.Group("/cart", requireAuth)
	{
		cart.GET("", h.GetCart)
		cart.POST("", h.AddToCart)
		cart.DELETE("", h.RemoveAllFromCart)
		cart.PUT("/:id", h.UpdateQuantity)
	}
}

func PaymentRoutes(api *gin.RouterGroup, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	payments := api.Group("/payments", requireAuth)
	{
		payments.POST("/create-checkout-session", h.CreateCheckoutSession)
		payments.POST("/checkout-success", h.CheckoutSuccess)
	}
}

func CouponRoutes(api *gin.RouterGroup, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	coupons := api.Group("/coupons", requireAuth)
	{
		coupons.GET("", h.GetCoupon)
		coupons.POST("/validate", h.ValidateCoupon)
	}
}
