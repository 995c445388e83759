package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Kariqs/storefront-api/controllers"
	"github.com/Kariqs/storefront-api/middlewares"
)

func OrderRoutes(api *gin.RouterGroup, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	orders := api.Group("/orders", requireAuth)
	{
		orders.GET("", middlewares.RequireAdmin(), h.GetOrders)
		orders.GET("/mine", h.GetMyOrders)
		orders.GET("/:orderId", h.GetOrderByID)
	}
}

func AnalyticsRoutes(api *gin.RouterGroup, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	api.GET("/analytics", requireAuth, middlewares.RequireAdmin(), h.GetAnalytics)
}
