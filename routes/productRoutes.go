package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Kariqs/storefront-api/controllers"
	"github.com/Kariqs/storefront-api/middlewares"
)

func ProductRoutes(api *gin.RouterGroup, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	products := api.Group("/products")
	{
		products.GET("/featured", h.GetFeaturedProducts)
		products.GET("/category/:category", h.GetProductsByCategory)
		products.GET("/recommendations", h.GetRecommendedProducts)
	}

	admin := products.Group("", requireAuth, middlewares.RequireAdmin())
	{
		admin.GET("", h.GetAllProducts)
		admin.POST("", h.CreateProduct)
		admin.PUT("/:id", h.UpdateProduct)
		admin.PATCH("/:id", h.ToggleFeaturedProduct)
		admin.DELETE("/:id", h.DeleteProduct)
	}
}
