package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Kariqs/storefront-api/controllers"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
	server.GET("/healthz", controllers.GetHealth)
	server.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// APIRoutes mounts every /api route. requireAuth guards the routes that need
// a signed-in user.
func APIRoutes(server *gin.Engine, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	api := server.Group("/api")
	AuthRoutes(api, h, requireAuth)
	ProductRoutes(api, h, requireAuth)
	CartRoutes(api, h, requireAuth)
	PaymentRoutes(api, h, requireAuth)
	CouponRoutes(api, h, requireAuth)
	OrderRoutes(api, h, requireAuth)
	AnalyticsRoutes(api, h, requireAuth)
}
