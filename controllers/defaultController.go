package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the storefront API.

AUTH
- POST "/api/auth/signup" - Create user account
- POST "/api/auth/login" - Access user account
- POST "/api/auth/logout" - Clear session
- GET "/api/auth/profile" - Current user

PRODUCTS
- GET "/api/products" - All products (admin)
- POST "/api/products" - Create product (admin)
- PUT "/api/products/:id" - Update product (admin)
- PATCH "/api/products/:id" - Toggle featured (admin)
- DELETE "/api/products/:id" - Delete product (admin)
- GET "/api/products/featured" - Featured products
- GET "/api/products/category/:category" - Products in a category
- GET "/api/products/recommendations" - Random picks

CART
- GET "/api/cart" - Cart contents
- POST "/api/cart" - Add a product
- DELETE "/api/cart" - Remove a product or clear the cart
- PUT "/api/cart/:id" - Set quantity

CHECKOUT
- POST "/api/payments/create-checkout-session" - Price a checkout
- POST "/api/payments/checkout-success" - Confirm a checkout

COUPONS
- GET "/api/coupons" - Current coupon
- POST "/api/coupons/validate" - Validate a coupon code

ORDERS
- GET "/api/orders" - All orders (admin)
- GET "/api/orders/mine" - Own orders
- GET "/api/orders/:orderId" - Order by ID

ANALYTICS
- GET "/api/analytics" - Sales summary (admin)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

func GetHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
