package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Kariqs/storefront-api/middlewares"
	"github.com/Kariqs/storefront-api/models"
	"github.com/Kariqs/storefront-api/services"
)

const msgServerError = "Server error"

type AuthService interface {
	Signup(ctx context.Context, data models.SignupData) (*models.User, error)
	Login(ctx context.Context, data models.LoginData) (*models.User, error)
}

type CartService interface {
	Items(ctx context.Context, user *models.User) ([]models.CartProduct, error)
	Add(ctx context.Context, user *models.User, productID uint) ([]models.CartItem, error)
	RemoveAll(ctx context.Context, user *models.User, productID uint) ([]models.CartItem, error)
	UpdateQuantity(ctx context.Context, user *models.User, productID uint, quantity int) ([]models.CartItem, error)
}

type CheckoutService interface {
	CreateSession(ctx context.Context, user *models.User, lines []models.LineItem, couponCode string) (*services.CheckoutResult, error)
	CompleteSession(ctx context.Context, user *models.User, session *models.CheckoutSession) (*models.Order, error)
}

type CouponService interface {
	Current(ctx context.Context, user *models.User) (*models.Coupon, error)
	Validate(ctx context.Context, user *models.User, code string) (*models.Coupon, error)
}

type ProductService interface {
	All(ctx context.Context) ([]models.Product, error)
	ByCategory(ctx context.Context, category string) ([]models.Product, error)
	Recommendations(ctx context.Context, category string) ([]models.Product, error)
	Create(ctx context.Context, input models.ProductInput) (*models.Product, error)
	Update(ctx context.Context, id uint, input models.ProductInput) (*models.Product, error)
	ToggleFeatured(ctx context.Context, id uint) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
}

type FeaturedService interface {
	Featured(ctx context.Context) ([]models.Product, error)
}

type OrderService interface {
	List(ctx context.Context, page, limit int, sort string) (*services.OrderPage, error)
	ForUser(ctx context.Context, user *models.User) ([]models.Order, error)
	Get(ctx context.Context, user *models.User, id uint) (*models.Order, error)
}

type AnalyticsService interface {
	Summary(ctx context.Context) (*services.AnalyticsData, error)
	DailySales(ctx context.Context) ([]models.DailySales, error)
}

// Handler holds the services behind the HTTP API.
type Handler struct {
	Auth      AuthService
	Cart      CartService
	Checkout  CheckoutService
	Coupons   CouponService
	Products  ProductService
	Featured  FeaturedService
	Orders    OrderService
	Analytics AnalyticsService

	JWTSecret    string
	SecureCookie bool
}

func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

// respondWithServiceError maps a service failure onto its HTTP status.
// Unclassified errors are logged and reported as 500.
func respondWithServiceError(ctx *gin.Context, err error) {
	switch {
	case services.IsInvalid(err):
		respondWithError(ctx, http.StatusBadRequest, err.Error(), nil)
	case services.IsNotFound(err):
		respondWithError(ctx, http.StatusNotFound, err.Error(), nil)
	case services.IsUnauthorized(err):
		respondWithError(ctx, http.StatusUnauthorized, err.Error(), nil)
	default:
		log.Ctx(ctx.Request.Context()).Error().Err(err).Str("path", ctx.FullPath()).Msg("request failed")
		_ = ctx.Error(err)
		respondWithError(ctx, http.StatusInternalServerError, msgServerError, err)
	}
}

// currentUser returns the user set by RequireAuth, writing a 401 when absent.
func currentUser(ctx *gin.Context) (*models.User, bool) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		respondWithError(ctx, http.StatusUnauthorized, "Unauthorized", nil)
	}
	return user, ok
}

func parseID(ctx *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil || id == 0 {
		respondWithError(ctx, http.StatusBadRequest, "Invalid "+param, err)
		return 0, false
	}
	return uint(id), true
}
