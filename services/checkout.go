package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kariqs/storefront-api/metrics"
	"github.com/Kariqs/storefront-api/models"
	"github.com/Kariqs/storefront-api/store"
	"github.com/Kariqs/storefront-api/utils"
)

const tracerName = "github.com/Kariqs/storefront-api/services"

type CheckoutConfig struct {
	// CouponThreshold is the session total at or above which a gift coupon
	// is issued.
	CouponThreshold float64
	CouponDiscount  float64
	CouponValidity  time.Duration
}

func DefaultCheckoutConfig() CheckoutConfig {
	return CheckoutConfig{
		CouponThreshold: 20000,
		CouponDiscount:  10,
		CouponValidity:  30 * 24 * time.Hour,
	}
}

type CheckoutResult struct {
	Session     models.CheckoutSession
	TotalAmount float64
	// IssuedCoupon is set when this checkout earned the user a new coupon.
	IssuedCoupon *models.Coupon
}

type CheckoutService struct {
	coupons   CouponStore
	orders    OrderStore
	cart      *CartService
	publisher OrderPublisher
	notifier  CouponNotifier
	cfg       CheckoutConfig
	tracer    trace.Tracer

	now  func() time.Time
	mail sync.WaitGroup
}

func NewCheckoutService(
	coupons CouponStore,
	orders OrderStore,
	cart *CartService,
	publisher OrderPublisher,
	notifier CouponNotifier,
	cfg CheckoutConfig,
) *CheckoutService {
	return &CheckoutService{
		coupons:   coupons,
		orders:    orders,
		cart:      cart,
		publisher: publisher,
		notifier:  notifier,
		cfg:       cfg,
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
}

// CartTotal is Σ price × quantity over the lines.
func CartTotal(lines []models.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(decimal.NewFromFloat(line.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// ApplyDiscount reduces total by pct percent.
func ApplyDiscount(total decimal.Decimal, pct float64) decimal.Decimal {
	discount := total.Mul(decimal.NewFromFloat(pct)).Div(decimal.NewFromInt(100))
	return total.Sub(discount)
}

func normalizeLines(lines []models.LineItem) ([]models.LineItem, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyProducts
	}
	out := make([]models.LineItem, len(lines))
	for i, line := range lines {
		if line.Price < 0 || line.Quantity < 0 {
			return nil, ErrInvalidLineItem
		}
		if line.Quantity == 0 {
			line.Quantity = 1
		}
		out[i] = line
	}
	return out, nil
}

// CreateSession prices the submitted lines, applies the user's coupon when it
// is valid, and issues a new gift coupon if the total reaches the threshold.
func (s *CheckoutService) CreateSession(ctx context.Context, user *models.User, lines []models.LineItem, couponCode string) (*CheckoutResult, error) {
	ctx, span := s.tracer.Start(ctx, "checkout.CreateSession")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", int64(user.ID)), attribute.Int("checkout.lines", len(lines)))

	lines, err := normalizeLines(lines)
	if err != nil {
		return nil, err
	}

	total := CartTotal(lines)
	appliedCode := ""
	if couponCode != "" {
		coupon, err := s.coupons.FindActive(ctx, user.ID, couponCode)
		switch {
		case err == nil && coupon.Redeemable(s.now()):
			total = ApplyDiscount(total, coupon.DiscountPercentage)
			appliedCode = coupon.Code
			metrics.CouponsRedeemed.Inc()
		case err != nil && !errors.Is(err, store.ErrNotFound):
			span.RecordError(err)
			span.SetStatus(codes.Error, "coupon lookup failed")
			return nil, err
		}
	}
	total = total.Round(2)
	totalAmount := total.InexactFloat64()

	result := &CheckoutResult{
		Session: models.CheckoutSession{
			ID:         "session_" + uuid.NewString(),
			LineItems:  lines,
			Total:      totalAmount,
			UserID:     user.ID,
			CouponCode: appliedCode,
			Products:   lines,
		},
		TotalAmount: totalAmount,
	}

	if total.GreaterThanOrEqual(decimal.NewFromFloat(s.cfg.CouponThreshold)) {
		coupon, err := s.IssueCoupon(ctx, user)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "coupon issue failed")
			return nil, err
		}
		result.IssuedCoupon = coupon
	}

	metrics.CheckoutSessions.Inc()
	span.SetAttributes(attribute.Float64("checkout.total", totalAmount), attribute.String("checkout.coupon", appliedCode))
	return result, nil
}

// IssueCoupon replaces whatever coupon the user holds with a fresh gift coupon.
func (s *CheckoutService) IssueCoupon(ctx context.Context, user *models.User) (*models.Coupon, error) {
	suffix, err := utils.GenerateCode(6)
	if err != nil {
		return nil, err
	}
	coupon := &models.Coupon{
		Code:               "GIFT" + suffix,
		DiscountPercentage: s.cfg.CouponDiscount,
		ExpirationDate:     s.now().Add(s.cfg.CouponValidity),
		IsActive:           true,
		UserID:             user.ID,
	}
	if err := s.coupons.Replace(ctx, coupon); err != nil {
		return nil, err
	}
	metrics.CouponsIssued.Inc()

	if s.notifier != nil {
		mailCtx := context.WithoutCancel(ctx)
		s.mail.Add(1)
		go func() {
			defer s.mail.Done()
			if err := s.notifier.CouponIssued(mailCtx, user, coupon); err != nil {
				log.Ctx(mailCtx).Warn().Err(err).Uint("user_id", user.ID).Msg("failed to send coupon email")
			}
		}()
	}
	return coupon, nil
}

// Wait blocks until every coupon email started so far has been handed to
// the notifier.
func (s *CheckoutService) Wait() {
	s.mail.Wait()
}

// CompleteSession records the order for a confirmed session and redeems its
// coupon. Confirming the same session twice returns the first order.
func (s *CheckoutService) CompleteSession(ctx context.Context, user *models.User, session *models.CheckoutSession) (*models.Order, error) {
	ctx, span := s.tracer.Start(ctx, "checkout.CompleteSession")
	defer span.End()

	if session == nil || session.ID == "" || len(session.Products) == 0 {
		return nil, ErrInvalidSession
	}
	if session.UserID != 0 && session.UserID != user.ID {
		return nil, ErrSessionOwner
	}
	span.SetAttributes(attribute.String("checkout.session", session.ID))

	existing, err := s.orders.FindByReference(ctx, session.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		span.RecordError(err)
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(session.Products))
	for _, p := range session.Products {
		if p.Price < 0 || p.Quantity < 0 {
			return nil, ErrInvalidLineItem
		}
		quantity := p.Quantity
		if quantity == 0 {
			quantity = 1
		}
		items = append(items, models.OrderItem{ProductID: p.ID, Quantity: quantity, Price: p.Price})
	}

	order := &models.Order{
		UserID:      user.ID,
		Items:       items,
		TotalAmount: session.Total,
		Reference:   session.ID,
	}
	if err := s.orders.Create(ctx, order, session.CouponCode); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order create failed")
		return nil, err
	}
	metrics.OrdersCreated.Inc()

	if err := s.cart.Clear(ctx, user); err != nil {
		log.Ctx(ctx).Warn().Err(err).Uint("user_id", user.ID).Msg("failed to clear cart after checkout")
	}
	if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("order_id", order.ID).Msg("failed to publish order event")
	}
	return order, nil
}
