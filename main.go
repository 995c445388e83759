package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Kariqs/storefront-api/cache"
	"github.com/Kariqs/storefront-api/cdn"
	"github.com/Kariqs/storefront-api/controllers"
	"github.com/Kariqs/storefront-api/events"
	"github.com/Kariqs/storefront-api/initializers"
	"github.com/Kariqs/storefront-api/middlewares"
	"github.com/Kariqs/storefront-api/routes"
	"github.com/Kariqs/storefront-api/services"
	"github.com/Kariqs/storefront-api/store"
	"github.com/Kariqs/storefront-api/tracing"
	"github.com/Kariqs/storefront-api/utils"
)

const serviceName = "storefront-api"

func main() {
	initializers.LoadEnv()
	cfg := initializers.LoadConfig()
	initializers.InitLogger(cfg.GinMode)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	if cfg.JaegerEndpoint != "" {
		tp, err := tracing.InitTracerProvider(serviceName, cfg.JaegerEndpoint)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize tracer provider")
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to shut down tracer provider")
			}
		}()
	}

	db, err := initializers.ConnectToDB(cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := initializers.SyncDatabase(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	rdb, err := initializers.ConnectToRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	if cfg.S3Bucket == "" {
		log.Warn().Msg("S3_BUCKET is not set, product image uploads will fail")
	}
	images, err := cdn.NewS3ImageStore(ctx, cfg.S3Bucket, cfg.S3PublicBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure image CDN")
	}

	var publisher interface {
		services.OrderPublisher
		Close() error
	} = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.OrderEventsTopic)
	} else {
		log.Info().Msg("KAFKA_BROKERS not set, order events are not published")
	}
	defer publisher.Close()

	mailer := &utils.Mailer{
		From:        cfg.FromEmail,
		Password:    cfg.FromEmailPassword,
		Host:        cfg.SMTPHost,
		Addr:        cfg.SMTPAddress,
		TemplateDir: "templates",
		ShopURL:     cfg.ClientURL,
	}

	users := store.NewUserStore(db)
	products := store.NewProductStore(db)
	coupons := store.NewCouponStore(db)
	orders := store.NewOrderStore(db)

	checkoutCfg := services.DefaultCheckoutConfig()
	checkoutCfg.CouponThreshold = cfg.CouponThreshold
	checkoutCfg.CouponDiscount = cfg.CouponDiscount

	auth := services.NewAuthService(users)
	cart := services.NewCartService(users, products)
	featured := services.NewFeaturedService(products, cache.NewRedisFeaturedCache(rdb))

	checkout := services.NewCheckoutService(coupons, orders, cart, publisher, mailer, checkoutCfg)
	handler := &controllers.Handler{
		Auth:         auth,
		Cart:         cart,
		Checkout:     checkout,
		Coupons:      services.NewCouponService(coupons),
		Products:     services.NewProductService(products, images, featured),
		Featured:     featured,
		Orders:       services.NewOrderService(orders),
		Analytics:    services.NewAnalyticsService(users, products, orders),
		JWTSecret:    cfg.JWTSecret,
		SecureCookie: cfg.GinMode == gin.ReleaseMode,
	}

	server := gin.New()
	server.Use(gin.Recovery(), middlewares.Logger(), middlewares.Metrics())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.DefaultRoutes(server)
	routes.APIRoutes(server, handler, middlewares.RequireAuth(cfg.JWTSecret, auth))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting storefront-api")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown")
	}
	checkout.Wait()
}
