package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopstack/storefront-api/internal/api/handler"
	"github.com/shopstack/storefront-api/internal/api/middleware"
	"github.com/shopstack/storefront-api/internal/core/ports"
	"github.com/shopstack/storefront-api/internal/core/service"
	mongodb "github.com/shopstack/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/shopstack/storefront-api/internal/infrastructure/db/redis"
	"github.com/shopstack/storefront-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	gateway ports.PaymentGateway,
	images ports.ImageStore,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
	}))
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	products := mongodb.NewProductRepository(db)
	coupons := mongodb.NewCouponRepository(db)
	orders := mongodb.NewOrderRepository(db)
	sessions := redisdb.NewSessionRegistry(rdb)
	featuredCache := redisdb.NewProductCache(rdb)

	// --- Services ---
	tokenService := service.NewTokenService(cfg.Auth.AccessTokenSecret, cfg.Auth.RefreshTokenSecret, 0, 0)
	authService := service.NewAuthService(users, sessions, tokenService, log)
	cartService := service.NewCartService(users, products, log)
	couponService := service.NewCouponService(coupons, log)
	productService := service.NewProductService(products, featuredCache, images, log)
	analyticsService := service.NewAnalyticsService(users, products, orders)
	checkoutService := service.NewCheckoutService(
		coupons,
		couponService,
		orders,
		gateway,
		cfg.ClientURL+"/purchase-success?session_id={CHECKOUT_SESSION_ID}",
		cfg.ClientURL+"/purchase-cancel",
		log,
	)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, tokenService.AccessTokenTTL(), tokenService.RefreshTokenTTL(), cfg.IsProduction())
	cartHandler := handler.NewCartHandler(cartService)
	couponHandler := handler.NewCouponHandler(couponService)
	paymentHandler := handler.NewPaymentHandler(checkoutService)
	productHandler := handler.NewProductHandler(productService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	// --- Guards ---
	authenticated := middleware.Auth(tokenService, users)
	adminOnly := middleware.AdminOnly()

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/login", authHandler.LogIn)
	auth.POST("/logout", authHandler.LogOut)
	auth.POST("/refresh-token", authHandler.Refresh)
	auth.GET("/profile", authHandler.Profile, authenticated)

	prod := api.Group("/products")
	prod.GET("", productHandler.All, authenticated, adminOnly)
	prod.GET("/featured", productHandler.Featured)
	prod.GET("/category/:category", productHandler.ByCategory)
	prod.GET("/recommendations", productHandler.Recommendations, authenticated)
	prod.POST("", productHandler.Create, authenticated, adminOnly)
	prod.DELETE("/:id", productHandler.Delete, authenticated, adminOnly)
	prod.PATCH("/:id", productHandler.ToggleFeatured, authenticated, adminOnly)

	cart := api.Group("/cart", authenticated)
	cart.GET("", cartHandler.Get)
	cart.POST("", cartHandler.Add)
	cart.DELETE("", cartHandler.Remove)
	cart.PUT("/:id", cartHandler.UpdateQuantity)

	coup := api.Group("/coupons", authenticated)
	coup.GET("", couponHandler.Get)
	coup.POST("/validate", couponHandler.Validate)

	pay := api.Group("/payments", authenticated)
	pay.POST("/create-checkout-session", paymentHandler.CreateCheckoutSession)
	pay.POST("/checkout-success", paymentHandler.CheckoutSuccess)

	api.GET("/analytics", analyticsHandler.Overview, authenticated, adminOnly)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
