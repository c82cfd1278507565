package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davitama/storefront/controllers"
	"github.com/davitama/storefront/database"
	"github.com/davitama/storefront/logger"
	"github.com/davitama/storefront/middleware"
	"github.com/davitama/storefront/models"
	"github.com/davitama/storefront/repository"
	"github.com/davitama/storefront/routes"
	"github.com/davitama/storefront/services"
	"github.com/davitama/storefront/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := LoadConfig()

	logger.Initialize(cfg.Env)
	log := logger.Log
	defer log.Sync()

	// --- Database ---
	db, err := database.ConnectPostgres(log,
		&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	)
	if err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}

	// --- Repositories ---
	productRepo := repository.NewGormProductRepository(db)
	cartRepo := repository.NewGormCartRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	userRepo := repository.NewGormUserRepository(db)

	if err := services.SeedCatalog(context.Background(), productRepo, log); err != nil {
		log.Fatal("Catalog seed failed", zap.Error(err))
	}

	// --- Guest cart store ---
	var guestStore session.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Redis connection failed", zap.Error(err))
		}
		guestStore = session.NewRedisStore(client, cfg.GuestCartTTL)
		log.Info("Guest carts stored in Redis", zap.String("addr", cfg.RedisAddr))
	} else {
		guestStore = session.NewMemoryStore()
		log.Info("Guest carts stored in memory")
	}
	sessions := session.NewManager(guestStore, cfg.GuestCartTTL, log)

	// --- Services ---
	tokenService := services.NewTokenService()
	authService := services.NewAuthService(userRepo, tokenService, db)
	productService := services.NewProductService(productRepo, log)
	cartService := services.NewCartService(cartRepo, productRepo, log)
	orderService := services.NewOrderService(db, cartRepo, orderRepo, log)

	// --- Controllers ---
	authController := controllers.NewAuthController(authService, cartService, sessions)
	productController := controllers.NewProductController(productService)
	cartController := controllers.NewCartController(sessions, cartService, productService)
	orderController := controllers.NewOrderController(orderService, sessions)

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	authLimiter := middleware.RateLimitMiddleware(cfg.AuthRatePerMinute, cfg.AuthRateBurst)
	routes.RegisterRoutes(r, tokenService, authLimiter, authController, productController, cartController, orderController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "storefront"})
	})

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info("Storefront started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if err := database.Close(db); err != nil {
		log.Error("Database close error", zap.Error(err))
	}

	log.Info("Storefront stopped gracefully")
}
