package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nexify_backend/internal/config"
	"nexify_backend/internal/handler"
	"nexify_backend/internal/middleware"
	"nexify_backend/internal/repository"
	"nexify_backend/internal/service"
	"nexify_backend/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(dbPool); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpirationHrs)

	// --- Payment Gateway ---
	gateway, err := service.NewOmiseGateway(cfg.OmisePublicKey, cfg.OmiseSecretKey)
	if err != nil {
		log.Fatalf("Failed to create payment gateway: %v", err)
	}

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)
	reviewRepo := repository.NewReviewRepository(dbPool)
	paymentRepo := repository.NewPaymentRepository(dbPool)

	// --- Initialize Services ---
	userService := service.NewUserService(userRepo, jwtUtil)
	productService := service.NewProductService(productRepo)
	reviewService := service.NewReviewService(reviewRepo)
	paymentService := service.NewPaymentService(paymentRepo, gateway)
	statsService := service.NewStatsService(userRepo, productRepo, reviewRepo)

	// --- Initialize Handlers ---
	userHandler := handler.NewUserHandler(userService, int(jwtUtil.ExpiresIn().Seconds()))
	productHandler := handler.NewProductHandler(productService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	statsHandler := handler.NewStatsHandler(statsService)

	// --- Setup Gin Router ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()

	// CORS: the session cookie is cross-site, so origins are an explicit
	// allowlist and credentials are enabled
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// --- Initialize Middlewares ---
	sessionMW := middleware.SessionMiddleware(jwtUtil)
	selfMW := middleware.SelfScopeMiddleware()
	adminMW := middleware.AdminMiddleware(userService)
	moderatorMW := middleware.ModeratorMiddleware(userService)

	// --- Register Routes ---
	apiGroup := router.Group("/api/v1") // Base path for API
	userHandler.RegisterUserRoutes(apiGroup, sessionMW, selfMW, adminMW)
	productHandler.RegisterProductRoutes(apiGroup, sessionMW, moderatorMW)
	reviewHandler.RegisterReviewRoutes(apiGroup, sessionMW)
	paymentHandler.RegisterPaymentRoutes(apiGroup, sessionMW, selfMW)
	statsHandler.RegisterStatsRoutes(apiGroup)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Nexify server is running...")
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(context.Background()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Nexify server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
