package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vastra-api/aws"
	"vastra-api/controllers"
	"vastra-api/database"
	"vastra-api/kafka"
	"vastra-api/logger"
	"vastra-api/middleware"
	"vastra-api/models"
	"vastra-api/repository"
	"vastra-api/routes"
	"vastra-api/services"
	"vastra-api/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments inject environment directly
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		panic("config load failed: " + err.Error())
	}

	log := logger.Initialize(cfg.Env)
	defer log.Sync()

	// --- Database ---
	db, err := database.ConnectPostgres(database.PostgresConfig{
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPassword,
		DB:       cfg.PostgresDB,
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		SSLMode:  cfg.PostgresSSLMode,
		TimeZone: cfg.PostgresTimeZone,
	}, log)
	if err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}
	if err := models.Migrate(db); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	// --- Redis ---
	redisClient, err := database.NewRedisClient(cfg.RedisURL, log)
	if err != nil {
		log.Fatal("Redis connection failed", zap.Error(err))
	}

	// --- Kafka ---
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.OrderTopic)
	defer producer.Close()

	// --- AWS SNS (optional, best-effort order events) ---
	var snsClient aws.SNSPublisher
	if cfg.OrderSNSTopicARN != "" {
		awsCfg, err := aws.LoadAWSConfig(context.Background())
		if err != nil {
			log.Warn("AWS config load failed, SNS publishing disabled", zap.Error(err))
		} else {
			snsClient = aws.NewSNSClient(awsCfg)
		}
	}

	// --- Dependency injection ---
	userRepo := repository.NewGormUserRepository(db)
	productRepo := repository.NewGormProductRepository(db)
	cartRepo := repository.NewGormCartRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	tryOnRepo := repository.NewRedisTryOnRepository(redisClient, session.TTL)
	idemRepo := repository.NewRedisIdempotencyRepository(redisClient)

	sessionStore := session.NewRedisStore(redisClient)
	provider := services.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)

	productSvc := services.NewProductService(productRepo, log)
	cartSvc := services.NewCartService(cartRepo, productRepo, log)
	checkoutSvc := services.NewCheckoutService(cartRepo, orderRepo, idemRepo, producer, cfg.OrderTopic, snsClient, cfg.OrderSNSTopicARN, log)
	orderSvc := services.NewOrderService(orderRepo, log)
	authSvc := services.NewAuthService(userRepo, provider, log)
	tryOnSvc := services.NewTryOnService(tryOnRepo, productRepo, log)

	// Background worker for the simulated try-on pipeline
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	services.StartTryOnWorker(workerCtx, tryOnRepo, productRepo, services.DefaultTryOnWorkerOptions(), log)

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.RequestTimeout(30 * time.Second))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	cookieCfg := controllers.AuthCookieConfig{
		Domain:      cfg.CookieDomain,
		Secure:      cfg.Env == "production",
		FrontendURL: cfg.FrontendURL,
	}

	routes.RegisterRoutes(r, routes.Controllers{
		Products: controllers.NewProductController(productSvc),
		Cart:     controllers.NewCartController(cartSvc),
		Checkout: controllers.NewCheckoutController(checkoutSvc),
		Orders:   controllers.NewOrderController(orderSvc),
		Auth:     controllers.NewAuthController(authSvc, sessionStore, cookieCfg),
		TryOn:    controllers.NewTryOnController(tryOnSvc),
	}, sessionStore)

	// --- HTTP server ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("Storefront API is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down gracefully...")
	stopWorker()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Shutdown error", zap.Error(err))
	}
	if err := database.Close(); err != nil {
		log.Warn("DB close failed", zap.Error(err))
	}
	log.Info("Server shutdown complete.")
}
