package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/tiendago/ventas-online/config"
	"github.com/tiendago/ventas-online/internal/auth"
	carthandler "github.com/tiendago/ventas-online/internal/cart/handler"
	cartrepo "github.com/tiendago/ventas-online/internal/cart/repository"
	cartuc "github.com/tiendago/ventas-online/internal/cart/usecase"
	categoryhandler "github.com/tiendago/ventas-online/internal/category/handler"
	categoryrepo "github.com/tiendago/ventas-online/internal/category/repository"
	categoryuc "github.com/tiendago/ventas-online/internal/category/usecase"
	checkouthandler "github.com/tiendago/ventas-online/internal/checkout/handler"
	checkoutrepo "github.com/tiendago/ventas-online/internal/checkout/repository"
	checkoutuc "github.com/tiendago/ventas-online/internal/checkout/usecase"
	invoicehandler "github.com/tiendago/ventas-online/internal/invoice/handler"
	invoicerepo "github.com/tiendago/ventas-online/internal/invoice/repository"
	invoiceuc "github.com/tiendago/ventas-online/internal/invoice/usecase"
	producthandler "github.com/tiendago/ventas-online/internal/product/handler"
	productrepo "github.com/tiendago/ventas-online/internal/product/repository"
	productuc "github.com/tiendago/ventas-online/internal/product/usecase"
	"github.com/tiendago/ventas-online/internal/seed"
	userhandler "github.com/tiendago/ventas-online/internal/user/handler"
	userrepo "github.com/tiendago/ventas-online/internal/user/repository"
	useruc "github.com/tiendago/ventas-online/internal/user/usecase"
	"github.com/tiendago/ventas-online/pkg/cache"
	"github.com/tiendago/ventas-online/pkg/logger"
	"github.com/tiendago/ventas-online/pkg/postgres"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on the environment")
	}
	cfg := config.LoadEnv()

	zapLogger, err := logger.NewZapLogger(&logger.Config{
		IsDevelopment:     cfg.Server.AppEnv == "dev",
		Level:             cfg.Logger.Level,
		Encoding:          cfg.Logger.Encoding,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zapLogger *zap.Logger) error {
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Minute,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Minute,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	zapLogger.Info("connected to postgres", zap.String("host", cfg.Postgres.Host))

	// The product cache is an optimization, not a dependency. A missing redis
	// only costs us the cached listings.
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		zapLogger.Warn("redis unavailable, product caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		return err
	}

	userRepo := userrepo.NewPGRepository(db)
	categoryRepo := categoryrepo.NewPGRepository(db)
	productRepo := productrepo.NewPGRepository(db)
	cartRepo := cartrepo.NewPGRepository(db)
	checkoutRepo := checkoutrepo.NewPGRepository(db)
	invoiceRepo := invoicerepo.NewPGRepository(db)

	tokens := auth.NewTokenManager(cfg.JWT.SecretKey, time.Duration(cfg.JWT.ExpiryMinutes)*time.Minute)

	userUC := useruc.NewUserUseCase(userRepo, tokens, zapLogger)
	categoryUC := categoryuc.NewCategoryUseCase(categoryRepo, cfg.Seed.CategoryName, zapLogger)
	productUC := productuc.NewProductUseCase(productRepo, categoryRepo, redisClient, zapLogger)
	cartUC := cartuc.NewCartUseCase(cartRepo, productRepo, zapLogger)
	checkoutUC := checkoutuc.NewCheckoutUseCase(checkoutRepo, cartRepo, productRepo, zapLogger)
	invoiceUC := invoiceuc.NewInvoiceUseCase(invoiceRepo, productRepo, userRepo, zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seeder := seed.NewSeeder(userRepo, categoryRepo, cfg.Seed, zapLogger)
	if err := seeder.EnsureDefaults(ctx); err != nil {
		return err
	}

	if cfg.Server.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Static("/uploads", cfg.Uploads.Dir)

	mw := auth.NewMiddleware(tokens, userRepo, zapLogger)
	api := router.Group("/api/v1")
	userhandler.NewUserHandler(userUC, zapLogger).RegisterRoutes(api, mw)
	categoryhandler.NewCategoryHandler(categoryUC, zapLogger).RegisterRoutes(api, mw)
	producthandler.NewProductHandler(productUC, cfg.Uploads, zapLogger).RegisterRoutes(api, mw)
	carthandler.NewCartHandler(cartUC, zapLogger).RegisterRoutes(api, mw)
	checkouthandler.NewHandler(checkoutUC).RegisterRoutes(api, mw)
	invoicehandler.NewInvoiceHandler(invoiceUC).RegisterRoutes(api, mw)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPPort,
		Handler: router,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zapLogger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		zapLogger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
