package main

import (
	"context"   // Context for startup checks and shutdown
	"errors"    // Error matching
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal handling
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"money_tracker/internal/api"      // HTTP handlers
	"money_tracker/internal/auth"     // Identity provider
	"money_tracker/internal/config"   // Configuration
	"money_tracker/internal/db"       // Migrations and connections
	"money_tracker/internal/docstore" // Document collections
	"money_tracker/internal/utils"    // Cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log := logrus.StandardLogger()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ctx := context.Background()

	// Connect to MySQL when accounts or documents live there
	var gormDB *gorm.DB
	if cfg.UsesMySQL() {
		var err error
		gormDB, err = gorm.Open(mysql.Open(cfg.MySQLDSN()), &gorm.Config{TranslateError: true})
		if err != nil {
			log.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
		}
	}

	// Setup the cache: Redis when configured, in-process otherwise
	var cache utils.Cache = utils.NewMemoryCache()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		cache = utils.NewRedisCache(redisClient)
	} else {
		log.Warn("REDIS_ADDR not set, using in-process cache")
	}

	// Identity provider
	var accounts auth.AccountRepository
	switch cfg.AuthStore {
	case config.StoreMySQL:
		accounts = auth.NewGormAccounts(gormDB)
	case config.StoreMemory:
		accounts = auth.NewMemoryAccounts()
	default:
		log.Fatalf("unknown AUTH_STORE %q", cfg.AuthStore)
	}
	provider := auth.NewProvider(accounts, auth.NewCacheRevocations(cache), auth.ProviderConfig{
		Secret:            cfg.JWTSecret,
		SessionTTL:        cfg.SessionTTL,
		MinPasswordLength: cfg.ProviderMinPass,
	}, log)

	// Document store
	var store docstore.Store
	switch cfg.DocStore {
	case config.StoreMySQL:
		store = docstore.NewGormStore(gormDB)
	case config.StorePostgres:
		pg, err := db.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("failed to connect to Postgres: %v", err)
		}
		defer pg.Close()
		if err := db.MigratePostgres(ctx, pg); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		store = docstore.NewPostgresStore(pg)
	case config.StoreMemory:
		store = docstore.NewMemoryStore()
	default:
		log.Fatalf("unknown DOC_STORE %q", cfg.DocStore)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.New()        // Gin router instance, logging via logrus
	r.Use(gin.Recovery()) // Recover from panics

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		log.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.Register(r, &api.Deps{
		Provider:      provider,
		Profiles:      store,
		Users:         docstore.NewCachedUserList(store, cache, cfg.ListCacheTTL, log),
		Log:           log,
		SecureCookies: cfg.IsProd,
	}, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.AppPort).Info("Server running") // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	sign := <-stop

	log.WithField("signal", sign.String()).Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown failed: %v", err)
	}
}
