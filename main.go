package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/md-rejoyan-islam/resume-builder-sub002/handlers"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/config"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/database"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document/handler"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document/repository"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document/service"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/storage"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/wizard"
	wizardhandler "github.com/md-rejoyan-islam/resume-builder-sub002/internal/wizard/handler"
	"github.com/md-rejoyan-islam/resume-builder-sub002/pkg/logger"
	"github.com/md-rejoyan-islam/resume-builder-sub002/pkg/metrics"
	"github.com/md-rejoyan-islam/resume-builder-sub002/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Infof("config loaded: backend=%s mongo=%v redis=%v minio=%v", cfg.Storage.Backend, cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Enabled())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Lightweight CORS for the browser editor.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length, X-Entry-Id")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	})
	r.Use(gin.Logger(), gin.Recovery())

	// Redis is optional: it backs the document cache and the shared rate limiter.
	var redisClient *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
			_ = client.Close()
		} else {
			redisClient = client
			defer func() { _ = redisClient.Close() }()
			logger.Infof("connected to Redis at %s", addr)
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
		logger.Infof("rate limiter enabled: rps=%v burst=%d redis=%v", cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.UseRedis && redisClient != nil)
	}

	repo, mongoClient, err := openRepository(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open %s storage: %v", cfg.Storage.Backend, err)
	}
	if mongoClient != nil {
		defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	}
	if redisClient != nil && cfg.Storage.CacheTTL > 0 {
		repo = repository.NewRedisCache(repo, redisClient, "document:", cfg.Storage.CacheTTL)
		logger.Infof("document cache enabled (ttl=%s)", cfg.Storage.CacheTTL)
	}

	svc := service.New(repo)
	sessions := wizard.NewManager(svc)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// ready only when the storage backend answers and, if configured, Redis does too
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		if _, err := repo.List(c.Request.Context()); err != nil {
			logger.Warnf("readiness: storage: %v", err)
			deps["storage"] = false
			ready = false
		} else {
			deps["storage"] = true
		}

		if cfg.Redis.Host != "" {
			deps["redis"] = redisClient != nil && redisClient.Ping(c.Request.Context()).Err() == nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		body := gin.H{"deps": deps, "sessions": sessions.Len(), "uptime": time.Since(startTime).String()}
		if !ready {
			body["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["status"] = "ready"
		c.JSON(http.StatusOK, body)
	})

	handler.RegisterDocumentRoutes(r, svc)
	wizardhandler.RegisterWizardRoutes(r, sessions)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("starting resume builder API on %s (%s)", addr, cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}

// openRepository builds the configured storage backend. The returned Mongo
// client is nil unless the mongo backend is selected.
func openRepository(ctx context.Context, cfg *config.Config) (repository.Repository, *mongo.Client, error) {
	switch cfg.Storage.Backend {
	case config.BackendMongo:
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
		if err != nil {
			return nil, nil, err
		}
		col := client.Database(cfg.MongoDB.Database).Collection("documents")
		repo, err := repository.NewMongoRepo(ctx, col)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		logger.Infof("using MongoDB storage (%s)", cfg.MongoDB.Database)
		return repo, client, nil
	case config.BackendMinIO:
		store, err := storage.NewMinIOStorage(ctx, &cfg.MinIO)
		if err != nil {
			return nil, nil, err
		}
		logger.Infof("using MinIO storage (bucket %s)", cfg.MinIO.Bucket)
		return repository.NewObjectRepo(store), nil, nil
	default:
		logger.Infof("using in-memory storage")
		return repository.NewMemoryRepo(), nil, nil
	}
}
