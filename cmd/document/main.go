// Command document runs the persistence gateway on its own: the document
// CRUD API without editing sessions. Editors running elsewhere fetch and save
// through it.
package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/config"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/database"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document/handler"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document/repository"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document/service"
	"github.com/md-rejoyan-islam/resume-builder-sub002/pkg/logger"
	"github.com/md-rejoyan-islam/resume-builder-sub002/pkg/metrics"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	port := os.Getenv("DOC_SERVICE_PORT")
	if port == "" {
		port = "5010"
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Mongo when configured; fall back to memory so local runs need no database.
	var svc service.Service
	if cfg.MongoDB.URI != "" {
		ctx := context.Background()
		client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			logger.Warnf("cannot connect to MongoDB (%v), using memory-backed repo", err)
			svc = service.NewMemoryService()
		} else {
			defer func() { _ = client.Disconnect(context.Background()) }()
			repo, err := repository.NewMongoRepo(ctx, client.Database(cfg.MongoDB.Database).Collection("documents"))
			if err != nil {
				logger.Fatalf("mongo repository: %v", err)
			}
			svc = service.New(repo)
		}
	} else {
		svc = service.NewMemoryService()
	}

	handler.RegisterDocumentRoutes(r, svc)
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "healthy") })
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Infof("document gateway listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
