package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"campusspot/internal/config"
	"campusspot/internal/handler"
	"campusspot/internal/repository"
	"campusspot/internal/service"
	"campusspot/pkg/database"
	"campusspot/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("CampusSpot room finder",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rooms, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to load room catalog", zap.Error(err))
	}
	events := repository.NewSeedEventRepository()

	// Optional suggestion cache
	var cache service.SuggestionCache
	if cfg.AI.Enabled && cfg.Redis.Enabled {
		redisCache := service.NewRedisCache(&cfg.Redis, log)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := redisCache.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Warn("Redis unreachable, suggestion cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
			_ = redisCache.Close()
		} else {
			log.Info("Connected to Redis suggestion cache", zap.String("addr", cfg.Redis.Addr), zap.Int("ttl_s", cfg.Redis.TTL))
			defer redisCache.Close()
			cache = redisCache
		}
	}

	// Initialize services
	suggester := service.NewSuggester(&cfg.AI, cache, log)
	clock, err := service.NewReferenceClock(&cfg.Clock, nil)
	if err != nil {
		log.Fatal("Failed to create reference clock", zap.Error(err))
	}
	roomService := service.NewRoomService(rooms, events, suggester, clock, log)
	center := service.NewNotificationCenter(events, nil, nil, log)

	log.Info("Services initialized",
		zap.String("suggester", suggester.Name()),
		zap.Int("rooms", rooms.Len()),
	)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "campusspot",
			"suggester":  suggester.Name(),
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	handler.NewRoomHandler(roomService).RegisterRoutes(apiV1)
	handler.NewNotificationHandler(center).RegisterRoutes(apiV1)
	handler.NewAttendanceHandler().RegisterRoutes(apiV1)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Endpoint not found"})
	})

	// Event notifications
	interval := time.Duration(cfg.Notifications.IntervalSeconds) * time.Second
	if interval > 0 {
		go center.Run(ctx, interval)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}

// loadCatalog snapshots the PostgreSQL catalog when configured and falls back
// to the seed rooms otherwise
func loadCatalog(ctx context.Context, cfg *config.Config, log *zap.Logger) (*repository.MemoryRepository, error) {
	if !cfg.CatalogEnabled() {
		log.Info("No catalog database configured, serving seed rooms")
		return repository.NewSeedRepository(), nil
	}

	pg, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.Catalog.MaxConnections,
		cfg.Catalog.MaxIdleConnections,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pg.Close()

	if cfg.Catalog.Migrate {
		if err := database.RunMigrations(pg.DB().DB, log); err != nil {
			return nil, err
		}
	}

	loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	snapshot, err := repository.LoadSnapshot(loadCtx, pg)
	if err != nil {
		return nil, err
	}

	log.Info("Loaded room catalog from PostgreSQL", zap.Int("rooms", snapshot.Len()))
	return snapshot, nil
}

// requestLogger logs one line per request
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
