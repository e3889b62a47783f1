package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pawconnect/pawsyncd/internal/ai"
	"github.com/pawconnect/pawsyncd/internal/config"
	"github.com/pawconnect/pawsyncd/internal/feed"
	"github.com/pawconnect/pawsyncd/internal/gateway"
	"github.com/pawconnect/pawsyncd/internal/handler"
	"github.com/pawconnect/pawsyncd/internal/identity"
	"github.com/pawconnect/pawsyncd/internal/middleware"
	"github.com/pawconnect/pawsyncd/internal/routes"
	"github.com/pawconnect/pawsyncd/internal/service"
	pkgcache "github.com/pawconnect/pawsyncd/pkg/cache"
	pkglogger "github.com/pawconnect/pawsyncd/pkg/logger"
	pkgredis "github.com/pawconnect/pawsyncd/pkg/redis"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	zlog := pkglogger.GetLogger()
	zlog.Info().Str("env", env).Strs("dotenv", dotenvFiles).Msg("starting pawsyncd")

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Redis connection (optional: the daemon runs without a snapshot cache)
	var cacheService pkgcache.Service
	if cfg.Redis.Host != "" {
		redisClient, err := pkgredis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
		)
		if err != nil {
			zlog.Warn().Err(err).Msg("Redis unavailable, continuing without snapshot cache")
			cacheService = pkgcache.NewService(nil)
		} else {
			zlog.Info().Msg("connected to Redis")
			cacheService = pkgcache.NewService(redisClient)
		}
	} else {
		cacheService = pkgcache.NewService(nil)
	}

	// Identity: a read-only display name owned by the settings UI
	id := identity.Static(cfg.Identity.Username)
	if id.Username() == "" {
		zlog.Warn().Msg("no display name configured; mutations will fail until PAW_USERNAME is set")
	}

	// Remote feed gateway
	gw := gateway.NewClient(
		cfg.Feed.Endpoint,
		id,
		cfg.FeedTimeout(),
		pkglogger.WithComponent("gateway"),
	)

	// AI generation client
	aiClient := ai.NewClient(
		cfg.AI.Endpoint,
		cfg.AI.APIKey,
		cfg.AI.Model,
		cfg.AITimeout(),
		pkglogger.WithComponent("ai"),
	)
	zlog.Info().Bool("ai_enabled", aiClient.Enabled()).Msg("generation backend")

	// Feed store, view, and services
	store := feed.NewStore()
	view := feed.NewView(cfg.DebounceWindow())
	feedService := service.NewFeedService(gw, store, cacheService, id, pkglogger.WithComponent("feed"))
	augmentService := service.NewAugmentService(aiClient, store, pkglogger.WithComponent("augment"))

	// Warm the store from the persisted snapshot, then refresh from the
	// remote store in the background so startup never blocks on the network.
	if feedService.WarmFromCache(context.Background()) {
		zlog.Info().Msg("serving cached snapshot until first refresh completes")
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.FeedTimeout())
		defer cancel()
		if err := feedService.Refresh(ctx); err != nil {
			zlog.Warn().Err(err).Msg("initial feed refresh failed")
		}
	}()

	// HTTP surface
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "pawsyncd",
			"posts":   len(feedService.Posts()),
			"time":    time.Now().Unix(),
		})
	})

	feedHandler := handler.NewFeedHandler(feedService, view)
	augmentHandler := handler.NewAugmentHandler(augmentService)
	routes.Setup(router, feedHandler, augmentHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zlog.Info().Str("addr", addr).Msg("listening")
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
