package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/aeo-auditor/backend/analyzer"
	"github.com/aeo-auditor/backend/config"
	"github.com/aeo-auditor/backend/logging"
	"github.com/aeo-auditor/backend/middleware"
)

func loadEnv() {
	// Try .env.development first (for local development), then regular .env.
	if err := godotenv.Load(".env.development"); err != nil {
		godotenv.Load()
	}
}

func main() {
	loadEnv()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("invalid configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel, cfg.DevMode)
	if err != nil {
		os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	gin.SetMode(cfg.GinMode)

	profiles, err := cfg.EngineProfiles()
	if err != nil {
		log.Fatal("failed to load engine profiles", zap.Error(err))
	}

	auditor, err := analyzer.New(cfg.DataDir, profiles, log)
	if err != nil {
		log.Fatal("failed to initialize analyzer", zap.Error(err))
	}
	auditor.SetFetchTimeout(cfg.FetchTimeout)
	auditor.SetCacheTTL(cfg.CacheTTL)

	rateLimiter := middleware.NewRateLimiter(2, 5) // 2 requests per second, bucket of 5

	r := gin.New()
	r.Use(middleware.ErrorHandler(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(middleware.UsageStats(auditor.GetStats()))
	r.Use(rateLimiter.RateLimit())
	r.Use(corsMiddleware())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		api.POST("/analyze", analyzeHandler(auditor, log))
		api.POST("/compare", compareHandler(auditor, log))
		api.GET("/statistics", statisticsHandler(auditor, cfg.DevMode))
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	if err := auditor.Shutdown(); err != nil {
		log.Error("analyzer shutdown failed", zap.Error(err))
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func analyzeHandler(auditor *analyzer.Analyzer, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			URL string `json:"url" binding:"required,url"`
		}

		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL provided"})
			return
		}

		audit, err := auditor.AnalyzeWithContext(c.Request.Context(), request.URL)
		if err != nil {
			var fetchErr *analyzer.FetchError
			if errors.As(err, &fetchErr) {
				c.JSON(http.StatusBadGateway, gin.H{
					"error": "Failed to fetch page: " + err.Error(),
					"hint":  "Make sure the URL is reachable and returns HTML content.",
				})
				return
			}
			log.Error("analysis failed", zap.String("url", request.URL), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze URL"})
			return
		}

		c.JSON(http.StatusOK, audit)
	}
}

func compareHandler(auditor *analyzer.Analyzer, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			YourURL     string   `json:"yourUrl" binding:"omitempty,url"`
			Competitors []string `json:"competitors" binding:"required,min=1,max=3,dive,url"`
		}

		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Provide up to 3 competitor URLs, optionally with your own"})
			return
		}

		var targets []analyzer.CompareTarget
		if request.YourURL != "" {
			targets = append(targets, analyzer.CompareTarget{Label: analyzer.YourSiteLabel, URL: request.YourURL})
		}
		for i, u := range request.Competitors {
			targets = append(targets, analyzer.CompareTarget{
				Label: "Competitor " + strconv.Itoa(i+1),
				URL:   u,
			})
		}

		if len(targets) < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "At least 2 URLs are required for comparison"})
			return
		}

		comparison, err := auditor.Compare(c.Request.Context(), targets)
		if err != nil {
			if errors.Is(err, analyzer.ErrInsufficientComparison) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error": "Could not analyze enough pages for comparison. Please check the URLs and try again.",
				})
				return
			}
			log.Error("comparison failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Comparison failed"})
			return
		}

		c.JSON(http.StatusOK, comparison)
	}
}

func statisticsHandler(auditor *analyzer.Analyzer, devMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		storage := auditor.GetStats()
		current := storage.GetCurrentStats()

		payload := gin.H{
			"audits":         current.Audits,
			"comparisons":    current.Comparisons,
			"fetchFailures":  current.FetchFailures,
			"uniqueVisitors": storage.UniqueVisitors(),
		}

		// Detailed counters are only exposed in development mode.
		if devMode {
			payload["cacheHits"] = current.CacheHits
			payload["cacheMisses"] = current.CacheMisses
			payload["popularUrls"] = storage.TopURLs(5)
			payload["months"] = storage.GetAllMonths()
		}

		c.JSON(http.StatusOK, payload)
	}
}
