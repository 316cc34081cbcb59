package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	handlers "GuardHer/internal/handler"
	"GuardHer/internal/service"
	"GuardHer/internal/store"
	"GuardHer/pkg/config"
	"GuardHer/pkg/logger"
	"GuardHer/pkg/metrics"
	"GuardHer/pkg/middleware"
	"GuardHer/pkg/notification"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GlobalConfig

	if err := logger.Init(cfg.Log); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.Mode)

	// Stores are constructed once per process and handed to the services
	// that need them; nothing is ambient.
	sessions := store.NewSessionStore()
	locations := store.NewLiveLocationStore(cfg.LiveLocationTTL)
	evidence := store.NewEvidenceStore()

	notifier := notification.NewLogNotifier(nil)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	classifier, err := service.NewClassifier(cfg.ClassifierStrategy, service.ProbabilisticConfig{
		ImageRiskThreshold: cfg.ImageRiskThreshold,
		AudioRiskThreshold: cfg.AudioRiskThreshold,
		HighRiskKeywords:   cfg.TextHighRiskKeywords,
	}, rng)
	if err != nil {
		logger.Error("failed to build classifier", zap.Error(err))
		os.Exit(1)
	}

	sosService := service.NewSOSService(sessions, locations, notifier)
	analysisService := service.NewAnalysisService(evidence, classifier, rng)
	analyticsService := service.NewAnalyticsService(sessions, evidence)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(metrics.Middleware())

	limiter, err := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:       cfg.RateLimit,
		SkipPaths:  []string{"/metrics", cfg.APIPrefix + "/system/health"},
		AddHeaders: true,
	}, nil)
	if err != nil {
		logger.Error("failed to build rate limiter", zap.Error(err))
		os.Exit(1)
	}
	engine.Use(limiter.WithObserver(metrics.NewRateLimitObserver()).Middleware())

	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	h := handlers.NewHandlers(sosService, analysisService, analyticsService, evidence)
	h.Register(engine)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: engine,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}
