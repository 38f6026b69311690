package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-portfolio/api"
	"github.com/gcbaptista/go-portfolio/config"
	"github.com/gcbaptista/go-portfolio/internal/analytics"
	"github.com/gcbaptista/go-portfolio/internal/content"
	"github.com/gcbaptista/go-portfolio/internal/jobs"
	logpkg "github.com/gcbaptista/go-portfolio/internal/logger"
	"github.com/gcbaptista/go-portfolio/internal/mail"
	"github.com/gcbaptista/go-portfolio/internal/metrics"
	"github.com/gcbaptista/go-portfolio/model"
	"github.com/gcbaptista/go-portfolio/store"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		showVer    = flag.Bool("version", false, "Show version information")
		configPath = flag.String("config", os.Getenv("CONFIG_PATH"), "Path to the YAML config file (defaults only when empty)")
		port       = flag.Int("port", 0, "Port to run the server on (overrides the config file)")
		contentDir = flag.String("content-dir", "", "Directory with profile.yaml, posts.yaml and projects.yaml (overrides the config file)")
	)

	flag.Parse()

	if *help {
		fmt.Printf("Go Portfolio - Personal site with filterable blog and project listings\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                                  # Start with built-in content on port 8080\n", os.Args[0])
		fmt.Printf("  %s --config config/portfolio.yaml   # Use a config file\n", os.Args[0])
		fmt.Printf("  %s --port 9000 --content-dir ./cms  # Override port and content\n", os.Args[0])
		return
	}

	if *showVer {
		fmt.Printf("Go Portfolio %s\n", version)
		return
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		settings.HTTP.Port = *port
	}
	if *contentDir != "" {
		settings.Content.Dir = *contentDir
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logpkg.NewLogger(settings.Env, settings.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if err := run(settings, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(settings config.Settings, logger *zap.Logger) error {
	logger.Info("Starting portfolio server",
		zap.String("version", version),
		zap.String("env", settings.Env),
		zap.Int("http_port", settings.HTTP.Port),
		zap.String("content_dir", settings.Content.Dir),
		zap.String("database", settings.Database.Path),
	)

	if settings.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	cnt, err := content.Load(settings.Content.Dir, logger)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	ctx := context.Background()
	db, err := store.Open(ctx, settings.Database.Path, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}()

	promMetrics := metrics.New()

	analyticsService := analytics.NewService(cnt, settings.Analytics.DataFile, logger)
	defer func() {
		if err := analyticsService.Close(); err != nil {
			logger.Warn("Failed to save analytics", zap.Error(err))
		}
	}()

	jobManager := jobs.NewManager(settings.Jobs.MaxWorkers, logger)
	jobManager.SetRecorder(promMetrics)
	jobManager.Start()
	defer jobManager.Stop()

	if settings.Analytics.DataFile != "" {
		jobManager.Every(time.Duration(settings.Analytics.FlushIntervalSec)*time.Second,
			model.JobTypeAnalyticsFlush, "analytics", jobs.AnalyticsFlush(analyticsService))
	}

	if settings.VisitorTrackingEnabled() {
		retention := time.Duration(settings.Privacy.RetentionDays) * 24 * time.Hour
		interval := time.Duration(settings.Privacy.CleanupIntervalHours) * time.Hour
		jobManager.Every(interval, model.JobTypeVisitorCleanup, "retention",
			jobs.VisitorCleanup(db, retention, logger))
		logger.Info("Privacy: visitor tracking enabled with hashed IP addresses",
			zap.Int("retention_days", settings.Privacy.RetentionDays))
	}

	notifier := mail.New(mail.Config{
		Host:     settings.SMTP.Host,
		Port:     settings.SMTP.Port,
		Username: settings.SMTP.Username,
		Password: settings.SMTP.Password,
		From:     settings.SMTP.From,
		To:       settings.SMTP.To,
	}, logger)

	if settings.Admin.Token == "" {
		logger.Warn("ADMIN_TOKEN not set, /admin endpoints are disabled")
	}

	apiHandler := api.NewAPI(api.Dependencies{
		Settings:  settings,
		Content:   cnt,
		Analytics: analyticsService,
		Contacts:  db,
		Visitors:  db,
		Notifier:  notifier,
		Jobs:      jobManager,
		Metrics:   promMetrics,
		Logger:    logger,
		Pinger:    db,
	})
	defer apiHandler.Close()

	router := gin.New()
	router.Use(gin.Recovery())
	if err := router.SetTrustedProxies(settings.HTTP.TrustedProxies); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}
	if err := api.SetupRoutes(router, apiHandler); err != nil {
		return fmt.Errorf("failed to set up routes: %w", err)
	}

	addr := ":" + strconv.Itoa(settings.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(settings.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(settings.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-quit:
		logger.Info("Received shutdown signal")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(settings.HTTP.ShutdownTimeoutSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
	return nil
}
