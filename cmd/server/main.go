package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dating-admin/internal/api"
	"dating-admin/internal/auth"
	"dating-admin/internal/blindates"
	"dating-admin/internal/config"
	"dating-admin/internal/dashboard"
	"dating-admin/internal/database"
	"dating-admin/internal/logutils"
	"dating-admin/internal/matches"
	"dating-admin/internal/notifications"
	"dating-admin/internal/reports"
	"dating-admin/internal/storage"
	"dating-admin/internal/users"
	"dating-admin/internal/validation"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		logutils.Log.Warnf("No .env file loaded: %v", err)
	}

	cfg := config.Load()
	logutils.SetLevel(cfg.LogLevel)
	if cfg.IsProduction() {
		logutils.SetJSON()
	}

	if cfg.JWTSecret == "" {
		logutils.Log.Fatal("JWT_SECRET must be set")
	}

	storageBackend, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		logutils.Log.WithError(err).Fatal("Failed to initialize storage")
	}
	storageService := storage.NewStorageService(storageBackend)

	db, err := database.Connect(cfg.DatabaseURL, cfg.LogLevel)
	if err != nil {
		logutils.Log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logutils.Log.WithError(err).Fatal("Failed to run migrations")
	}

	userRepo := users.NewUserRepository(db.DB)
	userService := users.NewUserServiceImpl(userRepo, storageService)
	blindateService := blindates.NewBlindateService(blindates.NewBlindateRepository(db.DB))
	matchService := matches.NewMatchService(matches.NewMatchRepository(db.DB))
	reportService := reports.NewReportService(reports.NewReportRepository(db.DB), reports.NewSafetyReportRepository(db.DB))
	notificationService := notifications.NewNotificationServiceImpl(notifications.NewNotificationRepository(db.DB), userRepo)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanupService := notifications.NewCleanupService(notificationService, cfg.CleanupSchedule, cfg.NotificationMaxAge)
	if err := cleanupService.Start(ctx); err != nil {
		logutils.Log.WithError(err).Fatal("Failed to start cleanup service")
	}

	validationConfig := validation.DefaultValidationConfig()
	validationConfig.MaxPageSize = cfg.MaxPageSize

	router := api.SetupRouter(api.Services{
		Auth:          auth.NewAuthService(auth.NewAdminRepository(db.DB), tokens),
		Users:         userService,
		Blindates:     blindateService,
		Matches:       matchService,
		Reports:       reportService,
		Notifications: notificationService,
		Dashboard:     dashboard.NewDashboardService(userService, matchService, blindateService, reportService, notificationService),
		Photos:        storageService,
	}, api.RouterConfig{
		Validator:      validation.NewAPIValidator(validationConfig, cfg.DefaultPageSize),
		Tokens:         tokens,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Production:     cfg.IsProduction(),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logutils.Log.WithFields(logutils.Fields{
		"port":        cfg.Port,
		"storage":     cfg.Storage.Type,
		"environment": cfg.Environment,
	}).Info("Starting dating-admin API")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logutils.Log.WithError(err).Fatal("Server failed to start")
		}
	case sig := <-quit:
		logutils.Log.Infof("Received signal %v, shutting down...", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logutils.Log.WithError(err).Error("Graceful shutdown failed")
		}
		cleanupService.Stop()
		logutils.Log.Info("Server shutdown complete")
	}
}
