package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sgce/sports-competition-system/config"
	"github.com/sgce/sports-competition-system/db"
	"github.com/sgce/sports-competition-system/engine"
	"github.com/sgce/sports-competition-system/handlers"
	"github.com/sgce/sports-competition-system/repositories"
	"github.com/sgce/sports-competition-system/routes"
	"github.com/sgce/sports-competition-system/services"
	"github.com/sgce/sports-competition-system/storage"
)

const schedulerInterval = 30 * time.Second // How often the scheduler runs

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Инициализация загрузчика файлов (Cloudflare R2)
	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	competitionRepo := repositories.NewPostgresCompetitionRepository(dbConn)
	registrationRepo := repositories.NewPostgresRegistrationRepository(dbConn)
	gameRepo := repositories.NewPostgresGameRepository(dbConn)
	standingRepo := repositories.NewPostgresStandingRepository(dbConn)
	disciplineRepo := repositories.NewPostgresDisciplineRepository(dbConn)
	logger.Info("repositories initialized")

	// Реестр генераторов сеток
	registry := engine.NewRegistry()

	// Инициализация сервисов
	authService := services.NewAuthService(userRepo)
	teamService := services.NewTeamService(teamRepo, uploader)
	playerService := services.NewPlayerService(playerRepo, teamRepo)
	competitionService := services.NewCompetitionService(
		dbConn,
		competitionRepo,
		registrationRepo,
		teamRepo,
		gameRepo,
		standingRepo,
		registry,
		logger,
	)
	gameService := services.NewGameService(gameRepo, competitionRepo, competitionService, logger)
	disciplineService := services.NewDisciplineService(disciplineRepo, competitionRepo, playerRepo, logger)
	dashboardService := services.NewDashboardService(teamRepo, competitionRepo, gameRepo)
	reportService := services.NewReportService(competitionRepo, registrationRepo, standingRepo, uploader, logger)
	logger.Info("services initialized")

	// Планировщик автоматической смены статусов соревнований по датам
	go func() {
		ticker := time.NewTicker(schedulerInterval)
		defer ticker.Stop()
		logger.Info("competition status scheduler started", slog.Duration("interval", schedulerInterval))

		// Run once immediately at startup, then on ticker
		if err := competitionService.AutoUpdateStatusesByDates(context.Background()); err != nil {
			logger.Error("scheduler: initial run failed", slog.Any("error", err))
		}

		for range ticker.C {
			if err := competitionService.AutoUpdateStatusesByDates(context.Background()); err != nil {
				logger.Error("scheduler: periodic run failed", slog.Any("error", err))
			}
		}
	}()

	// Инициализация обработчиков HTTP
	router := routes.SetupRoutes(routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Team:        handlers.NewTeamHandler(teamService),
		Player:      handlers.NewPlayerHandler(playerService),
		Competition: handlers.NewCompetitionHandler(competitionService),
		Game:        handlers.NewGameHandler(gameService),
		Discipline:  handlers.NewDisciplineHandler(disciplineService),
		Dashboard:   handlers.NewDashboardHandler(dashboardService),
		Report:      handlers.NewReportHandler(reportService),
	}, cfg.JWTSecretKey)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
