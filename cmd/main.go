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

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/shenikar/storm_route_system/internal/config"
	v1 "github.com/shenikar/storm_route_system/internal/handler/http/v1"
	"github.com/shenikar/storm_route_system/internal/repository"
	"github.com/shenikar/storm_route_system/internal/service"
	"github.com/shenikar/storm_route_system/internal/valhalla"
	"github.com/shenikar/storm_route_system/internal/webhook"
	"github.com/shenikar/storm_route_system/pkg/logger"
	"github.com/shenikar/storm_route_system/pkg/postgres"
	redisclient "github.com/shenikar/storm_route_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/storm_route_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Storm Route System API
// @version 1.0
// @description Emergency road hazard reporting and hazard-avoiding routing API.
// @host localhost:8080
// @BasePath /api
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// buildIncidentStore выбирает хранилище по конфигурации: PostgreSQL, затем
// Redis, иначе in-memory. Постоянные хранилища оборачиваются в fallback на
// память, чтобы отказ бэкенда не ронял приём отчётов.
func buildIncidentStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (service.IncidentStore, func(), error) {
	if cfg.DatabaseURL != "" {
		if err := runMigrations(cfg, log); err != nil {
			return nil, nil, err
		}

		dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		log.Info("Successfully connected to PostgreSQL, using PostGIS incident store")

		store := repository.NewFallbackIncidentStore(
			repository.NewPostgresIncidentStore(dbpool),
			repository.NewMemoryIncidentStore(),
			log,
		)
		return store, dbpool.Close, nil
	}

	if cfg.RedisAddr != "" {
		redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("Successfully connected to Redis, using Redis incident store")

		store := repository.NewFallbackIncidentStore(
			repository.NewRedisIncidentStore(redisClient, log),
			repository.NewMemoryIncidentStore(),
			log,
		)
		return store, func() { redisClient.Close() }, nil
	}

	log.Info("No persistent storage configured, using in-memory incident store")
	return repository.NewMemoryIncidentStore(), func() {}, nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Выбор хранилища инцидентов
	store, closeStore, err := buildIncidentStore(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize incident store: %v", err)
	}
	defer closeStore()

	// Доставка событий о препятствиях работает только при настроенном Redis
	var hazardPublisher webhook.HazardPublisher
	if cfg.RedisAddr != "" && cfg.WebhookURL != "" {
		redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis for hazard events: %v", err)
		}
		defer redisClient.Close()

		hazardPublisher = webhook.NewRedisHazardPublisher(redisClient)
		webhook.NewHazardWorker(redisClient, log, cfg).Start(ctx)
	}

	// Инициализация сервисов
	incidentService := service.NewIncidentService(store, log, cfg, hazardPublisher)
	routeClient := valhalla.NewClient(cfg.ValhallaURL, cfg.ValhallaTimeout, cfg.ValhallaMinInterval, log)
	routeService := service.NewRouteService(incidentService, routeClient, log)

	// Фоновая очистка старых инцидентов, если включена
	if cfg.CleanupMaxAgeHours > 0 {
		go func() {
			maxAge := time.Duration(cfg.CleanupMaxAgeHours) * time.Hour
			ticker := time.NewTicker(cfg.CleanupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if _, err := incidentService.CleanupOldIncidents(ctx, maxAge); err != nil {
						log.WithError(err).Error("Background incident cleanup failed")
					}
				}
			}
		}()
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(incidentService, routeService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
