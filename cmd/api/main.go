package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	deliveryHTTP "github.com/frontandrew/vmaster/internal/delivery/http"
	"github.com/frontandrew/vmaster/internal/infrastructure/fuelprice"
	"github.com/frontandrew/vmaster/internal/pkg/config"
	"github.com/frontandrew/vmaster/internal/pkg/database"
	"github.com/frontandrew/vmaster/internal/pkg/jwt"
	"github.com/frontandrew/vmaster/internal/pkg/logger"
	"github.com/frontandrew/vmaster/internal/pkg/redis"
	"github.com/frontandrew/vmaster/internal/repository"
	"github.com/frontandrew/vmaster/internal/repository/cached"
	"github.com/frontandrew/vmaster/internal/repository/postgres"
	"github.com/frontandrew/vmaster/internal/usecase/auth"
	"github.com/frontandrew/vmaster/internal/usecase/consumable"
	"github.com/frontandrew/vmaster/internal/usecase/costing"
	"github.com/frontandrew/vmaster/internal/usecase/maintenance"
	"github.com/frontandrew/vmaster/internal/usecase/servicelog"
	"github.com/frontandrew/vmaster/internal/usecase/settings"
	"github.com/frontandrew/vmaster/internal/usecase/vehicle"
)

func main() {
	// =========================================================================
	// Загрузка конфигурации
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Инициализация logger
	// =========================================================================

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output)
	log.Info("Starting VMaster API server", map[string]interface{}{
		"version": "1.0.0",
	})

	// =========================================================================
	// Подключение к PostgreSQL и миграции
	// =========================================================================

	ctx := context.Background()
	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer database.Close(db)

	log.Info("Connected to PostgreSQL", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Database,
	})

	if err := database.Migrate(ctx, db, log); err != nil {
		log.Fatal("Failed to run migrations", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// =========================================================================
	// Подключение к Redis
	// =========================================================================

	redisClient, err := redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer redisClient.Close()

	log.Info("Connected to Redis", map[string]interface{}{
		"host": cfg.Redis.Host,
		"port": cfg.Redis.Port,
	})

	// =========================================================================
	// Создание repositories
	// =========================================================================

	userRepo := postgres.NewUserRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	consumableRepo := postgres.NewConsumableRepository(db)
	serviceLogRepo := postgres.NewServiceLogRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)

	// Настройки читаются при каждом расчете стоимости - кэшируем через Redis
	var settingRepo repository.SettingRepository = cached.NewSettingRepository(
		postgres.NewSettingRepository(db),
		redisClient,
	)

	log.Info("Repositories initialized")

	// =========================================================================
	// Создание клиента цен на топливо
	// =========================================================================

	priceClient := fuelprice.NewHTTPClient(cfg.FuelPrice.SourceURL, cfg.FuelPrice.Timeout)

	// =========================================================================
	// Создание JWT token service
	// =========================================================================

	tokenService := jwt.NewTokenService(
		cfg.JWT.SecretKey,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	log.Info("JWT token service initialized")

	// =========================================================================
	// Создание use case services
	// =========================================================================

	authService := auth.NewService(userRepo, refreshTokenRepo, tokenService, log)
	vehicleService := vehicle.NewService(vehicleRepo, log)
	consumableService := consumable.NewService(consumableRepo, vehicleRepo, log)
	serviceLogService := servicelog.NewService(serviceLogRepo, vehicleRepo, log)
	costingService := costing.NewService(vehicleRepo, consumableRepo, settingRepo, log)
	maintenanceService := maintenance.NewService(vehicleRepo, consumableRepo, log)
	settingsService := settings.NewService(settingRepo, priceClient, log)

	log.Info("Use case services initialized")

	// =========================================================================
	// Первичное обновление цен на топливо
	// =========================================================================

	// Ошибка не фатальна: расчеты используют сохраненные цены
	// или цену по умолчанию, пока поставщик недоступен
	if _, err := settingsService.RefreshFuelPrices(ctx); err != nil {
		log.Warn("Initial fuel price refresh failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// =========================================================================
	// Создание HTTP handlers
	// =========================================================================

	authHandler := deliveryHTTP.NewAuthHandler(authService, log)
	vehicleHandler := deliveryHTTP.NewVehicleHandler(vehicleService, log)
	consumableHandler := deliveryHTTP.NewConsumableHandler(consumableService, vehicleService, log)
	serviceLogHandler := deliveryHTTP.NewServiceLogHandler(serviceLogService, vehicleService, log)
	analysisHandler := deliveryHTTP.NewAnalysisHandler(costingService, maintenanceService, vehicleService, log)
	settingsHandler := deliveryHTTP.NewSettingsHandler(settingsService, log)
	uploadHandler := deliveryHTTP.NewUploadHandler(&cfg.Upload, log)

	log.Info("HTTP handlers initialized")

	// =========================================================================
	// Создание и настройка HTTP router
	// =========================================================================

	router := deliveryHTTP.NewRouter(
		authHandler,
		vehicleHandler,
		consumableHandler,
		serviceLogHandler,
		analysisHandler,
		settingsHandler,
		uploadHandler,
		tokenService,
		cfg,
		log,
	)

	handler := router.Setup()

	log.Info("HTTP router configured")

	// =========================================================================
	// Создание HTTP сервера
	// =========================================================================

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// =========================================================================
	// Запуск сервера в goroutine
	// =========================================================================

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("API server listening", map[string]interface{}{
			"address": srv.Addr,
		})
		serverErrors <- srv.ListenAndServe()
	}()

	// =========================================================================
	// Graceful shutdown
	// =========================================================================

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatal("Server error", map[string]interface{}{
			"error": err.Error(),
		})

	case sig := <-shutdown:
		log.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})

			if err := srv.Close(); err != nil {
				log.Fatal("Failed to close server", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		log.Info("Server stopped gracefully")
	}
}
