package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/CareBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/CareBookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/CareBookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/CareBookingService/internal/api/handlers/get_booking"
	getCaregiverBookingsHandler "github.com/m04kA/CareBookingService/internal/api/handlers/get_caregiver_bookings"
	getUserBookingsHandler "github.com/m04kA/CareBookingService/internal/api/handlers/get_user_bookings"
	lessonProgressHandler "github.com/m04kA/CareBookingService/internal/api/handlers/lesson_progress"
	parseAddressHandler "github.com/m04kA/CareBookingService/internal/api/handlers/parse_address"
	updateBookingStatusHandler "github.com/m04kA/CareBookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/CareBookingService/internal/api/middleware"
	"github.com/m04kA/CareBookingService/internal/config"
	bookingRepo "github.com/m04kA/CareBookingService/internal/infra/storage/booking"
	progressStore "github.com/m04kA/CareBookingService/internal/infra/storage/progress"
	caregiverServiceClient "github.com/m04kA/CareBookingService/internal/integrations/caregiverservice"
	"github.com/m04kA/CareBookingService/internal/integrations/gemini"
	addressParseService "github.com/m04kA/CareBookingService/internal/service/addressparse"
	bookingsService "github.com/m04kA/CareBookingService/internal/service/bookings"
	progressService "github.com/m04kA/CareBookingService/internal/service/progress"
	createBookingUC "github.com/m04kA/CareBookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/CareBookingService/internal/usecase/get_availability"
	"github.com/m04kA/CareBookingService/pkg/dbmetrics"
	"github.com/m04kA/CareBookingService/pkg/logger"
	"github.com/m04kA/CareBookingService/pkg/metrics"
	"github.com/m04kA/CareBookingService/pkg/migrations"
	"github.com/m04kA/CareBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting CareBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Availability.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Availability.Timezone, err)
	}

	// Инициализируем метрики (если включены).
	// Выключенные метрики = nil: методы *metrics.Metrics безопасны для nil.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.RunMigrations {
		if err := migrations.Up(db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Хранилище прогресса обучения: Redis или память процесса
	var store progressService.Store
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		store = progressStore.NewRedisStore(rdb, cfg.Redis.KeyPrefix, time.Duration(cfg.Redis.TTLHours)*time.Hour)
		log.Info("Lesson progress stored in redis (addr=%s, prefix=%s)", cfg.Redis.Addr, cfg.Redis.KeyPrefix)
	} else {
		store = progressStore.NewMemoryStore()
		log.Warn("Redis disabled, lesson progress is kept in memory and lost on restart")
	}

	// Инициализируем интеграционных клиентов
	caregiverClient := caregiverServiceClient.NewClient(
		cfg.CaregiverService.URL,
		time.Duration(cfg.CaregiverService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CaregiverService=%s timeout=%ds)",
		cfg.CaregiverService.URL, cfg.CaregiverService.Timeout)

	var addressParser addressParseService.Parser
	if cfg.AddressParser.Enabled {
		geminiClient, err := gemini.NewClient(context.Background(), cfg.AddressParser.APIKey, cfg.AddressParser.Model)
		if err != nil {
			log.Fatal("Failed to create gemini client: %v", err)
		}
		defer geminiClient.Close()

		addressParser = gemini.NewParser(geminiClient, time.Duration(cfg.AddressParser.Timeout)*time.Second)
		log.Info("Address parser enabled (model=%s, threshold=%.2f)",
			cfg.AddressParser.Model, cfg.AddressParser.ConfidenceThreshold)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, caregiverClient, log)
	progressSvc := progressService.NewService(store, log)
	addressSvc := addressParseService.NewService(addressParser, cfg.AddressParser.ConfidenceThreshold, metricsCollector, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		caregiverClient,
		txMgr,
		metricsCollector,
		createBookingUC.Options{Location: location},
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		caregiverClient,
		metricsCollector,
		getAvailabilityUC.Options{
			DefaultHorizonDays:       cfg.Availability.DefaultHorizonDays,
			DefaultSlotDurationHours: cfg.Availability.DefaultSlotDurationHours,
			Location:                 location,
		},
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	validateBooking := createBookingHandler.NewValidateHandler(createBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getCaregiverBookings := getCaregiverBookingsHandler.NewHandler(bookingSvc, log)
	lessonProgress := lessonProgressHandler.NewHandler(progressSvc, log)
	parseAddress := parseAddressHandler.NewHandler(addressSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка слотов сиделки на горизонт
	api.HandleFunc("/caregivers/{caregiverId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/validate", validateBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований заказчика
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Для сиделок ---
	protected.HandleFunc("/caregivers/{caregiverId}/bookings", getCaregiverBookings.Handle).Methods(http.MethodGet)

	// Прогресс обучения
	protected.HandleFunc("/users/{userId}/courses/{courseId}/progress", lessonProgress.Get).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/courses/{courseId}/lessons/complete", lessonProgress.MarkComplete).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/courses/{courseId}/current", lessonProgress.SetCurrent).Methods(http.MethodPut)

	// Распознавание адреса (платный внешний вызов, ограничен по частоте)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	limited := protected.PathPrefix("").Subrouter()
	limited.Use(limiter.Middleware)
	limited.HandleFunc("/addresses/parse", parseAddress.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
