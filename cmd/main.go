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
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/m04kA/UCA-AdvisoryService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/UCA-AdvisoryService/internal/api/handlers/create_appointment"
	deleteAvailabilityHandler "github.com/m04kA/UCA-AdvisoryService/internal/api/handlers/delete_availability"
	getAdvisorAppointmentsHandler "github.com/m04kA/UCA-AdvisoryService/internal/api/handlers/get_advisor_appointments"
	getAppointmentHandler "github.com/m04kA/UCA-AdvisoryService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/UCA-AdvisoryService/internal/api/handlers/get_available_slots"
	getStudentAppointmentsHandler "github.com/m04kA/UCA-AdvisoryService/internal/api/handlers/get_student_appointments"
	listAvailabilityHandler "github.com/m04kA/UCA-AdvisoryService/internal/api/handlers/list_availability"
	toggleAvailabilityHandler "github.com/m04kA/UCA-AdvisoryService/internal/api/handlers/toggle_availability"
	updateAppointmentStatusHandler "github.com/m04kA/UCA-AdvisoryService/internal/api/handlers/update_appointment_status"
	upsertAvailabilityHandler "github.com/m04kA/UCA-AdvisoryService/internal/api/handlers/upsert_availability"
	"github.com/m04kA/UCA-AdvisoryService/internal/api/middleware"
	"github.com/m04kA/UCA-AdvisoryService/internal/config"
	"github.com/m04kA/UCA-AdvisoryService/internal/events"
	appointmentRepo "github.com/m04kA/UCA-AdvisoryService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/UCA-AdvisoryService/internal/infra/storage/availability"
	profileServiceClient "github.com/m04kA/UCA-AdvisoryService/internal/integrations/profileservice"
	appointmentsService "github.com/m04kA/UCA-AdvisoryService/internal/service/appointments"
	availabilityService "github.com/m04kA/UCA-AdvisoryService/internal/service/availability"
	createAppointmentUC "github.com/m04kA/UCA-AdvisoryService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/UCA-AdvisoryService/internal/usecase/get_available_slots"
	"github.com/m04kA/UCA-AdvisoryService/pkg/dbmetrics"
	"github.com/m04kA/UCA-AdvisoryService/pkg/logger"
	"github.com/m04kA/UCA-AdvisoryService/pkg/metrics"
	"github.com/m04kA/UCA-AdvisoryService/pkg/simpletxmanager"
	"github.com/m04kA/UCA-AdvisoryService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting UCA-AdvisoryService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Применяем миграции (если включено)
	if cfg.Database.Migrate {
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatal("Failed to set goose dialect: %v", err)
		}
		if err := goose.Up(db, cfg.Database.MigrationsDir); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied from %s", cfg.Database.MigrationsDir)
	}

	// Инициализируем клиента ProfileService
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ProfileService=%s timeout=%ds)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout)

	// Шина доменных событий с логирующим подписчиком
	eventBus := events.NewBus()
	unsubscribe := eventBus.Subscribe(func(event events.AppointmentEvent) {
		log.Info("Domain event: type=%s, appointment_id=%d, status=%s",
			event.Type, event.Appointment.ID, event.Appointment.Status)
	})
	defer unsubscribe()

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		appointmentRepository  *appointmentRepo.Repository
		availabilityRepository *availabilityRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		profileClient,
		eventBus,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		profileClient,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		profileClient,
		txMgr,
		eventBus,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityRepository,
		appointmentRepository,
		profileClient,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getStudentAppointments := getStudentAppointmentsHandler.NewHandler(appointmentSvc, log)
	getAdvisorAppointments := getAdvisorAppointmentsHandler.NewHandler(appointmentSvc, log)
	listAvailability := listAvailabilityHandler.NewHandler(availabilitySvc, log)
	upsertAvailability := upsertAvailabilityHandler.NewHandler(availabilitySvc, log)
	toggleAvailability := toggleAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (аутентификация опциональна)
	// ============================================================

	// X-User-ID на публичных маршрутах учитывается, но не обязателен:
	// со своим ID студент видит пометку isOwnBooking на занятом им слоте
	api.Use(middleware.OptionalAuth)

	// Слоты советника на дату
	api.HandleFunc("/advisors/{advisorId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Окна доступности советника
	api.HandleFunc("/advisors/{advisorId}/availability",
		listAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на консультации ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Обновление статуса записи (советник: подтверждение, завершение)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// История записей студента
	protected.HandleFunc("/students/{studentId}/appointments", getStudentAppointments.Handle).Methods(http.MethodGet)

	// Расписание советника
	protected.HandleFunc("/advisors/{advisorId}/appointments", getAdvisorAppointments.Handle).Methods(http.MethodGet)

	// --- Управление доступностью (для советников) ---
	// Создание/обновление окна доступности
	protected.HandleFunc("/advisors/{advisorId}/availability", upsertAvailability.Handle).Methods(http.MethodPost)

	// Включение/отключение окна
	protected.HandleFunc("/availability/{windowId}", toggleAvailability.Handle).Methods(http.MethodPatch)

	// Удаление окна
	protected.HandleFunc("/availability/{windowId}", deleteAvailability.Handle).Methods(http.MethodDelete)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
