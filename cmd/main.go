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

	bookLessonHandler "github.com/m04kA/ADS-SchedulingService/internal/api/handlers/book_lesson"
	cancelLessonHandler "github.com/m04kA/ADS-SchedulingService/internal/api/handlers/cancel_lesson"
	changeInstructorHandler "github.com/m04kA/ADS-SchedulingService/internal/api/handlers/change_instructor"
	completeLessonHandler "github.com/m04kA/ADS-SchedulingService/internal/api/handlers/complete_lesson"
	confirmLessonHandler "github.com/m04kA/ADS-SchedulingService/internal/api/handlers/confirm_lesson"
	createSlotHandler "github.com/m04kA/ADS-SchedulingService/internal/api/handlers/create_slot"
	deleteSlotHandler "github.com/m04kA/ADS-SchedulingService/internal/api/handlers/delete_slot"
	getAvailableSlotsHandler "github.com/m04kA/ADS-SchedulingService/internal/api/handlers/get_available_slots"
	getBalanceHandler "github.com/m04kA/ADS-SchedulingService/internal/api/handlers/get_balance"
	getInstructorSlotsHandler "github.com/m04kA/ADS-SchedulingService/internal/api/handlers/get_instructor_slots"
	getLessonHandler "github.com/m04kA/ADS-SchedulingService/internal/api/handlers/get_lesson"
	getStudentInstructorHandler "github.com/m04kA/ADS-SchedulingService/internal/api/handlers/get_student_instructor"
	getStudentLessonsHandler "github.com/m04kA/ADS-SchedulingService/internal/api/handlers/get_student_lessons"
	rejectLessonHandler "github.com/m04kA/ADS-SchedulingService/internal/api/handlers/reject_lesson"
	"github.com/m04kA/ADS-SchedulingService/internal/api/middleware"
	"github.com/m04kA/ADS-SchedulingService/internal/app"
	"github.com/m04kA/ADS-SchedulingService/internal/config"
	assignmentRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/assignment"
	balanceRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/balance"
	lessonRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/lesson"
	settingsRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/settings"
	slotRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/slot"
	assignmentsService "github.com/m04kA/ADS-SchedulingService/internal/service/assignments"
	lessonsService "github.com/m04kA/ADS-SchedulingService/internal/service/lessons"
	slotsService "github.com/m04kA/ADS-SchedulingService/internal/service/slots"
	studentsService "github.com/m04kA/ADS-SchedulingService/internal/service/students"
	bookLessonUC "github.com/m04kA/ADS-SchedulingService/internal/usecase/book_lesson"
	getAvailableSlotsUC "github.com/m04kA/ADS-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/ADS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/ADS-SchedulingService/pkg/logger"
	"github.com/m04kA/ADS-SchedulingService/pkg/metrics"
	"github.com/m04kA/ADS-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/ADS-SchedulingService/pkg/txmanager"
)

const migrationsDir = "migrations"

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

	log.Info("Starting ADS-SchedulingService...")
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

	// Применяем миграции
	migrator, err := app.NewMigrator(db, migrationsDir)
	if err != nil {
		log.Fatal("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	if version, err := migrator.Version(context.Background()); err == nil {
		log.Info("Database migrations applied, version=%d", version)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository       *slotRepo.Repository
		lessonRepository     *lessonRepo.Repository
		balanceRepository    *balanceRepo.Repository
		assignmentRepository *assignmentRepo.Repository
		settingsRepository   *settingsRepo.Repository
	)

	// Интерфейс transaction manager, общий для обеих реализаций
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		lessonRepository = lessonRepo.NewRepository(wrappedDB)
		balanceRepository = balanceRepo.NewRepository(wrappedDB)
		assignmentRepository = assignmentRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		lessonRepository = lessonRepo.NewRepository(db)
		balanceRepository = balanceRepo.NewRepository(db)
		assignmentRepository = assignmentRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	lessonSvc := lessonsService.NewService(
		lessonRepository,
		slotRepository,
		balanceRepository,
		txMgr,
		cfg.Booking.CancellationCutoffHours,
		log,
	)
	assignmentSvc := assignmentsService.NewService(assignmentRepository, txMgr, log)
	studentSvc := studentsService.NewService(balanceRepository, log)
	slotSvc := slotsService.NewService(slotRepository, lessonRepository, txMgr, log)

	// Инициализируем use cases
	bookLessonUseCase := bookLessonUC.NewUseCase(
		slotRepository,
		lessonRepository,
		balanceRepository,
		assignmentRepository,
		settingsRepository,
		txMgr,
		cfg.Booking.MinAdvanceHours,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotRepository,
		assignmentRepository,
		settingsRepository,
		cfg.Booking.MinAdvanceHours,
		cfg.Booking.LookaheadDays,
		log,
	)

	// Инициализируем handlers
	bookLesson := bookLessonHandler.NewHandler(bookLessonUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getLesson := getLessonHandler.NewHandler(lessonSvc, log)
	cancelLesson := cancelLessonHandler.NewHandler(lessonSvc, log)
	confirmLesson := confirmLessonHandler.NewHandler(lessonSvc, log)
	rejectLesson := rejectLessonHandler.NewHandler(lessonSvc, log)
	completeLesson := completeLessonHandler.NewHandler(lessonSvc, log)
	getStudentLessons := getStudentLessonsHandler.NewHandler(lessonSvc, log)
	getBalance := getBalanceHandler.NewHandler(studentSvc, log)
	getStudentInstructor := getStudentInstructorHandler.NewHandler(assignmentSvc, log)
	changeInstructor := changeInstructorHandler.NewHandler(assignmentSvc, log)
	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	getInstructorSlots := getInstructorSlotsHandler.NewHandler(slotSvc, log)

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

	// API prefix; все маршруты требуют X-User-ID header
	api := r.PathPrefix("/api/v1").Subrouter()
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Занятия ---
	// Бронирование занятия
	protected.HandleFunc("/lessons", bookLesson.Handle).Methods(http.MethodPost)

	// Получение занятия по ID
	protected.HandleFunc("/lessons/{lessonId}", getLesson.Handle).Methods(http.MethodGet)

	// Отмена занятия студентом
	protected.HandleFunc("/lessons/{lessonId}/cancel", cancelLesson.Handle).Methods(http.MethodPatch)

	// Подтверждение занятия инструктором
	protected.HandleFunc("/lessons/{lessonId}/confirm", confirmLesson.Handle).Methods(http.MethodPatch)

	// Отклонение занятия инструктором
	protected.HandleFunc("/lessons/{lessonId}/reject", rejectLesson.Handle).Methods(http.MethodPatch)

	// Завершение занятия инструктором
	protected.HandleFunc("/lessons/{lessonId}/complete", completeLesson.Handle).Methods(http.MethodPatch)

	// --- Студенты ---
	// Доступные слоты закрепленного инструктора
	protected.HandleFunc("/students/{studentId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// История занятий студента
	protected.HandleFunc("/students/{studentId}/lessons", getStudentLessons.Handle).Methods(http.MethodGet)

	// Баланс вождения студента
	protected.HandleFunc("/students/{studentId}/balance", getBalance.Handle).Methods(http.MethodGet)

	// Закрепленный инструктор студента
	protected.HandleFunc("/students/{studentId}/instructor", getStudentInstructor.Handle).Methods(http.MethodGet)

	// Смена инструктора
	protected.HandleFunc("/students/{studentId}/instructor", changeInstructor.Handle).Methods(http.MethodPut)

	// --- Слоты доступности (для инструкторов) ---
	// Создание слота
	protected.HandleFunc("/availability-slots", createSlot.Handle).Methods(http.MethodPost)

	// Удаление слота
	protected.HandleFunc("/availability-slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

	// Календарь слотов инструктора
	protected.HandleFunc("/instructors/{instructorId}/availability-slots", getInstructorSlots.Handle).Methods(http.MethodGet)

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
