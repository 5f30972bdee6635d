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
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	changeBookingStatusHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/change_booking_status"
	createBookingHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/create_booking"
	createPublicBookingHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/create_public_booking"
	deleteBookingHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_booking"
	getBookingInvoiceHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_booking_invoice"
	getStaffCommissionHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_staff_commission"
	getStudioConfigHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_studio_config"
	getTaxReportHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_tax_report"
	listBookingsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/list_bookings"
	manageCatalogHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/manage_catalog"
	payoutCommissionHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/payout_commission"
	rescheduleBookingHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/reschedule_booking"
	settleBookingHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/settle_booking"
	streamSnapshotsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/stream_snapshots"
	transferFundsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/transfer_funds"
	updateStudioConfigHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/update_studio_config"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioService/internal/config"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/infra/snapshot"
	accountRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/account"
	automationRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/automation"
	bookingRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/booking"
	clientRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/client"
	roomRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/room"
	staffRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/staff"
	studioConfigRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/studioconfig"
	packageRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/studiopackage"
	transactionRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/transaction"
	bookingsService "github.com/m04kA/SMC-StudioService/internal/service/bookings"
	bookingModels "github.com/m04kA/SMC-StudioService/internal/service/bookings/models"
	catalogService "github.com/m04kA/SMC-StudioService/internal/service/catalog"
	studioConfigService "github.com/m04kA/SMC-StudioService/internal/service/studioconfig"
	changeBookingStatusUC "github.com/m04kA/SMC-StudioService/internal/usecase/change_booking_status"
	createBookingUC "github.com/m04kA/SMC-StudioService/internal/usecase/create_booking"
	createPublicBookingUC "github.com/m04kA/SMC-StudioService/internal/usecase/create_public_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-StudioService/internal/usecase/get_available_slots"
	getBookingInvoiceUC "github.com/m04kA/SMC-StudioService/internal/usecase/get_booking_invoice"
	getStaffCommissionUC "github.com/m04kA/SMC-StudioService/internal/usecase/get_staff_commission"
	getTaxReportUC "github.com/m04kA/SMC-StudioService/internal/usecase/get_tax_report"
	payoutCommissionUC "github.com/m04kA/SMC-StudioService/internal/usecase/payout_commission"
	rescheduleBookingUC "github.com/m04kA/SMC-StudioService/internal/usecase/reschedule_booking"
	settleBookingUC "github.com/m04kA/SMC-StudioService/internal/usecase/settle_booking"
	transferFundsUC "github.com/m04kA/SMC-StudioService/internal/usecase/transfer_funds"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/logger"
	"github.com/m04kA/SMC-StudioService/pkg/metrics"
	"github.com/m04kA/SMC-StudioService/pkg/txmanager"
)

// calendarWindowDays сколько прошедших дней попадает в снимок календаря
const calendarWindowDays = 7

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

	log.Info("Starting SMC-StudioService...")

	studioDefaults, err := cfg.Studio.Resolve()
	if err != nil {
		log.Fatal("Invalid [studio] section: %v", err)
	}

	// Метрики: nil-коллектор безопасен, все Observe* становятся no-op
	var metricsCollector *metrics.Metrics
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stopMetricsCh := make(chan struct{})
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	rooms := roomRepo.NewRepository(wrappedDB)
	packages := packageRepo.NewRepository(wrappedDB)
	clients := clientRepo.NewRepository(wrappedDB)
	staff := staffRepo.NewRepository(wrappedDB)
	accounts := accountRepo.NewRepository(wrappedDB)
	rules := automationRepo.NewRepository(wrappedDB)
	bookings := bookingRepo.NewRepository(wrappedDB)
	transactions := transactionRepo.NewRepository(wrappedDB)
	studioConfigs := studioConfigRepo.NewRepository(wrappedDB)

	// Сервисы
	configSvc := studioConfigService.NewService(studioConfigs, rooms, studioDefaults, log)
	bookingSvc := bookingsService.NewService(bookings, log)
	catalogSvc := catalogService.NewService(catalogService.Repositories{
		Rooms:        rooms,
		Packages:     packages,
		Clients:      clients,
		Staff:        staff,
		Accounts:     accounts,
		Rules:        rules,
		Bookings:     bookings,
		Transactions: transactions,
	}, txMgr, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookings, rooms, packages, clients, staff, configSvc, txMgr, metricsCollector, log,
	)
	createPublicBookingUseCase := createPublicBookingUC.NewUseCase(
		bookings, rooms, packages, clients, configSvc, txMgr, metricsCollector, log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(bookings, rooms, configSvc, log)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(bookings, rooms, txMgr, metricsCollector, log)
	changeBookingStatusUseCase := changeBookingStatusUC.NewUseCase(bookings, rules, txMgr, log)
	getBookingInvoiceUseCase := getBookingInvoiceUC.NewUseCase(bookings, transactions, configSvc, log)
	settleBookingUseCase := settleBookingUC.NewUseCase(
		bookings, accounts, transactions, configSvc, txMgr, metricsCollector, log,
	)
	transferFundsUseCase := transferFundsUC.NewUseCase(accounts, transactions, txMgr, log)
	getStaffCommissionUseCase := getStaffCommissionUC.NewUseCase(staff, bookings, log)
	payoutCommissionUseCase := payoutCommissionUC.NewUseCase(
		getStaffCommissionUseCase, accounts, transactions, txMgr, log,
	)
	getTaxReportUseCase := getTaxReportUC.NewUseCase(transactions, configSvc, log)

	// Снимки коллекций для календаря и кассы
	ctx, stopFeeds := context.WithCancel(context.Background())
	defer stopFeeds()

	dispatcher := newDispatcher(ctx, cfg, bookings, accounts, transactions, log)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createPublicBooking := createPublicBookingHandler.NewHandler(createPublicBookingUseCase, log)
	publicSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, domain.AudiencePublic, log)
	calendarSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, domain.AudienceInternal, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	changeBookingStatus := changeBookingStatusHandler.NewHandler(changeBookingStatusUseCase, log)
	getBookingInvoice := getBookingInvoiceHandler.NewHandler(getBookingInvoiceUseCase, log)
	settleBooking := settleBookingHandler.NewHandler(settleBookingUseCase, log)
	transferFunds := transferFundsHandler.NewHandler(transferFundsUseCase, log)
	getStaffCommission := getStaffCommissionHandler.NewHandler(getStaffCommissionUseCase, log)
	payoutCommission := payoutCommissionHandler.NewHandler(payoutCommissionUseCase, log)
	getTaxReport := getTaxReportHandler.NewHandler(getTaxReportUseCase, log)
	manageCatalog := manageCatalogHandler.NewHandler(catalogSvc, log)
	getStudioConfig := getStudioConfigHandler.NewHandler(configSvc, log)
	updateStudioConfig := updateStudioConfigHandler.NewHandler(configSvc, log)
	streamSnapshots := streamSnapshotsHandler.NewHandler(dispatcher, streamSnapshotsHandler.Options{
		PingPeriod:     time.Duration(cfg.Snapshots.PingPeriod) * time.Second,
		AllowedOrigins: cfg.Snapshots.AllowedOrigins,
		Context:        ctx,
	}, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты для клиентов (публичная сетка)
	api.HandleFunc("/rooms/{roomId}/available-slots", publicSlots.Handle).Methods(http.MethodGet)

	// Заявка с сайта
	api.HandleFunc("/public/bookings", createPublicBooking.Handle).Methods(http.MethodPost)

	// Итоговая конфигурация студии или зала
	api.HandleFunc("/studio/config", getStudioConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/schedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", changeBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/invoice", getBookingInvoice.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/settlements", settleBooking.Handle).Methods(http.MethodPost)

	// Внутренняя сетка календаря
	protected.HandleFunc("/rooms/{roomId}/calendar-slots", calendarSlots.Handle).Methods(http.MethodGet)

	// --- Финансы ---
	protected.HandleFunc("/accounts/transfers", transferFunds.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/staff/{staffId}/commission", getStaffCommission.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/staff/{staffId}/payouts", payoutCommission.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reports/tax", getTaxReport.Handle).Methods(http.MethodGet)

	// --- Конфигурация ---
	protected.HandleFunc("/studio/config", updateStudioConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/studio/config/levels", getStudioConfig.HandleLevels).Methods(http.MethodGet)
	protected.HandleFunc("/studio/config/rooms/{roomId}", updateStudioConfig.HandleDeleteOverride).Methods(http.MethodDelete)

	// --- Подписки ---
	protected.HandleFunc("/stream/{collection}", streamSnapshots.Handle).Methods(http.MethodGet)

	// --- Справочники ---
	// Коллекции перечислены явно, чтобы не перехватывать /bookings/{id}
	const collection = "/{collection:rooms|packages|clients|staff|accounts|automation-rules}"
	protected.HandleFunc(collection, manageCatalog.Create).Methods(http.MethodPost)
	protected.HandleFunc(collection, manageCatalog.List).Methods(http.MethodGet)
	protected.HandleFunc(collection+"/{id}", manageCatalog.Delete).Methods(http.MethodDelete)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// WebSocket подписчики получают close frame
	stopFeeds()

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

// newDispatcher регистрирует коллекции и запускает LISTEN
// При выключенных снимках диспетчер без уведомлений: каждая подписка перечитывает коллекцию и отдает состояние на момент подключения
func newDispatcher(
	ctx context.Context,
	cfg *config.Config,
	bookings *bookingRepo.Repository,
	accounts *accountRepo.Repository,
	transactions *transactionRepo.Repository,
	log *logger.Logger,
) *snapshot.Dispatcher {
	bookingFeed := snapshot.NewCollection[bookingModels.BookingResponse]("bookings",
		func(ctx context.Context) ([]bookingModels.BookingResponse, error) {
			from := time.Now().UTC().AddDate(0, 0, -calendarWindowDays)
			list, err := bookings.List(ctx, domain.BookingsFilter{StartDate: &from})
			if err != nil {
				return nil, err
			}
			return bookingModels.FromDomainBookingList(list).Bookings, nil
		}, log)

	accountFeed := snapshot.NewCollection[*handlers.AccountView]("accounts",
		func(ctx context.Context) ([]*handlers.AccountView, error) {
			list, err := accounts.List(ctx)
			if err != nil {
				return nil, err
			}
			views := make([]*handlers.AccountView, 0, len(list))
			for _, a := range list {
				views = append(views, handlers.NewAccountView(a))
			}
			return views, nil
		}, log)

	transactionFeed := snapshot.NewCollection[handlers.TransactionView]("transactions",
		func(ctx context.Context) ([]handlers.TransactionView, error) {
			from := time.Now().UTC().AddDate(0, 0, -calendarWindowDays)
			list, err := transactions.List(ctx, domain.TransactionsFilter{From: &from})
			if err != nil {
				return nil, err
			}
			return handlers.NewTransactionViews(list), nil
		}, log)

	if !cfg.Snapshots.Enabled {
		log.Info("Snapshot notifications disabled")
		return snapshot.NewDispatcher(nil, log, bookingFeed, accountFeed, transactionFeed)
	}

	minReconnect, maxReconnect := cfg.Snapshots.ReconnectIntervals()
	listener := pq.NewListener(cfg.Database.DSN(), minReconnect, maxReconnect,
		func(event pq.ListenerEventType, err error) {
			if err != nil {
				log.Warn("Snapshot listener event=%d: %v", event, err)
			}
		})
	if err := listener.Listen(cfg.Snapshots.Channel); err != nil {
		log.Fatal("Failed to LISTEN %s: %v", cfg.Snapshots.Channel, err)
	}

	dispatcher := snapshot.NewDispatcher(listener, log, bookingFeed, accountFeed, transactionFeed)
	go func() {
		defer listener.Close()
		if err := dispatcher.Run(ctx); err != nil && err != context.Canceled {
			log.Error("Snapshot dispatcher stopped: %v", err)
		}
	}()
	log.Info("Snapshot feeds listening on channel %s", cfg.Snapshots.Channel)

	return dispatcher
}
