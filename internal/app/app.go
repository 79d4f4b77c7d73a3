package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/Myself7802/aatmiya-sabha-form/internal/config"
	"github.com/Myself7802/aatmiya-sabha-form/internal/database"
	"github.com/Myself7802/aatmiya-sabha-form/internal/delivery/httpd"
	requestlog "github.com/Myself7802/aatmiya-sabha-form/internal/middleware"
	"github.com/Myself7802/aatmiya-sabha-form/internal/repository"
	"github.com/Myself7802/aatmiya-sabha-form/internal/service"
	"github.com/Myself7802/aatmiya-sabha-form/internal/service/integration"
	"github.com/Myself7802/aatmiya-sabha-form/internal/sheet"
	"github.com/Myself7802/aatmiya-sabha-form/internal/worker"
)

type App struct {
	server    *http.Server
	logger    zerolog.Logger
	config    *config.Config
	db        *sql.DB
	publisher integration.EventPublisher
	scheduler *worker.Scheduler
}

type stores struct {
	references  repository.ReferenceRepository
	submissions repository.SubmissionRepository
	pinger      httpd.Pinger
	db          *sql.DB
}

func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	// Создаем хранилища
	st, err := newStores(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	// Создаем интеграционные клиенты
	var publisher integration.EventPublisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = integration.NewRabbitMQPublisher(
			cfg.RabbitMQ.URL,
			cfg.RabbitMQ.Exchange,
			cfg.RabbitMQ.RoutingKey,
			log,
		)
		if err != nil {
			// Заявки пишутся и без событий
			log.Error().Err(err).Msg("Failed to create RabbitMQ client")
			publisher = nil
		}
	}

	var storage integration.ObjectStorage
	if cfg.Export.Enabled {
		storage, err = integration.NewMinIOStorage(
			cfg.Export.Endpoint,
			cfg.Export.AccessKey,
			cfg.Export.SecretKey,
			cfg.Export.Bucket,
			cfg.Export.Region,
			cfg.Export.UseSSL,
			log,
		)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Admin.Passphrase == "" {
		log.Warn().Msg("Admin passphrase is empty, admin views are disabled")
	}

	// Создаем сервисы
	referenceService := service.NewReferenceService(st.references, cfg.Reference.CacheTTL, log)
	submissionService := service.NewSubmissionService(st.submissions, publisher, log)
	workflowService := service.NewWorkflowService(referenceService, submissionService, log)
	adminService := service.NewAdminService(cfg.Admin.Passphrase, referenceService, submissionService, log)
	exportService := service.NewExportService(adminService, storage, cfg.Export.Prefix, log)
	sessionService := service.NewSessionService(
		service.NewSessionStore(),
		workflowService,
		adminService,
		cfg.Session.IdleTimeout,
		log,
	)

	// Фоновые задачи
	scheduler := worker.NewScheduler(log)
	if cfg.Reference.EagerRefresh {
		if err := scheduler.ScheduleReferenceRefresh(referenceService, cfg.Reference.CacheTTL, cfg.Server.RequestTimeout); err != nil {
			return nil, err
		}
	}
	if cfg.Session.IdleTimeout > 0 {
		if err := scheduler.ScheduleSessionSweep(sessionService, cfg.Session.SweepInterval); err != nil {
			return nil, err
		}
	}

	handler := httpd.NewHandler(sessionService, adminService, exportService, st.pinger, log)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      NewRouter(cfg, log, handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:    server,
		logger:    log,
		config:    cfg,
		db:        st.db,
		publisher: publisher,
		scheduler: scheduler,
	}, nil
}

func NewRouter(cfg *config.Config, log zerolog.Logger, handler *httpd.Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestlog.RequestLogger(log))
	router.Use(middleware.Recoverer)
	if cfg.Server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	return router
}

func newStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.DriverSheets:
		values, err := repository.NewSheetValues(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.CredentialsFile)
		if err != nil {
			return nil, err
		}

		refSchema, err := sheet.ReferenceSchema.WithOverrides(cfg.Sheets.ReferenceColumns)
		if err != nil {
			return nil, fmt.Errorf("sheets.reference_columns: %w", err)
		}
		subSchema, err := sheet.SubmissionSchema.WithOverrides(cfg.Sheets.SubmissionColumns)
		if err != nil {
			return nil, fmt.Errorf("sheets.submission_columns: %w", err)
		}

		log.Info().
			Str("reference_tab", cfg.Sheets.ReferenceTab).
			Str("submission_tab", cfg.Sheets.SubmissionTab).
			Msg("Using Google Sheets store")

		return &stores{
			references:  repository.NewSheetsReferenceRepository(values, cfg.Sheets.ReferenceTab, refSchema, log),
			submissions: repository.NewSheetsSubmissionRepository(values, cfg.Sheets.SubmissionTab, subSchema, log),
		}, nil

	case config.DriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}

		base := repository.NewPostgresRepository(db, log)
		if err := base.Ping(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		log.Info().Msg("Database connection established")

		return &stores{
			references:  repository.NewReferenceRepository(db, log),
			submissions: repository.NewSubmissionRepository(db, log),
			pinger:      base,
			db:          db,
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("Using in-memory store, data is lost on restart")
		store := repository.NewMemoryStore()
		return &stores{
			references:  store.References(),
			submissions: store.Submissions(),
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) Run() error {
	a.scheduler.Start()

	a.logger.Info().Msgf("Starting form service on %s", a.config.Server.Address)
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down form service...")

	a.scheduler.Stop()

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	return a.server.Shutdown(ctx)
}
