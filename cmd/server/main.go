package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/society/backend/internal/application/provisioning"
	"github.com/society/backend/internal/domain/member"
	"github.com/society/backend/internal/infrastructure/auth"
	"github.com/society/backend/internal/infrastructure/cache"
	"github.com/society/backend/internal/infrastructure/config"
	"github.com/society/backend/internal/infrastructure/event"
	"github.com/society/backend/internal/infrastructure/identityadmin"
	"github.com/society/backend/internal/infrastructure/logger"
	"github.com/society/backend/internal/infrastructure/persistence"
	"github.com/society/backend/internal/infrastructure/storage"
	"github.com/society/backend/internal/infrastructure/telemetry"
	"github.com/society/backend/internal/interfaces/http/handler"
	"github.com/society/backend/internal/interfaces/http/router"

	_ "github.com/society/backend/docs"
)

//	@title			Society Backend API
//	@version		1.0
//	@description	Member onboarding and provisioning for housing societies

//	@contact.name	API Support
//	@contact.url	https://github.com/society/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const version = "1.0.0"

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Service:    cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Society Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Profiling starts before tracing so span profiles can attach to it
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Profiler.Enabled,
		ServerAddress:     cfg.Profiler.ServerAddress,
		ApplicationName:   cfg.App.Name,
		BasicAuthUser:     cfg.Profiler.AuthUser,
		BasicAuthPassword: cfg.Profiler.AuthPassword,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormOpts := []logger.GormLoggerOption{}
	if cfg.App.Env == "production" {
		gormOpts = append(gormOpts, logger.WithRedactedValues())
	}
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), gormOpts...)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Database.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite database", zap.Error(err))
		}
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.RegisterDBTracing(db.DB, cfg.Database.Driver); err != nil {
			log.Warn("Database tracing unavailable", zap.Error(err))
		}
	}
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	locker, err := cache.NewLockerFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).CreateLocker()
	if err != nil {
		log.Fatal("Failed to create provisioning locker", zap.Error(err))
	}

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))
	if cfg.Kafka.Enabled {
		writer, err := event.NewKafkaWriter(event.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			WriteTimeout: cfg.Kafka.WriteTimeout,
		})
		if err != nil {
			log.Fatal("Failed to create Kafka writer", zap.Error(err))
		}
		forwarder := event.NewKafkaForwarder(writer, event.NewMemberEventSerializer(), cfg.Kafka.WriteTimeout, log)
		eventBus.Subscribe(forwarder)
		defer func() {
			if err := forwarder.Close(); err != nil {
				log.Error("Error closing Kafka writer", zap.Error(err))
			}
		}()
		log.Info("Forwarding member events to Kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	metrics, err := telemetry.NewProvisioningMetrics(meterProvider.Meter("society-backend/provisioning"))
	if err != nil {
		log.Fatal("Failed to create provisioning metrics", zap.Error(err))
	}

	identities, configured := newIdentityAdmin(cfg, log)
	var provisioner handler.Provisioner
	if configured {
		provisioner = provisioning.NewService(
			persistence.NewGormProfileRepository(db.DB),
			identities,
			log,
			provisioning.WithLocker(locker),
			provisioning.WithEventPublisher(eventBus),
			provisioning.WithMetrics(metrics),
			provisioning.WithPasswordGenerator(provisioning.NewRandomPasswordGenerator(cfg.Provisioning.PasswordLength)),
			provisioning.WithConfig(provisioning.Config{
				LockTTL:    cfg.Provisioning.LockTTL,
				LockPrefix: cfg.Provisioning.LockPrefix,
			}),
		)
	}

	var documents storage.DocumentStorage
	if cfg.Storage.Enabled {
		s3Store, err := storage.NewS3ObjectStorage(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to create document storage", zap.Error(err))
		}
		if err := s3Store.EnsureBucket(ctx); err != nil {
			log.Warn("Document bucket check failed", zap.String("bucket", s3Store.Bucket()), zap.Error(err))
		}
		documents = s3Store
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	if !jwtService.Enabled() {
		log.Warn("JWT secret not set; authenticated API routes will reject every request")
	}

	engine := router.NewEngine(router.Dependencies{
		Config:     cfg,
		Logger:     log,
		JWTService: jwtService,
	}, router.Handlers{
		Provisioning: handler.NewProvisioningHandler(provisioner, configured, log),
		Documents: handler.NewDocumentHandler(documents, handler.DocumentConfig{
			KeyPrefix:   cfg.Storage.KeyPrefix,
			URLExpiry:   cfg.Storage.UploadURLExpiry,
			MaxFileSize: cfg.Storage.MaxFileSize,
		}, log),
		System: handler.NewSystemHandler(cfg.App.Name, version, map[string]handler.Pinger{"database": db}),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newIdentityAdmin picks the identity backend. The second result is false
// when platform credentials are missing, in which case provisioning fails
// closed.
func newIdentityAdmin(cfg *config.Config, log *zap.Logger) (member.IdentityAdmin, bool) {
	if cfg.Platform.Driver == "memory" {
		log.Warn("Using in-memory identity store; identities are lost on restart")
		return identityadmin.NewMemoryStore(), true
	}

	client, err := identityadmin.NewClient(identityadmin.Config{
		BaseURL:    cfg.Platform.URL,
		ServiceKey: cfg.Platform.ServiceKey,
		Timeout:    cfg.Platform.Timeout,
	}, log)
	if err != nil {
		log.Error("Platform credentials missing; provisioning is disabled", zap.Error(err))
		return nil, false
	}
	return client, true
}
