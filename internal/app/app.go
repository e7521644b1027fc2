package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	httpserver "github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/http"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/http/handler"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/http/router"
	natsadapter "github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/messaging/nats"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/payment"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/repository/cache"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/repository/mongodb"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/storage/s3"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/config"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/usecase"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/mailer"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/logger"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/metrics"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/tracer"
)

// App owns every long-lived component and their shutdown order.
type App struct {
	cfg           *config.Config
	log           logger.Logger
	server        *httpserver.Server
	metricsServer *metrics.Server
	mongoClient   *mongo.Client
	redisClient   *redis.Client
	natsConn      *nats.Conn
	traceProvider *sdktrace.TracerProvider
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	appLogger, err := logger.NewZapLogger(logger.Config{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger.Infof("Configuration loaded: Env=%s, HTTP Port: %s", cfg.Env, cfg.HTTPServer.Port)

	mongoClient, err := mongodb.NewClient(ctx, mongodb.Config{
		URI:      cfg.MongoDB.URI,
		User:     cfg.MongoDB.User,
		Password: cfg.MongoDB.Password,
		Database: cfg.MongoDB.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}
	appLogger.Info("MongoDB client initialized")
	db := mongoClient.Database(cfg.MongoDB.Database)

	redisClient, err := cache.NewClient(ctx, cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	appLogger.Info("Redis client initialized")

	natsConn, err := natsadapter.NewConnection(cfg.NATS.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	publisher, err := natsadapter.NewPublisher(natsConn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize NATS publisher: %w", err)
	}
	appLogger.Info("NATS publisher initialized")

	storage, err := s3.NewS3Storage(s3.Config{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		Bucket:    cfg.Minio.Bucket,
		UseSSL:    cfg.Minio.UseSSL,
	}, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize media storage: %w", err)
	}
	appLogger.Info("Media storage initialized")

	var traceProvider *sdktrace.TracerProvider
	if cfg.Tracing.Enabled {
		traceProvider, err = tracer.Init(ctx, "listing-service", cfg.Tracing.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracer: %w", err)
		}
		appLogger.Info("Tracer initialized")
	}

	var metricsManager *metrics.Manager
	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metricsManager = metrics.NewManager("listing_service")
		metricsServer = metrics.NewServer(cfg.Metrics.Port, metricsManager)
	}

	listingRepo := mongodb.NewListingRepository(db)
	specialtyRepo := mongodb.NewSpecialtyRepository(db)
	serviceRepo := mongodb.NewServiceRepository(db)
	mediaRepo := mongodb.NewMediaRepository(db)
	listingCache := cache.NewListingCache(redisClient, cfg.Redis.TTL)

	paymentClient := payment.NewClient(payment.Config{
		BaseURL: cfg.Payment.BaseURL,
		APIKey:  cfg.Payment.APIKey,
		Timeout: cfg.Payment.Timeout,
	}, appLogger)

	var mail mailer.Mailer
	if cfg.SMTP.Host != "" {
		mail = mailer.New(mailer.Config{
			Host:        cfg.SMTP.Host,
			Port:        cfg.SMTP.Port,
			Username:    cfg.SMTP.Username,
			Password:    cfg.SMTP.Password,
			SenderEmail: cfg.SMTP.SenderEmail,
		})
	}

	reconciler := usecase.NewMediaReconciler(mediaRepo, storage, metricsManager, appLogger)
	loader := usecase.NewDraftLoader(listingRepo, specialtyRepo, serviceRepo, mediaRepo, storage, appLogger)
	submitter := usecase.NewSubmitter(listingRepo, specialtyRepo, serviceRepo, reconciler,
		paymentClient, listingCache, publisher, mail, metricsManager, appLogger)
	listingUC := usecase.NewListingUsecase(listingRepo, specialtyRepo, serviceRepo, mediaRepo,
		storage, listingCache, publisher, appLogger)
	billingUC := usecase.NewBillingUsecase(listingRepo, paymentClient, appLogger)

	mux := router.New(router.Handlers{
		Wizard:  handler.NewWizardHandler(loader, submitter, appLogger),
		Listing: handler.NewListingHandler(listingUC, appLogger),
		Billing: handler.NewBillingHandler(billingUC, appLogger),
	}, cfg.JWT.Secret, metricsManager, appLogger)

	return &App{
		cfg:           cfg,
		log:           appLogger,
		server:        httpserver.NewServer(cfg.HTTPServer.Port, mux, appLogger),
		metricsServer: metricsServer,
		mongoClient:   mongoClient,
		redisClient:   redisClient,
		natsConn:      natsConn,
		traceProvider: traceProvider,
	}, nil
}

func (a *App) Run() {
	go func() {
		if err := a.server.Start(); err != nil {
			a.log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()
	if a.metricsServer != nil {
		go a.metricsServer.Start(a.log)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Infof("Received shutdown signal: %v. Shutting down application...", receivedSignal)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful+5*time.Second)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		a.log.Errorf("Error during HTTP server shutdown: %v", err)
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Stop(shutdownCtx); err != nil {
			a.log.Errorf("Error during metrics server shutdown: %v", err)
		}
	}
	if a.traceProvider != nil {
		if err := a.traceProvider.Shutdown(shutdownCtx); err != nil {
			a.log.Errorf("Error shutting down tracer: %v", err)
		}
	}

	if a.natsConn != nil {
		a.natsConn.Close()
	}
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
			a.log.Errorf("Error disconnecting from MongoDB: %v", err)
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Errorf("Error closing Redis client: %v", err)
		}
	}

	a.log.Info("Application shut down successfully")
}
