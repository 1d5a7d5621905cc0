// API server entry point for ChemSDS.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sdsapp "github.com/turtacn/ChemSDS/internal/application/sds"
	"github.com/turtacn/ChemSDS/internal/config"
	"github.com/turtacn/ChemSDS/internal/domain/property"
	"github.com/turtacn/ChemSDS/internal/infrastructure/database/postgres"
	"github.com/turtacn/ChemSDS/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/ChemSDS/internal/infrastructure/database/redis"
	"github.com/turtacn/ChemSDS/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ChemSDS/internal/infrastructure/render"
	"github.com/turtacn/ChemSDS/internal/infrastructure/sources"
	"github.com/turtacn/ChemSDS/internal/infrastructure/sources/pubchem"
	"github.com/turtacn/ChemSDS/internal/infrastructure/storage/minio"
	httpserver "github.com/turtacn/ChemSDS/internal/interfaces/http"
	"github.com/turtacn/ChemSDS/internal/interfaces/http/handlers"
	"github.com/turtacn/ChemSDS/internal/interfaces/http/middleware"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	gitCommit = "unknown"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting ChemSDS API server",
		logging.String("version", version),
		logging.String("commit", gitCommit),
		logging.Int("port", cfg.Server.Port),
	)

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "chemsds",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		logger.Error("failed to initialize metrics", logging.Err(err))
		os.Exit(1)
	}
	appMetrics := prometheus.NewAppMetrics(collector)

	var checkers []handlers.HealthChecker

	// Document history store. The server still generates documents when
	// the database is down; only history persistence is lost.
	var history sdsapp.HistoryRepository
	var finder handlers.DocumentFinder
	conn, err := postgres.NewConnection(postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Database:        cfg.Database.DBName,
		Username:        cfg.Database.User,
		Password:        cfg.Database.Password,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxConns,
		MaxIdleConns:    cfg.Database.MinConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	}, logger)
	if err != nil {
		logger.Warn("database unavailable, document history disabled", logging.Err(err))
	} else {
		defer conn.Close()
		if err := conn.RunMigrations(cfg.Database.MigrationPath); err != nil {
			logger.Error("failed to run migrations", logging.Err(err))
			os.Exit(1)
		}
		repo := repositories.NewHistoryRepository(conn, logger)
		history = repo
		finder = repo
		checkers = append(checkers, &postgresHealthAdapter{conn: conn})
	}

	// Redis caches: rendered document views plus per-key lookup results.
	var docCache handlers.DocumentCache
	var lookupCache redis.Cache
	redisClient, err := redis.NewClient(&redis.Config{
		Mode:         "standalone",
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	}, logger)
	if err != nil {
		logger.Warn("redis unavailable, caching disabled", logging.Err(err))
	} else {
		defer redisClient.Close()
		lookupCache = redis.NewCache(redisClient, logger,
			redis.WithPrefix(cfg.Redis.KeyPrefix),
			redis.WithDefaultTTL(cfg.Redis.DefaultTTL),
		)
		docCache = redis.NewDocumentCache(lookupCache)
		checkers = append(checkers, &redisHealthAdapter{client: redisClient})
	}

	// Generation events for downstream consumers (archival worker).
	var events sdsapp.EventPublisher
	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:    cfg.Kafka.Brokers,
		MaxRetries: cfg.Kafka.ProducerRetries,
		BatchSize:  cfg.Kafka.BatchSize,
	}, logger)
	if err != nil {
		logger.Warn("kafka unavailable, generation events disabled", logging.Err(err))
	} else {
		defer producer.Close()
		events = kafka.NewEventPublisher(producer)
	}

	// Export archive for presigned downloads; the worker populates it.
	var signer handlers.ExportSigner
	storageClient, err := minio.NewClient(&minio.Config{
		Endpoint:        cfg.MinIO.Endpoint,
		AccessKeyID:     cfg.MinIO.AccessKey,
		SecretAccessKey: cfg.MinIO.SecretKey,
		UseSSL:          cfg.MinIO.UseSSL,
		Bucket:          cfg.MinIO.Bucket,
		PresignExpiry:   cfg.MinIO.PresignExpiry,
	}, logger)
	if err != nil {
		logger.Warn("object storage unavailable, document downloads disabled", logging.Err(err))
	} else {
		defer storageClient.Close()
		signer = minio.NewDocumentArchive(storageClient, logger)
	}

	// Property sources.
	var fetched property.FetchedSource
	if cfg.Sources.FetchEnabled {
		fetched = pubchem.NewClient(logger,
			pubchem.WithBaseURL(cfg.Sources.PubChemBaseURL),
			pubchem.WithRateLimit(cfg.Sources.PubChemRPS, cfg.Sources.PubChemBurst),
		)
		if lookupCache != nil {
			fetched = sources.NewCachedFetched(fetched, lookupCache, cfg.Sources.CacheTTL, logger)
		}
	}

	svc := sdsapp.NewService(sdsapp.Config{
		Computed: sources.NewComputed(),
		Fetched:  fetched,
		Renderers: map[sdstypes.DocumentFormat]sdsapp.Renderer{
			sdstypes.FormatJSON: render.NewJSONRenderer(),
			sdstypes.FormatPDF:  render.NewPDFRenderer(),
		},
		History: history,
		Events:  events,
		Logger:  logger,
		Options: []property.AdapterOption{
			property.WithKeyTimeout(cfg.Sources.KeyTimeout),
			property.WithMaxConcurrency(cfg.Sources.MaxConcurrency),
		},
	})

	sdsHandler := handlers.NewSDSHandler(svc, docCache, appMetrics, logger)
	sdsHandler.AttachDocumentStore(finder, signer)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		SDSHandler:     sdsHandler,
		HealthHandler:  handlers.NewHealthHandler(version, checkers...),
		CORSMiddleware: middleware.NewCORSMiddleware(middleware.DefaultCORSConfig()),
		LoggingMiddleware: middleware.NewLoggingMiddleware(logger,
			middleware.DefaultLoggingConfig()),
		RateLimitMiddleware: middleware.NewRateLimitMiddleware(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.Server.RateLimitRPS,
			Burst:             cfg.Server.RateLimitBurst,
		}),
		MetricsMiddleware: middleware.NewMetricsMiddleware(appMetrics),
		Logger:            logger,
		MetricsCollector:  collector,
	})

	srv := httpserver.NewServer(httpserver.ServerConfig{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, router, logger)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("HTTP server error", logging.Err(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		logger.Error("server shutdown error", logging.Err(err))
	}

	logger.Info("server stopped")
}

// loadConfig reads the YAML config file, falling back to environment
// variables and defaults when the file does not exist.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "config file %s not found, using environment and defaults\n", path)
		return config.LoadFromEnv()
	}
	return config.Load(path)
}

//Personal.AI order the ending
