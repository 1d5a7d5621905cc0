// Background worker entry point for ChemSDS. The worker consumes document
// generation events and archives rendered exports to object storage, so
// every generated sheet has a durable, downloadable copy independent of
// the API server's lifetime.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdsapp "github.com/turtacn/ChemSDS/internal/application/sds"
	"github.com/turtacn/ChemSDS/internal/config"
	"github.com/turtacn/ChemSDS/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ChemSDS/internal/infrastructure/render"
	"github.com/turtacn/ChemSDS/internal/infrastructure/sources"
	"github.com/turtacn/ChemSDS/internal/infrastructure/storage/minio"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	gitCommit = "unknown"
)

const (
	defaultConfigPath = "configs/config.yaml"
	defaultProbePort  = 8081
)

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	probePort := flag.Int("probe-port", defaultProbePort, "health and metrics listen port")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting ChemSDS archival worker",
		logging.String("version", version),
		logging.String("commit", gitCommit),
	)

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "chemsds",
		Subsystem:            "worker",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		logger.Error("failed to initialize metrics", logging.Err(err))
		os.Exit(1)
	}

	storageClient, err := minio.NewClient(&minio.Config{
		Endpoint:        cfg.MinIO.Endpoint,
		AccessKeyID:     cfg.MinIO.AccessKey,
		SecretAccessKey: cfg.MinIO.SecretKey,
		UseSSL:          cfg.MinIO.UseSSL,
		Bucket:          cfg.MinIO.Bucket,
		PresignExpiry:   cfg.MinIO.PresignExpiry,
	}, logger)
	if err != nil {
		logger.Error("object storage unavailable", logging.Err(err))
		os.Exit(1)
	}
	defer storageClient.Close()
	archive := minio.NewDocumentArchive(storageClient, logger)

	// The worker regenerates from the event's SMILES; generation is
	// deterministic so the archived content matches what the API served,
	// apart from the embedded document ID and timestamp.
	svc := sdsapp.NewService(sdsapp.Config{
		Computed: sources.NewComputed(),
		Renderers: map[sdstypes.DocumentFormat]sdsapp.Renderer{
			sdstypes.FormatJSON: render.NewJSONRenderer(),
			sdstypes.FormatPDF:  render.NewPDFRenderer(),
		},
		Logger: logger,
	})

	arch := newArchiver(svc, archive, logger, cfg.Worker.MaxRetries, cfg.Worker.RetryBackoff)

	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers:     cfg.Kafka.Brokers,
		GroupID:     cfg.Kafka.GroupID,
		Topic:       kafka.TopicDocumentGenerated,
		StartOffset: cfg.Kafka.AutoOffsetReset,
	}, logger)
	if err != nil {
		logger.Error("failed to create consumer", logging.Err(err))
		os.Exit(1)
	}
	defer consumer.Close()

	// Probe endpoints for orchestration.
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/metrics", collector.Handler())
	probeSrv := &http.Server{
		Addr:        fmt.Sprintf(":%d", *probePort),
		Handler:     mux,
		ReadTimeout: 5 * time.Second,
	}
	go func() {
		if err := probeSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("probe server error", logging.Err(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- consumer.Run(ctx, arch.Handle)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("shutting down worker...")
		cancel()
		<-done
	case err := <-done:
		if err != nil {
			logger.Error("consumer stopped", logging.Err(err))
		}
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = probeSrv.Shutdown(shutdownCtx)

	logger.Info("worker stopped",
		logging.Int64("handled", consumer.Handled()),
		logging.Int64("errored", consumer.Errored()),
	)
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
