// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/prometheus/client_golang/prometheus"

	"approval-workers/internal/catalog"
	"approval-workers/internal/common/camunda"
	"approval-workers/internal/common/config"
	"approval-workers/internal/common/database"
	apperrors "approval-workers/internal/common/errors"
	"approval-workers/internal/common/logger"
	"approval-workers/internal/common/metrics"
	"approval-workers/internal/common/observability"
	"approval-workers/internal/snapshot"

	cal "approval-workers/internal/workers/approval/calculate-approval-likelihood"
	chf "approval-workers/internal/workers/approval/check-hard-fail-rules"
	rcr "approval-workers/internal/workers/approval/rank-card-recommendations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot, _ := logger.New(logger.Options{Level: "info", Format: "console"})
		boot.Error("config load failed", map[string]interface{}{"error": err})
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  cfg.Logging.Output,
		Service: cfg.App.Name,
	})
	if err != nil {
		os.Exit(1)
	}
	log.Info("starting worker manager", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	if err := run(cfg, log); err != nil {
		log.Error("worker manager stopped with error", map[string]interface{}{"error": err})
		os.Exit(1)
	}
	log.Info("worker manager stopped gracefully", nil)
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx := context.Background()

	m := metrics.New(prometheus.DefaultRegisterer)
	obs, err := observability.New(cfg.App.Name, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = obs.Shutdown(shutdownCtx)
	}()

	// --- Zeebe ---
	zeebe, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	})
	if err != nil {
		return err
	}
	defer zeebe.Close()
	log.Info("zeebe client connected", map[string]interface{}{"broker": cfg.Camunda.BrokerAddress})

	// --- PostgreSQL ---
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return err
	}
	defer pg.Close()
	if err := retryWithBackoff(func() error { return pg.Ping(ctx) }, 15, 2*time.Second, log, "PostgreSQL connection"); err != nil {
		return err
	}

	// --- Redis ---
	rdb := database.NewRedis(cfg.Database.Redis)
	defer rdb.Close()
	if err := retryWithBackoff(func() error { return rdb.Ping(ctx) }, 10, 2*time.Second, log, "Redis connection"); err != nil {
		return err
	}

	// --- Elasticsearch (catalog source only) ---
	var es *elasticsearch.Client
	if cfg.Catalog.Source == "elasticsearch" {
		esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		if err := retryWithBackoff(func() error { return esClient.Ping(ctx) }, 15, 2*time.Second, log, "Elasticsearch connection"); err != nil {
			return err
		}
		es = esClient.Client
	}

	// --- Catalog ---
	cat, err := loadCatalog(ctx, cfg.Catalog, es, log)
	if err != nil {
		return err
	}

	// --- Snapshot store ---
	store := snapshot.NewStore(pg.DB, rdb.Client, config.GetDuration(cfg.Snapshot.CacheTTL), log)
	if cfg.Snapshot.Migrate {
		if err := store.Migrate(ctx); err != nil {
			return err
		}
		log.Info("snapshot schema applied", nil)
	}

	// --- Workers ---
	client := zeebe.GetClient()
	var workers []worker.JobWorker
	start := func(taskType string, handle worker.JobHandler) {
		if w := camunda.StartWorker(client, taskType, workerConfig(cfg, taskType), instrument(obs, taskType, handle), log); w != nil {
			workers = append(workers, w)
		}
	}

	gateCfg := chf.LoadConfig()
	gateCfg.Timeout = workerTimeout(cfg, chf.TaskType)
	start(chf.TaskType, chf.NewHandler(gateCfg, m, log).Handle)

	calcCfg := cal.LoadConfig()
	calcCfg.Timeout = workerTimeout(cfg, cal.TaskType)
	start(cal.TaskType, cal.NewHandler(calcCfg, cat, m, log).Handle)

	rankCfg := rcr.LoadConfig()
	rankCfg.Timeout = workerTimeout(cfg, rcr.TaskType)
	rankCfg.Candidates = cfg.Catalog.Candidates
	rankCfg.AlwaysInclude = cfg.Catalog.AlwaysInclude
	start(rcr.TaskType, rcr.NewHandler(rankCfg, cat, store, m, log).Handle)

	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	mux := newMux(map[string]func(context.Context) error{
		"zeebe":    zeebe.HealthCheck,
		"postgres": pg.Ping,
		"redis":    rdb.Ping,
	})
	srv := &http.Server{
		Addr:              cfg.Metrics.Address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("health/metrics server listening", map[string]interface{}{"address": cfg.Metrics.Address})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("health/metrics server failed", map[string]interface{}{"error": err})
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping workers", nil)
	camunda.StopWorkers(workers, 30*time.Second, log)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadCatalog(ctx context.Context, cfg config.CatalogConfig, es *elasticsearch.Client, log logger.Logger) (*catalog.Catalog, error) {
	src, err := catalog.NewSource(cfg.Source, cfg.Path, es, cfg.Index)
	if err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(cfg.Source, err)
	}

	var cat *catalog.Catalog
	err = retryWithBackoff(func() error {
		var err error
		cat, err = src.Load(ctx)
		return err
	}, 5, time.Second, log, "catalog load")
	if err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(cfg.Source, err)
	}

	log.Info("card catalog loaded", map[string]interface{}{
		"source":     cfg.Source,
		"cards":      cat.Len(),
		"candidates": cat.Subset(cfg.Candidates).Len(),
	})
	return cat, nil
}
