// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adoption-workers/internal/common/camunda"
	"adoption-workers/internal/common/config"
	"adoption-workers/internal/common/database"
	"adoption-workers/internal/common/logger"
	"adoption-workers/internal/common/observability"
	"adoption-workers/internal/common/validation"
	"adoption-workers/internal/search"
	"adoption-workers/internal/store"
	"adoption-workers/pkg/registry"

	ccs "adoption-workers/internal/workers/adoption/calculate-compatibility-score"
	ria "adoption-workers/internal/workers/adoption/rank-interested-adopters"
	ra "adoption-workers/internal/workers/adoption/recommend-animals"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err,
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func fatal(log logger.Logger, msg string, err error) {
	log.Error(msg, map[string]interface{}{"error": err})
	os.Exit(1)
}

func main() {
	bootLog := logger.NewStructured("info", "console", "worker-manager")

	cfg, err := config.Load()
	if err != nil {
		fatal(bootLog, "config load failed", err)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format, cfg.App.Name)
	log.Info("starting worker manager", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	obs := observability.New(cfg.App.Name, log)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			log.Warn("observability shutdown failed", map[string]interface{}{"error": err})
		}
	}()

	ctx := context.Background()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: cfg.Camunda.Plaintext,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, log, "Zeebe client initialization")
	if err != nil {
		fatal(log, "zeebe client failed after retries", err)
	}
	if err := zeebe.ExecuteWithRetry(ctx, zeebe.HealthCheck, "topology"); err != nil {
		fatal(log, "zeebe gateway not healthy", err)
	}
	log.Info("Zeebe client connected", map[string]interface{}{"gateway": cfg.Camunda.BrokerAddress})

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, log, "PostgreSQL connection")
	if err != nil {
		fatal(log, "postgres failed after retries", err)
	}
	defer pg.Close()

	// --- Elasticsearch ---
	var es *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return es.Ping(ctx)
	}, 15, 2*time.Second, log, "Elasticsearch connection")
	if err != nil {
		fatal(log, "elasticsearch failed after retries", err)
	}

	// --- Redis ---
	rdb := database.NewRedis(cfg.Database.Redis)
	err = retryWithBackoff(func() error {
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, log, "Redis connection")
	if err != nil {
		fatal(log, "redis failed after retries", err)
	}
	defer rdb.Close()

	log.Info("all backing services connected", nil)

	validator := loadSchemas(cfg.Registry.Path, log)

	// --- Data layer ---
	pgStore := store.NewPostgresStore(pg.DB, log)
	profiles := store.NewCachedProfiles(pgStore, rdb.Client, config.GetDuration(cfg.Ranking.ProfileCacheTTL), log)
	animalIndex := search.NewAnimalIndex(es.Client, cfg.Database.Elasticsearch.AnimalIndex, log)

	// --- Workers ---
	workers := camunda.NewWorkerSet(zeebe.GetClient(), log)

	workers.Start(ccs.TaskType, config.GetWorkerConfig(cfg, ccs.TaskType),
		ccs.NewHandler(ccs.LoadConfig(cfg), pgStore, profiles, validator, obs, log).Handle)

	workers.Start(ria.TaskType, config.GetWorkerConfig(cfg, ria.TaskType),
		ria.NewHandler(ria.LoadConfig(cfg), pgStore, profiles, validator, obs, log).Handle)

	workers.Start(ra.TaskType, config.GetWorkerConfig(cfg, ra.TaskType),
		ra.NewHandler(ra.LoadConfig(cfg), animalIndex, profiles, validator, obs, log).Handle)

	log.Info("workers registered", map[string]interface{}{"running": workers.Running()})

	// --- Health & Metrics Server ---
	srv := &http.Server{
		Addr: cfg.Server.Address,
		Handler: newServerMux(map[string]readinessCheck{
			"zeebe":    zeebe.HealthCheck,
			"postgres": pg.Ping,
			"redis":    rdb.Ping,
			"elasticsearch": func(ctx context.Context) error {
				ok, err := es.IndexExists(ctx, cfg.Database.Elasticsearch.AnimalIndex)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("index %s not found", cfg.Database.Elasticsearch.AnimalIndex)
				}
				return nil
			},
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("health/metrics server listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("health/metrics server failed", map[string]interface{}{"error": err})
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping workers", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	workers.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("error stopping health server", map[string]interface{}{"error": err})
	}
	if err := zeebe.Close(); err != nil {
		log.Error("error closing Zeebe client", map[string]interface{}{"error": err})
	}

	log.Info("worker manager stopped gracefully", nil)
}

// loadSchemas compiles the input schemas of every implemented activity. Without
// a registry the workers still run, relying on their own input checks.
func loadSchemas(path string, log logger.Logger) *validation.SchemaValidator {
	validator := validation.NewSchemaValidator()

	reg, err := registry.LoadRegistry(path)
	if err != nil {
		log.Warn("activity registry unavailable, schema validation disabled", map[string]interface{}{
			"path":  path,
			"error": err,
		})
		return validator
	}

	for _, activity := range reg.Implemented() {
		if err := validator.Register(activity.TaskType, activity.InputSchema); err != nil {
			log.Warn("skipping invalid input schema", map[string]interface{}{
				"taskType": activity.TaskType,
				"error":    err,
			})
		}
	}
	log.Info("activity registry loaded", map[string]interface{}{
		"version":    reg.Version,
		"activities": len(reg.Activities),
	})
	return validator
}
