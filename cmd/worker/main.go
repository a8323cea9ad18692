package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/gyanbhambhani/rltr/internal/queue"
	"github.com/gyanbhambhani/rltr/internal/store"
	"github.com/gyanbhambhani/rltr/pkg/config"
	"github.com/gyanbhambhani/rltr/pkg/database"
	"github.com/gyanbhambhani/rltr/pkg/logger"
	"github.com/gyanbhambhani/rltr/prometheus"
)

func main() {
	appConfig, err := config.Load("rltr-worker")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting rltr-worker", appConfig.LogFields()...)

	prometheus.InitMetrics(appConfig.Metrics.Prefix)

	db, err := database.InitDB(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	st := store.New(db)

	worker, err := queue.NewWorker(appConfig.Broker.RedisURL, appConfig.Broker.Concurrency)
	if err != nil {
		log.Fatal("Failed to initialize worker", zap.Error(err))
	}
	worker.RegisterReindexHandler(st)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Worker polling broker", zap.Int("concurrency", appConfig.Broker.Concurrency))
	if err := worker.Run(ctx); err != nil {
		log.Fatal("Worker error", zap.Error(err))
	}
	log.Info("Worker stopped")
}
