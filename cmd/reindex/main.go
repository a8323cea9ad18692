// Command reindex enqueues a reindex job for one or more property ids. It is
// an operational backfill tool; the API itself never blocks on the
// dispatcher.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/gyanbhambhani/rltr/internal/queue"
	"github.com/gyanbhambhani/rltr/pkg/config"
	"github.com/gyanbhambhani/rltr/pkg/logger"
	"github.com/gyanbhambhani/rltr/prometheus"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <property-id> [property-id ...]\n", os.Args[0])
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	appConfig, err := config.Load("rltr-reindex")
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

	prometheus.InitMetrics(appConfig.Metrics.Prefix)

	dispatcher, err := queue.NewDispatcher(appConfig.Broker.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to broker", zap.Error(err))
	}
	defer dispatcher.Close()

	ctx := context.Background()
	for _, id := range flag.Args() {
		jobID, err := dispatcher.EnqueueReindex(ctx, id)
		if err != nil {
			log.Fatal("Failed to enqueue reindex",
				zap.String("property_id", id),
				zap.Error(err))
		}
		log.Info("Reindex enqueued",
			zap.String("property_id", id),
			zap.String("job_id", jobID))
	}
}
