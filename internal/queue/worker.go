package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/gyanbhambhani/rltr/internal/store"
	"github.com/gyanbhambhani/rltr/pkg/logger"
)

// Worker polls the broker and runs registered task handlers
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewWorker constructs an asynq server on the given broker
func NewWorker(redisURL string, concurrency int) (*Worker, error) {
	if redisURL == "" {
		return nil, errors.New("queue: broker URL is not configured")
	}
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("queue: parse broker URL: %w", err)
	}
	if concurrency <= 0 {
		concurrency = 10
	}

	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{"default": 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.GetLogger().Error("Task failed",
				zap.String("task", task.Type()),
				zap.Error(err))
		}),
	})
	return &Worker{server: srv, mux: asynq.NewServeMux()}, nil
}

// RegisterReindexHandler binds the property reindex task. The handler is a
// placeholder: it loads the listing so a future index update has the row in
// hand, then acks. TODO: push the listing into the search index once one
// exists.
func (w *Worker) RegisterReindexHandler(s *store.Store) {
	w.mux.HandleFunc(TaskReindexProperty, func(ctx context.Context, t *asynq.Task) error {
		log := logger.GetLogger()

		var p ReindexPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			// malformed payload: retrying will not help
			log.Error("Malformed reindex payload", zap.Error(err))
			return nil
		}

		property, err := s.GetPropertyAnyTenant(ctx, p.PropertyID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.Warn("Reindex for missing property", zap.String("property_id", p.PropertyID))
				return nil
			}
			return err
		}

		log.Info("Property reindexed",
			zap.String("property_id", property.ID),
			zap.String("org_id", property.OrgID))
		return nil
	})
}

// Run starts the worker and blocks until the context is canceled, then shuts
// down gracefully.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.server.Start(w.mux); err != nil {
		return err
	}
	<-ctx.Done()
	w.server.Shutdown()
	return nil
}
