package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/gyanbhambhani/rltr/prometheus"
)

// TaskReindexProperty asks the worker to refresh the search index entry for
// one listing.
const TaskReindexProperty = "property:reindex"

// ReindexPayload is the JSON payload carried by a reindex task
type ReindexPayload struct {
	PropertyID string `json:"property_id"`
}

// Dispatcher hands named jobs off to the Redis broker. Fire-and-forget: the
// API never waits for or observes completion.
type Dispatcher struct {
	client *asynq.Client
}

// NewDispatcher constructs a dispatcher from a Redis connection string
func NewDispatcher(redisURL string) (*Dispatcher, error) {
	if redisURL == "" {
		return nil, errors.New("queue: broker URL is not configured")
	}
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("queue: parse broker URL: %w", err)
	}
	return &Dispatcher{client: asynq.NewClient(opt)}, nil
}

// EnqueueReindex schedules a reindex job for a property and returns the
// broker-assigned job id.
func (d *Dispatcher) EnqueueReindex(ctx context.Context, propertyID string) (string, error) {
	payload, err := json.Marshal(ReindexPayload{PropertyID: propertyID})
	if err != nil {
		return "", err
	}

	info, err := d.client.EnqueueContext(ctx, asynq.NewTask(TaskReindexProperty, payload))
	if err != nil {
		return "", err
	}

	prometheus.RecordTaskEnqueued(TaskReindexProperty)
	return info.ID, nil
}

// Close releases the broker connection
func (d *Dispatcher) Close() error {
	return d.client.Close()
}
