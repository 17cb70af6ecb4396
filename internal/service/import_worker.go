package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/unclebandit/customers-dashboard/internal/model"
	"github.com/unclebandit/customers-dashboard/internal/queue"
)

// CustomerWriter is the part of the repository the import worker needs.
type CustomerWriter interface {
	Upsert(ctx context.Context, c *model.Customer) error
}

// ImportWorker upserts customers received on the customer_imports topic.
type ImportWorker struct {
	Repo    CustomerWriter
	Logger  zerolog.Logger
	Timeout time.Duration
}

// Constructor
func NewImportWorker(repo CustomerWriter, logger zerolog.Logger) *ImportWorker {
	return &ImportWorker{
		Repo:    repo,
		Logger:  logger,
		Timeout: 30 * time.Second,
	}
}

// Start subscribes the worker to q.
func (w *ImportWorker) Start(q queue.Queue) error {
	return q.Subscribe(queue.CustomerImportsTopic, w.Handle)
}

// Handle processes one payload. Malformed payloads are dropped rather than
// retried; storage errors are returned so the queue retries the batch.
// Upserts are idempotent for records that carry an id.
func (w *ImportWorker) Handle(payload []byte) error {
	var batch model.CustomerImport
	if err := json.Unmarshal(payload, &batch); err != nil {
		w.Logger.Warn().Err(err).Msg("invalid customer import payload")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.Timeout)
	defer cancel()

	for i := range batch.Customers {
		c := &batch.Customers[i]
		if err := w.Repo.Upsert(ctx, c); err != nil {
			return fmt.Errorf("upsert customer %d of %d: %w", i+1, len(batch.Customers), err)
		}
	}
	w.Logger.Info().Int("customers", len(batch.Customers)).Msg("customer import applied")
	return nil
}
