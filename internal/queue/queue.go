package queue

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// CustomerImportsTopic carries model.CustomerImport payloads encoded as JSON.
const CustomerImportsTopic = "customer_imports"

// Handler processes one payload. A non-nil error asks the queue to retry.
type Handler func(payload []byte) error

// Queue interface
type Queue interface {
	Publish(topic string, payload []byte) error
	Subscribe(topic string, handler Handler) error
	Close() error
}

// InMemoryQueue delivers jobs to in-process subscribers with retry
type InMemoryQueue struct {
	MaxRetries int
	// Backoff is multiplied by the attempt number between retries.
	Backoff time.Duration
	Logger  zerolog.Logger

	mu       sync.Mutex
	handlers map[string][]Handler
	wg       sync.WaitGroup
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue(logger zerolog.Logger) *InMemoryQueue {
	return &InMemoryQueue{
		MaxRetries: 3,
		Backoff:    500 * time.Millisecond,
		Logger:     logger,
		handlers:   make(map[string][]Handler),
	}
}

// job wraps a message payload with retry info
type job struct {
	topic      string
	payload    []byte
	retryCount int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload []byte) error {
	q.mu.Lock()
	handlers := append([]Handler(nil), q.handlers[topic]...)
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		q.wg.Add(1)
		go func(h Handler) {
			defer q.wg.Done()
			q.processJob(h, job{topic: topic, payload: payload})
		}(handler)
	}
	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler Handler, j job) {
	for {
		err := handler(j.payload)
		if err == nil {
			q.Logger.Debug().Str("topic", j.topic).Int("attempt", j.retryCount+1).Msg("job processed")
			return
		}

		j.retryCount++
		if j.retryCount > q.MaxRetries {
			q.Logger.Error().Err(err).Str("topic", j.topic).Int("attempts", j.retryCount).Msg("job permanently failed")
			return
		}
		q.Logger.Warn().Err(err).Str("topic", j.topic).Int("attempt", j.retryCount).Msg("job failed, retrying")

		time.Sleep(time.Duration(j.retryCount) * q.Backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler Handler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// Close waits for in-flight jobs to finish.
func (q *InMemoryQueue) Close() error {
	q.wg.Wait()
	return nil
}

var _ Queue = (*InMemoryQueue)(nil)
