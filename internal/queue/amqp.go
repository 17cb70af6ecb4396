package queue

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

const retryHeader = "x-retry-count"

// AMQPQueue publishes to and consumes from durable RabbitMQ queues, one per topic.
type AMQPQueue struct {
	MaxRetries int
	Logger     zerolog.Logger

	conn *amqp.Connection
	ch   *amqp.Channel
	mu   sync.Mutex // amqp.Channel is not safe for concurrent publishes
}

// DialAMQP connects to RabbitMQ and opens a channel.
func DialAMQP(url string, logger zerolog.Logger) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &AMQPQueue{MaxRetries: 3, Logger: logger, conn: conn, ch: ch}, nil
}

func (q *AMQPQueue) declare(topic string) (amqp.Queue, error) {
	return q.ch.QueueDeclare(
		topic, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
}

// Publish sends payload as a persistent JSON message.
func (q *AMQPQueue) Publish(topic string, payload []byte) error {
	return q.publish(topic, payload, 0)
}

func (q *AMQPQueue) publish(topic string, payload []byte, retryCount int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, err := q.declare(topic); err != nil {
		return fmt.Errorf("declare queue %s: %w", topic, err)
	}
	return q.ch.Publish("", topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Headers:      amqp.Table{retryHeader: int32(retryCount)},
		Body:         payload,
	})
}

// Subscribe consumes topic in the background. Failed deliveries are
// republished with an incremented retry header until MaxRetries, then dropped.
func (q *AMQPQueue) Subscribe(topic string, handler Handler) error {
	q.mu.Lock()
	if _, err := q.declare(topic); err != nil {
		q.mu.Unlock()
		return fmt.Errorf("declare queue %s: %w", topic, err)
	}
	msgs, err := q.ch.Consume(
		topic,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	q.mu.Unlock()
	if err != nil {
		return fmt.Errorf("register consumer on %s: %w", topic, err)
	}

	go func() {
		for d := range msgs {
			q.deliver(topic, d, handler)
		}
		q.Logger.Info().Str("topic", topic).Msg("consumer stopped")
	}()
	return nil
}

func (q *AMQPQueue) deliver(topic string, d amqp.Delivery, handler Handler) {
	err := handler(d.Body)
	if err == nil {
		_ = d.Ack(false)
		return
	}

	retryCount := retryCountOf(d.Headers) + 1
	if retryCount > q.MaxRetries {
		q.Logger.Error().Err(err).Str("topic", topic).Int("attempts", retryCount).Msg("job permanently failed")
		_ = d.Ack(false)
		return
	}
	q.Logger.Warn().Err(err).Str("topic", topic).Int("attempt", retryCount).Msg("job failed, requeueing")
	if pubErr := q.publish(topic, d.Body, retryCount); pubErr != nil {
		// let the broker redeliver it instead
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}

func retryCountOf(headers amqp.Table) int {
	switch v := headers[retryHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// Close closes the channel and the connection.
func (q *AMQPQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.ch.Close(); err != nil {
		_ = q.conn.Close()
		return err
	}
	return q.conn.Close()
}

var _ Queue = (*AMQPQueue)(nil)
