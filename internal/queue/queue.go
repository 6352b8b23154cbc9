package queue

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Handler processes one message body. Returning an error asks for a retry.
type Handler func(body []byte) error

// Queue interface
type Queue interface {
	Publish(topic string, body []byte) error
	Subscribe(topic string, handler Handler) error
}

// InMemoryQueue fans published messages out to in-process subscribers with retry
type InMemoryQueue struct {
	Logger     zerolog.Logger
	MaxRetries int
	Backoff    time.Duration

	mu       sync.Mutex
	handlers map[string][]Handler
	wg       sync.WaitGroup
}

func NewInMemoryQueue(logger zerolog.Logger) *InMemoryQueue {
	return &InMemoryQueue{
		Logger:     logger,
		MaxRetries: 3,
		Backoff:    500 * time.Millisecond,
		handlers:   make(map[string][]Handler),
	}
}

// job wraps a message body with retry info
type job struct {
	topic      string
	body       []byte
	retryCount int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, body []byte) error {
	q.mu.Lock()
	handlers := append([]Handler(nil), q.handlers[topic]...)
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		q.wg.Add(1)
		go q.processJob(handler, job{topic: topic, body: body})
	}
	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler Handler, j job) {
	defer q.wg.Done()

	for {
		err := handler(j.body)
		if err == nil {
			q.Logger.Debug().Str("topic", j.topic).Int("attempt", j.retryCount+1).Msg("job processed")
			return
		}

		j.retryCount++
		if j.retryCount > q.MaxRetries {
			q.Logger.Error().Err(err).Str("topic", j.topic).Int("attempts", j.retryCount).Msg("job permanently failed")
			return
		}
		q.Logger.Warn().Err(err).Str("topic", j.topic).Int("attempt", j.retryCount).Int("max_retries", q.MaxRetries).Msg("job failed, retrying")

		// Linear backoff before retry
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

// Wait blocks until every published job has finished.
func (q *InMemoryQueue) Wait() {
	q.wg.Wait()
}
