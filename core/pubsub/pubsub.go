package pubsub

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PingTopic is a no-op control topic used to verify bus connectivity.
const PingTopic = "gdps:ping"

// Handler processes a single message on a topic. Handlers must be idempotent:
// delivery is at-least-once and every running instance dispatches the message
// independently.
type Handler func(ctx context.Context, payload []byte) error

// Router dispatches invalidation bus messages to registered handlers.
// Each process runs its own subscriber loop, so a published message executes
// once per live instance. That fan-out is the point: cache and index repair
// must happen everywhere.
type Router struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *zap.Logger
}

// NewRouter creates an empty router.
func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Register adds a handler for a topic. Multiple handlers per topic all run.
func (r *Router) Register(topic string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[topic] = append(r.handlers[topic], handler)
}

// Topics returns the topics with at least one registered handler.
func (r *Router) Topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

// Dispatch runs every handler registered for the topic. A failing or
// panicking handler is logged and isolated; it never prevents the remaining
// handlers from running and never reaches the subscriber loop.
func (r *Router) Dispatch(ctx context.Context, topic string, payload []byte) {
	r.mu.RLock()
	handlers := r.handlers[topic]
	r.mu.RUnlock()

	if len(handlers) == 0 {
		r.logger.Debug("No handler for topic", zap.String("topic", topic))
		return
	}

	// A per-message id so multi-instance dispatch of the same trigger can be
	// correlated in the logs.
	messageID := uuid.NewString()

	for i, handler := range handlers {
		r.runHandler(ctx, topic, messageID, i, handler, payload)
	}
}

func (r *Router) runHandler(ctx context.Context, topic, messageID string, i int, handler Handler, payload []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Pubsub handler panicked",
				zap.String("topic", topic),
				zap.String("message_id", messageID),
				zap.Int("handler", i),
				zap.Any("panic", rec),
			)
		}
	}()

	if err := handler(ctx, payload); err != nil {
		r.logger.Error("Pubsub handler failed",
			zap.String("topic", topic),
			zap.String("message_id", messageID),
			zap.Int("handler", i),
			zap.Error(err),
		)
	}
}

// Listen subscribes to every registered topic and dispatches messages until
// the context is cancelled. Topics must be registered before calling Listen.
func (r *Router) Listen(ctx context.Context, client *goredis.Client) error {
	topics := r.Topics()
	if len(topics) == 0 {
		return fmt.Errorf("no topics registered")
	}

	sub := client.Subscribe(ctx, topics...)
	defer sub.Close()

	// Fail early when the subscription itself could not be established.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	r.logger.Info("Listening on invalidation bus", zap.Strings("topics", topics))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.Dispatch(ctx, msg.Channel, []byte(msg.Payload))
		}
	}
}

// Publisher publishes control messages on the invalidation bus.
type Publisher struct {
	client *goredis.Client
	logger *zap.Logger
}

// NewPublisher creates a publisher over the shared Redis connection.
func NewPublisher(client *goredis.Client, logger *zap.Logger) *Publisher {
	return &Publisher{client: client, logger: logger}
}

// Publish broadcasts a payload on a topic, fire-and-forget. Only instances
// subscribed at publish time receive it; there is no replay log.
func (p *Publisher) Publish(ctx context.Context, topic string, payload []byte) error {
	if err := p.client.Publish(ctx, topic, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	p.logger.Debug("Published message", zap.String("topic", topic))
	return nil
}
