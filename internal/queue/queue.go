package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/kyolabs/honorary-fee-crank/internal/config"
	"github.com/kyolabs/honorary-fee-crank/internal/observability/metrics"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

const (
	exchangeKind = "topic"
	contentType  = "application/json"
)

//go:generate mockery --name=EventPublisher --output=../../testutil/mocks --outpkg=mocks --filename=mock_event_publisher.go
type EventPublisher interface {
	// PublishEvent delivers ev to the distribution exchange, routed by its type.
	PublishEvent(ctx context.Context, ev *types.Event) error
}

type QueueManager struct {
	cfg  *config.QueueConfig
	conn *amqp.Connection

	// amqp channels are not safe for concurrent publishing
	mu      sync.Mutex
	channel *amqp.Channel
}

func NewQueueManager(cfg *config.QueueConfig) (*QueueManager, error) {
	conn, err := amqp.DialConfig(cfg.Url, amqp.Config{
		SASL: []amqp.Authentication{&amqp.PlainAuth{
			Username: cfg.QueueUser,
			Password: cfg.QueuePassword,
		}},
		Heartbeat: 10 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to queue: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open queue channel: %w", err)
	}

	if err := channel.ExchangeDeclare(cfg.Exchange, exchangeKind, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	if err := channel.Confirm(false); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	return &QueueManager{
		cfg:     cfg,
		conn:    conn,
		channel: channel,
	}, nil
}

func (qm *QueueManager) PublishEvent(ctx context.Context, ev *types.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", ev.ID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, qm.cfg.PublishTimeout)
	defer cancel()

	if err := qm.publish(ctx, ev, body); err != nil {
		metrics.RecordQueueSendError()
		log.Ctx(ctx).Error().
			Err(err).
			Str("event_id", ev.ID).
			Stringer("event_type", ev.Type).
			Msg("failed to publish event")
		return err
	}
	return nil
}

func (qm *QueueManager) publish(ctx context.Context, ev *types.Event, body []byte) error {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	confirm, err := qm.channel.PublishWithDeferredConfirmWithContext(
		ctx, qm.cfg.Exchange, ev.Type.String(), false, false,
		amqp.Publishing{
			ContentType:  contentType,
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.ID,
			Type:         ev.Type.String(),
			Timestamp:    time.Unix(ev.Timestamp, 0),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event %s: %w", ev.ID, err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to confirm event %s: %w", ev.ID, err)
	}
	if !acked {
		return errors.New("event " + ev.ID + " was nacked by the broker")
	}
	return nil
}

// Shutdown gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Shutdown() {
	log.Info().Msg("Shutting down queue manager")

	qm.mu.Lock()
	defer qm.mu.Unlock()

	if err := qm.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		log.Error().Err(err).Msg("failed to close queue channel")
	}
	if err := qm.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		log.Error().Err(err).Msg("failed to close queue connection")
	}
}

// NoopPublisher drops every event. It backs one-shot commands that run without a broker.
type NoopPublisher struct{}

func (NoopPublisher) PublishEvent(ctx context.Context, ev *types.Event) error {
	log.Ctx(ctx).Debug().Str("event_id", ev.ID).Stringer("event_type", ev.Type).Msg("event not published")
	return nil
}
