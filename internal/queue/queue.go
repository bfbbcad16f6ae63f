package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/runebound-clan/competition-poller/internal/config"
)

const exchangeKind = "topic"

var ErrQueueShutdown = errors.New("queue manager is shut down")

// QueueManager publishes to a durable topic exchange with publisher confirms.
// A channel or connection closed by the broker is reopened on the next publish.
type QueueManager struct {
	cfg  *config.QueueConfig
	addr string

	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	shutdown bool
}

func NewQueueManager(cfg *config.QueueConfig) (*QueueManager, error) {
	addr, err := queueURL(cfg)
	if err != nil {
		return nil, err
	}

	qm := &QueueManager{
		cfg:  cfg,
		addr: addr,
	}
	if _, err := qm.channel(); err != nil {
		if qm.conn != nil {
			qm.conn.Close()
		}
		return nil, err
	}
	return qm, nil
}

// PushContributionEvent publishes ev and waits for the broker confirmation
func (qm *QueueManager) PushContributionEvent(ctx context.Context, ev *ContributionEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal contribution event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, qm.cfg.PublishTimeout)
	defer cancel()

	qm.mu.Lock()
	ch, err := qm.channel()
	if err != nil {
		qm.mu.Unlock()
		return fmt.Errorf("failed to publish contribution event %s: %w", ev.SubmissionID, err)
	}
	confirmation, err := ch.PublishWithDeferredConfirmWithContext(ctx, qm.cfg.Exchange, ev.RoutingKey(), false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.SubmissionID,
			Timestamp:    time.Now(),
			Body:         body,
		})
	qm.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish contribution event %s: %w", ev.SubmissionID, err)
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to confirm contribution event %s: %w", ev.SubmissionID, err)
	}
	if !acked {
		return fmt.Errorf("contribution event %s was nacked by the broker", ev.SubmissionID)
	}
	return nil
}

// Shutdown gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Shutdown() {
	log.Info().Msg("Shutting down queue manager")

	qm.mu.Lock()
	defer qm.mu.Unlock()
	qm.shutdown = true

	if qm.ch != nil && !qm.ch.IsClosed() {
		if err := qm.ch.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close queue channel")
		}
	}
	if qm.conn != nil && !qm.conn.IsClosed() {
		if err := qm.conn.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close queue connection")
		}
	}
}

// channel returns an open confirm-mode channel, redialing when the connection is gone.
// qm.mu must be held, except in NewQueueManager.
func (qm *QueueManager) channel() (*amqp.Channel, error) {
	if qm.shutdown {
		return nil, ErrQueueShutdown
	}
	if qm.ch != nil && !qm.ch.IsClosed() {
		return qm.ch, nil
	}

	if qm.conn == nil || qm.conn.IsClosed() {
		conn, err := amqp.Dial(qm.addr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to queue: %w", err)
		}
		qm.conn = conn
		go logClose("connection", conn.NotifyClose(make(chan *amqp.Error, 1)))
	}

	ch, err := qm.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open queue channel: %w", err)
	}

	err = ch.ExchangeDeclare(qm.cfg.Exchange, exchangeKind, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", qm.cfg.Exchange, err)
	}

	// publisher confirms, a publish only succeeds once the broker took the message
	if err := ch.Confirm(false); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	if qm.ch != nil {
		log.Info().Str("exchange", qm.cfg.Exchange).Msg("Reopened queue channel")
	}
	qm.ch = ch
	go logClose("channel", ch.NotifyClose(make(chan *amqp.Error, 1)))
	return ch, nil
}

// logClose reports broker initiated closes, a graceful close delivers no error
func logClose(what string, closed <-chan *amqp.Error) {
	if err, ok := <-closed; ok && err != nil {
		log.Warn().
			Int("code", err.Code).
			Str("reason", err.Reason).
			Msgf("Queue %s closed, it is reopened on the next publish", what)
	}
}

func queueURL(cfg *config.QueueConfig) (string, error) {
	raw := cfg.URL
	if !strings.Contains(raw, "://") {
		raw = "amqp://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid queue url: %w", err)
	}
	if cfg.User != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	return u.String(), nil
}
