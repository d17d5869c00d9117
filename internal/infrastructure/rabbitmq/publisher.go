// Package rabbitmq provides the durable-queue event publisher. A background
// goroutine owns the broker connection and walks it through
// disconnected → connecting → ready, falling back to reconnecting with
// exponential backoff when the broker drops. Publish refuses work unless the
// connection is ready, so callers can answer 503 instead of losing events.
package rabbitmq

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/commercelab/microshop/internal/core/domain/apperror"
	"github.com/commercelab/microshop/internal/core/ports"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	reconnectBaseDelay = time.Second
	reconnectMaxDelay  = 30 * time.Second
)

type Publisher struct {
	url    string
	queues []string
	logger *logrus.Logger

	state atomic.Int32

	// mu guards conn/ch so concurrent publishes never interleave on the
	// shared channel and reconnects can swap it out safely.
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel

	closed chan struct{}
}

// NewPublisher creates a publisher for the given broker URL and queue names.
// Call Run to establish and maintain the connection.
func NewPublisher(url string, queues []string, logger *logrus.Logger) *Publisher {
	p := &Publisher{
		url:    url,
		queues: queues,
		logger: logger,
		closed: make(chan struct{}),
	}
	p.state.Store(int32(ports.StateDisconnected))
	return p
}

func (p *Publisher) State() ports.ConnectionState {
	return ports.ConnectionState(p.state.Load())
}

func (p *Publisher) Ready() bool { return p.State() == ports.StateReady }

func (p *Publisher) setState(s ports.ConnectionState) {
	p.state.Store(int32(s))
	p.logger.WithField("state", s.String()).Info("broker connection state changed")
}

// Run maintains the broker connection until ctx is cancelled or Close is
// called. It returns after the connection is torn down.
func (p *Publisher) Run(ctx context.Context) {
	delay := reconnectBaseDelay
	first := true
	for {
		if first {
			p.setState(ports.StateConnecting)
		} else {
			p.setState(ports.StateReconnecting)
		}

		closeCh, err := p.connect()
		if err != nil {
			p.logger.WithError(err).Warn("broker connection attempt failed")
			select {
			case <-ctx.Done():
				p.teardown(ports.StateDisconnected)
				return
			case <-p.closed:
				return
			case <-time.After(jitter(delay)):
			}
			delay *= 2
			if delay > reconnectMaxDelay {
				delay = reconnectMaxDelay
			}
			continue
		}

		first = false
		delay = reconnectBaseDelay
		p.setState(ports.StateReady)

		select {
		case <-ctx.Done():
			p.teardown(ports.StateDisconnected)
			return
		case <-p.closed:
			return
		case amqpErr := <-closeCh:
			if amqpErr != nil {
				p.logger.WithError(amqpErr).Warn("broker connection lost")
			}
		}
	}
}

// connect dials the broker, opens a confirm-mode channel and declares the
// durable queues. Declaration is idempotent, so it runs on every (re)connect.
func (p *Publisher) connect() (chan *amqp.Error, error) {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		conn.Close()
		return nil, err
	}
	for _, q := range p.queues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			conn.Close()
			return nil, err
		}
	}

	closeCh := conn.NotifyClose(make(chan *amqp.Error, 1))

	p.mu.Lock()
	p.conn = conn
	p.ch = ch
	p.mu.Unlock()

	return closeCh, nil
}

func (p *Publisher) teardown(next ports.ConnectionState) {
	p.mu.Lock()
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn = nil
	p.ch = nil
	p.mu.Unlock()
	p.setState(next)
}

// Publish serializes event to JSON and enqueues it as a persistent message,
// waiting for broker acknowledgment bounded by ctx. A timeout or nack is
// surfaced as DependencyUnavailable so the caller can decide on compensation.
func (p *Publisher) Publish(ctx context.Context, queue string, event any) error {
	if !p.Ready() {
		return apperror.Unavailable("event broker is not connected", nil)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return apperror.Internal("failed to serialize event", err)
	}

	p.mu.Lock()
	ch := p.ch
	if ch == nil {
		p.mu.Unlock()
		return apperror.Unavailable("event broker is not connected", nil)
	}
	confirmation, err := ch.PublishWithDeferredConfirmWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	p.mu.Unlock()
	if err != nil {
		return apperror.Unavailable("failed to enqueue event", err)
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return apperror.Unavailable("timed out waiting for broker acknowledgment", err)
	}
	if !acked {
		return apperror.Unavailable("broker rejected the event", nil)
	}
	return nil
}

// Close tears the connection down for good. The publisher does not reconnect
// afterwards.
func (p *Publisher) Close() error {
	select {
	case <-p.closed:
		return nil
	default:
		close(p.closed)
	}
	p.teardown(ports.StateFatal)
	return nil
}

// jitter spreads d over [d/2, d) so reconnecting replicas do not dial in step.
func jitter(d time.Duration) time.Duration {
	half := d / 2
	return half + time.Duration(rand.Int63n(int64(half)))
}

var _ ports.EventPublisher = (*Publisher)(nil)
