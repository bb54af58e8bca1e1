// producer.go
package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// amqpChannel is the slice of *amqp091.Channel the producer uses,
// narrowed so tests can substitute the broker.
type amqpChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	IsClosed() bool
	Close() error
}

type amqpConnection interface {
	Close() error
}

func dialAMQP(url string) (amqpConnection, amqpChannel, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	return conn, ch, nil
}

// Producer owns one long-lived connection and channel to the broker.
// The first publish pays the connect cost; the mutex makes sure
// concurrent first calls never open duplicate connections. There is no
// retry and no dead-letter queue: a failed publish is the caller's
// problem to log and forget.
type Producer struct {
	url  string
	log  *zap.Logger
	dial func(url string) (amqpConnection, amqpChannel, error)

	mu   sync.Mutex
	conn amqpConnection
	ch   amqpChannel
}

func NewProducer(url string, log *zap.Logger) *Producer {
	return &Producer{url: url, log: log, dial: dialAMQP}
}

// Connect establishes the connection eagerly. Optional; Publish connects
// lazily when needed.
func (p *Producer) Connect() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ensureChannel()
}

func (p *Producer) ensureChannel() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
		p.ch = nil
	}

	conn, ch, err := p.dial(p.url)
	if err != nil {
		return err
	}

	p.conn = conn
	p.ch = ch
	p.log.Info("connected to RabbitMQ", zap.String("url", p.url))
	return nil
}

// Publish declares the queue (durable, created if absent) and sends the
// payload as persistent JSON.
func (p *Producer) Publish(queue string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannel(); err != nil {
		return err
	}

	if _, err := p.ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %q: %w", queue, err)
	}

	err = p.ch.PublishWithContext(context.Background(), "", queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to queue %q: %w", queue, err)
	}

	p.log.Debug("message sent to queue", zap.String("queue", queue))
	return nil
}

// PublishToExchange declares the exchange (durable) and publishes with
// the given routing key. Used by the generic message endpoints.
func (p *Producer) PublishToExchange(exchange, routingKey string, payload any, kind string) error {
	if kind == "" {
		kind = "direct"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannel(); err != nil {
		return err
	}

	if err := p.ch.ExchangeDeclare(exchange, kind, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	err = p.ch.PublishWithContext(context.Background(), exchange, routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to exchange %q: %w", exchange, err)
	}

	p.log.Debug("message published to exchange",
		zap.String("exchange", exchange),
		zap.String("routingKey", routingKey),
	)
	return nil
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	if p.ch != nil {
		if err := p.ch.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.ch = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.conn = nil
	}
	return firstErr
}
