package mq

import (
	"context"
	"sync"

	"parking-booking/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

type connection interface {
	channel() (channel, error)
	NotifyClose(receiver chan *amqp.Error) chan *amqp.Error
	IsClosed() bool
	Close() error
}

type amqpConnection struct {
	*amqp.Connection
}

func (c amqpConnection) channel() (channel, error) {
	return c.Channel()
}

// Publisher sends booking events to a durable topic exchange. A dropped
// connection is noticed through NotifyClose and redialled on the next Publish.
type Publisher struct {
	dial     func() (connection, error)
	exchange string

	mu     sync.Mutex
	conn   connection
	ch     channel
	closed chan *amqp.Error
}

// NewPublisher connects and declares the exchange; routing keys are booking
// event topics such as booking.created.
func NewPublisher(url, exchange string) (*Publisher, error) {
	return newPublisher(func() (connection, error) {
		conn, err := amqp.Dial(url)
		if err != nil {
			return nil, err
		}
		return amqpConnection{conn}, nil
	}, exchange)
}

func newPublisher(dial func() (connection, error), exchange string) (*Publisher, error) {
	p := &Publisher{dial: dial, exchange: exchange}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

// connect requires p.mu held once the publisher is shared.
func (p *Publisher) connect() error {
	conn, err := p.dial()
	if err != nil {
		return errs.Wrap(err, "dial rabbitmq")
	}
	ch, err := conn.channel()
	if err != nil {
		_ = conn.Close()
		return errs.Wrap(err, "open channel")
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return errs.Wrap(err, "declare exchange")
	}
	p.conn, p.ch = conn, ch
	p.closed = conn.NotifyClose(make(chan *amqp.Error, 1))
	return nil
}

func (p *Publisher) healthy() bool {
	if p.conn == nil || p.ch == nil {
		return false
	}
	select {
	case <-p.closed:
		return false
	default:
	}
	return !p.conn.IsClosed() && !p.ch.IsClosed()
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch, p.closed = nil, nil, nil
}

func (p *Publisher) Publish(ctx context.Context, topic string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.healthy() {
		p.reset()
		if err := p.connect(); err != nil {
			return errs.Wrap(err, "reconnect rabbitmq")
		}
	}

	err := p.ch.PublishWithContext(ctx, p.exchange, topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return errs.Wrapf(err, "publish %s", topic)
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
	}
	var err error
	if p.conn != nil {
		err = p.conn.Close()
	}
	p.conn, p.ch, p.closed = nil, nil, nil
	return err
}
