package rabbitmq

import (
	"context"
	"fmt"
	"sync"

	"go-quickteller/internal/pkg/logger"
)

// Publisher sends messages to a single topic exchange.
type Publisher struct {
	channel  *ChannelManager
	exchange string

	mu         sync.Mutex
	isDeclared bool
}

func NewPublisher(ctx context.Context, connManager *ConnectionManager, exchange string) *Publisher {
	return &Publisher{
		channel:  NewChannelManager(ctx, connManager),
		exchange: exchange,
	}
}

func (p *Publisher) declare() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isDeclared {
		return nil
	}

	ch, err := p.channel.GetChannel()
	if err != nil {
		return err
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", p.exchange, err)
	}
	p.isDeclared = true
	return nil
}

// Publish encodes payload and routes it with routingKey, which also becomes
// the message type.
func (p *Publisher) Publish(ctx context.Context, routingKey string, payload any) error {
	if err := p.declare(); err != nil {
		return err
	}

	msg, err := NewMessage(routingKey, payload, nil)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	ch, err := p.channel.GetChannel()
	if err != nil {
		return err
	}

	if err := ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg.GeneratePayload()); err != nil {
		p.mu.Lock()
		p.isDeclared = false
		p.mu.Unlock()
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}

	logger.Debug.Printf("Published %s message %s to %s", routingKey, msg.ID, p.exchange)
	return nil
}

func (p *Publisher) Close() error {
	return p.channel.Close()
}
