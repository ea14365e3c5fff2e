package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrNotConnected = errors.New("rabbitmq connection is not available")

// ChannelManager hands out a channel on the current connection and opens a
// new one after the previous channel or connection was closed.
type ChannelManager struct {
	connManager *ConnectionManager
	ctx         context.Context

	mu sync.Mutex
	ch *amqp.Channel
}

func NewChannelManager(ctx context.Context, connManager *ConnectionManager) *ChannelManager {
	return &ChannelManager{
		connManager: connManager,
		ctx:         ctx,
	}
}

func (m *ChannelManager) GetChannel() (*amqp.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ctx.Err(); err != nil {
		return nil, err
	}
	if m.ch != nil && !m.ch.IsClosed() {
		return m.ch, nil
	}

	conn := m.connManager.GetConnection()
	if conn == nil || conn.IsClosed() {
		return nil, ErrNotConnected
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	m.ch = ch
	return ch, nil
}

func (m *ChannelManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ch == nil || m.ch.IsClosed() {
		m.ch = nil
		return nil
	}
	err := m.ch.Close()
	m.ch = nil
	return err
}
