package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	amqp "github.com/rabbitmq/amqp091-go"

	"go-quickteller/internal/pkg/logger"
)

// MessageHandler processes one delivery. A nil error acks the delivery, any
// other error rejects it without requeue so the broker can dead-letter it.
type MessageHandler func(ctx context.Context, msg *amqp.Delivery) error

type SubscribeOptions struct {
	QueueOpts      *QueueConfig
	QueueName      string
	ConsumerName   string
	WorkerCount    int
	PrefetchCount  int
	HandlerTimeout time.Duration
}

func DefaultSubscribeOptions(queueName string) *SubscribeOptions {
	return &SubscribeOptions{
		QueueName:      queueName,
		ConsumerName:   queueName,
		WorkerCount:    10,
		PrefetchCount:  10,
		HandlerTimeout: 2 * time.Minute,
	}
}

type Subscriber struct {
	channel   *ChannelManager
	handler   MessageHandler
	opts      *SubscribeOptions
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning atomic.Bool
	pool      *ants.Pool
}

func NewSubscriber(ctx context.Context, connManager *ConnectionManager, handler MessageHandler, opts *SubscribeOptions) (*Subscriber, error) {
	ctx, cancel := context.WithCancel(ctx)

	pool, err := ants.NewPool(opts.WorkerCount, ants.WithOptions(ants.Options{
		ExpiryDuration: time.Hour,
		Nonblocking:    false,
		PanicHandler: func(i any) {
			logger.Error.Printf("Worker panic: %v", i)
		},
	}))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	return &Subscriber{
		channel: NewChannelManager(ctx, connManager),
		handler: handler,
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
		pool:    pool,
	}, nil
}

func (s *Subscriber) Start() error {
	if s.isRunning.Swap(true) {
		return errors.New("subscriber is already running")
	}

	s.wg.Add(1)
	go s.run()
	return nil
}

func (s *Subscriber) run() {
	defer s.wg.Done()

	backoff := time.Second
	for s.isRunning.Load() && s.ctx.Err() == nil {
		if err := s.consume(); err != nil {
			logger.Warning.Printf("Subscriber %s consume error: %v. Retrying in %v", s.opts.QueueName, err, backoff)
			select {
			case <-s.ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, 30*time.Second)
			continue
		}
		backoff = time.Second
	}
}

func (s *Subscriber) consume() error {
	ch, err := s.channel.GetChannel()
	if err != nil {
		return err
	}

	if err := ch.Qos(s.opts.PrefetchCount, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	config := s.opts.QueueOpts
	if config == nil {
		config = DefaultQueueConfig()
	}
	q, err := ch.QueueDeclare(s.opts.QueueName, config.Durable, config.AutoDelete, config.Exclusive, config.NoWait, config.Args)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	consumerName := fmt.Sprintf("%s-%d", s.opts.ConsumerName, time.Now().Unix())
	msgs, err := ch.ConsumeWithContext(s.ctx, q.Name, consumerName, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	logger.Info.Printf("Subscriber consuming %s", q.Name)

	for msg := range msgs {
		delivery := msg
		s.wg.Add(1)
		if err := s.pool.Submit(func() {
			defer s.wg.Done()
			s.Process(&delivery)
		}); err != nil {
			s.wg.Done()
			logger.Error.Printf("Failed to submit message %s to pool: %v", delivery.MessageId, err)
			_ = delivery.Nack(false, true)
		}
	}

	if s.ctx.Err() != nil {
		return nil
	}
	return errors.New("delivery channel closed")
}

// Process runs the handler for one delivery and settles it.
func (s *Subscriber) Process(msg *amqp.Delivery) {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.HandlerTimeout)
	defer cancel()

	if err := s.handler(ctx, msg); err != nil {
		logger.Error.Printf("Failed to process message %s from %s: %v", msg.MessageId, s.opts.QueueName, err)
		if nackErr := msg.Nack(false, false); nackErr != nil {
			logger.Error.Printf("Failed to nack message %s: %v", msg.MessageId, nackErr)
		}
		return
	}

	if err := msg.Ack(false); err != nil {
		logger.Error.Printf("Failed to ack message %s: %v", msg.MessageId, err)
	}
}

func (s *Subscriber) Stop() error {
	if !s.isRunning.Swap(false) {
		return nil
	}

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Minute):
		return errors.New("timeout waiting for workers to stop")
	}

	if err := s.channel.Close(); err != nil {
		logger.Error.Printf("Error closing subscriber channel: %v", err)
	}
	s.pool.Release()
	return nil
}

func (s *Subscriber) IsHealthy() bool {
	return s.isRunning.Load() && s.ctx.Err() == nil
}
