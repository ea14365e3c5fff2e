package serverApp

import (
	"context"
	"fmt"

	"go-quickteller/internal/pkg/logger"
	"go-quickteller/internal/pkg/rabbitmq"
	billService "go-quickteller/internal/service/bill"
)

type WorkerConfig struct {
	AdviceQueue string
	PoolSize    int
}

// InitWorker starts the queued bill payment advice consumer. The returned
// subscriber must be stopped on shutdown.
func InitWorker(ctx context.Context, rb *rabbitmq.ConnectionManager, svc billService.IService, cfg *WorkerConfig) (*rabbitmq.Subscriber, error) {
	opts := rabbitmq.DefaultSubscribeOptions(cfg.AdviceQueue)
	opts.QueueOpts = rabbitmq.DefaultQueueConfig()
	if cfg.PoolSize > 0 {
		opts.WorkerCount = cfg.PoolSize
		opts.PrefetchCount = cfg.PoolSize
	}

	subscriber, err := rabbitmq.NewSubscriber(ctx, rb, svc.HandleAdviceMessage, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create advice subscriber: %w", err)
	}

	if err := subscriber.Start(); err != nil {
		return nil, fmt.Errorf("failed to start advice subscriber: %w", err)
	}

	logger.Info.Printf("Advice worker consuming %s with %d workers", cfg.AdviceQueue, opts.WorkerCount)
	return subscriber, nil
}
