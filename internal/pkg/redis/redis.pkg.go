package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_redis "github.com/redis/go-redis/v9"

	"go-quickteller/internal/pkg/logger"
)

func Setup(ctx context.Context, config *Config) (*Client, error) {
	clientCtx, cancel := context.WithCancel(ctx)

	r := &Client{
		cancel: cancel,
		ctx:    clientCtx,
		config: config,
	}

	if err := r.connect(); err != nil {
		cancel()
		logger.Error.Println(err)
		return nil, err
	}

	go r.reconnectHandler()

	return r, nil
}

func (r *Client) addr() string {
	if r.config.Addr != "" {
		return r.config.Addr
	}
	return fmt.Sprintf("%s:%d", r.config.Host, r.config.Port)
}

func (r *Client) connect() error {
	r.Client = _redis.NewClient(&_redis.Options{
		Addr:     r.addr(),
		Username: r.config.Username,
		Password: r.config.Password,
		PoolSize: r.config.PoolSize,
	})

	if err := r.Client.Ping(r.ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	return nil
}

func (r *Client) reconnectHandler() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			logger.Info.Println("Redis reconnect handler shutting down...")
			return
		case <-ticker.C:
			err := r.Client.Ping(r.ctx).Err()
			if err == nil || r.ctx.Err() != nil {
				continue
			}
			logger.Warning.Printf("Redis connection lost: %v. Attempting to reconnect...", err)

			for attempt := 1; r.ctx.Err() == nil; attempt++ {
				logger.Warning.Printf("Redis reconnect attempt #%d...", attempt)
				if err = r.connect(); err == nil {
					logger.Info.Println("Reconnected to Redis.")
					break
				}
				logger.Warning.Printf("Redis reconnect attempt failed: %v", err)
				time.Sleep(time.Duration(attempt) * time.Second)
			}
		}
	}
}

// Close gracefully shuts down the Redis connection.
func (r *Client) Close() error {
	r.cancel()
	return r.Client.Close()
}

func (r *Client) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// Set stores a JSON encoded value with an expiration time.
func (r *Client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.Client.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// SetNX stores a JSON encoded value only if key does not exist yet. It reports
// whether the value was stored.
func (r *Client) SetNX(ctx context.Context, key string, value any, expiration time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	ok, err := r.Client.SetNX(ctx, key, data, expiration).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return ok, nil
}

// Get retrieves the value of a key, or "" when it does not exist.
func (r *Client) Get(ctx context.Context, key string) (string, error) {
	result, err := r.Client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, NilType) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return result, nil
}

// Del deletes a key from Redis.
func (r *Client) Del(ctx context.Context, key string) error {
	err := r.Client.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Expire sets a timeout on a key.
func (r *Client) Expire(ctx context.Context, key string, expiration time.Duration) error {
	err := r.Client.Expire(ctx, key, expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to set expiration on key %s: %w", key, err)
	}
	return nil
}
