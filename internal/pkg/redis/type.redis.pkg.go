package redis

import (
	"context"
	"time"

	_redis "github.com/redis/go-redis/v9"
)

// NilType is returned by go-redis when a key does not exist.
var NilType = _redis.Nil

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	PoolSize int
	// Addr overrides Host and Port when set.
	Addr string
}

// IRedis is the subset of Redis used by the application.
type IRedis interface {
	Ping(ctx context.Context) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, expiration time.Duration) error
	Close() error
}

type Client struct {
	Client *_redis.Client
	config *Config
	ctx    context.Context
	cancel context.CancelFunc
}

var _ IRedis = (*Client)(nil)
