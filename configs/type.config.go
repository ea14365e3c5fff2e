package config

import (
	"context"
	"sync"
	"time"

	"go-quickteller/internal/common/enum"
	"go-quickteller/internal/pkg/quickteller"
	"go-quickteller/internal/pkg/rabbitmq"
	"go-quickteller/internal/pkg/redis"
)

// Config holds all application configuration loaded from environment variables
type Config struct {
	AppEnv   enum.EnvEnum `env:"APP_ENV" envDefault:"development"`
	AppPort  int          `env:"APP_PORT" envDefault:"8080" validate:"gt=0"`
	LogLevel string       `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	QuicktellerSoapURL       string `env:"QUICKTELLER_SOAP_URL" validate:"required,url"`
	QuicktellerTerminalID    string `env:"QUICKTELLER_TERMINAL_ID" validate:"required"`
	QuicktellerRequestPrefix string `env:"QUICKTELLER_REQUEST_PREFIX" validate:"required"`
	QuicktellerNamespace     string `env:"QUICKTELLER_NAMESPACE" envDefault:"http://services.interswitchng.com/quicktellerservice/"`
	QuicktellerTimeout       int    `env:"QUICKTELLER_TIMEOUT" envDefault:"60" validate:"gt=0"`
	QuicktellerSkipTLSVerify bool   `env:"QUICKTELLER_SKIP_TLS_VERIFY" envDefault:"false"`
	QuicktellerProxyURL      string `env:"QUICKTELLER_PROXY_URL" envDefault:"" validate:"omitempty,url"`

	RedisHost      string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort      int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisUser      string `env:"REDIS_USER" envDefault:"default"`
	RedisPass      string `env:"REDIS_PASS" envDefault:""`
	RedisPoolSize  int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	IdempotencyTTL int    `env:"IDEMPOTENCY_TTL" envDefault:"86400" validate:"gt=0"`

	RabbitHost          string `env:"RABBIT_HOST" envDefault:"localhost"`
	RabbitPort          int    `env:"RABBIT_PORT" envDefault:"5672"`
	RabbitUser          string `env:"RABBIT_USER" envDefault:"guest"`
	RabbitPass          string `env:"RABBIT_PASS" envDefault:"guest"`
	AdviceQueue         string `env:"ADVICE_QUEUE" envDefault:"bill.advice.requests" validate:"required"`
	AdviceEventExchange string `env:"ADVICE_EVENT_EXCHANGE" envDefault:"bill.events" validate:"required"`
	WorkerEnabled       bool   `env:"WORKER_ENABLED" envDefault:"true"`
	WorkerPoolSize      int    `env:"WORKER_POOL_SIZE" envDefault:"10" validate:"gt=0"`

	JWTSecret   string `env:"JWT_SECRET" envDefault:""`
	AuthEnabled bool   `env:"AUTH_ENABLED" envDefault:"false"`
}

func (c *Config) QuicktellerTimeoutDuration() time.Duration {
	return time.Duration(c.QuicktellerTimeout) * time.Second
}

func (c *Config) IdempotencyTTLDuration() time.Duration {
	return time.Duration(c.IdempotencyTTL) * time.Second
}

// SetupServerDto contains dependencies for server setup
type SetupServerDto struct {
	Ctx    *context.Context
	Cancel context.CancelFunc
	Wg     *sync.WaitGroup
	Env    *Config
	Rds    redis.IRedis
	Rb     *rabbitmq.ConnectionManager
	Qt     *quickteller.Client
}
