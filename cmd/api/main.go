package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	config "go-quickteller/configs"
	"go-quickteller/internal/common/enum"
	"go-quickteller/internal/pkg/jwt"
	"go-quickteller/internal/pkg/logger"
	"go-quickteller/internal/pkg/quickteller"
	"go-quickteller/internal/pkg/rabbitmq"
	"go-quickteller/internal/pkg/redis"
	"go-quickteller/internal/pkg/validation"
	serverApp "go-quickteller/internal/server"
	billService "go-quickteller/internal/service/bill"

	"github.com/gin-gonic/gin"
)

func main() {
	env, err := config.GetEnv()
	if err != nil {
		logger.Error.Println("Error getting environment", err)
		panic(err)
	}

	logger.Setup(env.LogLevel)
	defer logger.Sync()

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	// Setup Redis
	redisClient, err := setupRedis(ctx, env)
	if err != nil {
		logger.Error.Println("Error setting up Redis", err)
		cancel()
		return
	}

	// Setup RabbitMQ
	rabbit, err := setupRabbitMQ(ctx, env)
	if err != nil {
		logger.Error.Println("Error setting up RabbitMQ", err)
		cancel()
		_ = redisClient.Close()
		return
	}

	// Setup Quickteller
	qt, err := setupQuickteller(ctx, env)
	if err != nil {
		logger.Error.Println("Error setting up Quickteller", err)
		cancel()
		_ = redisClient.Close()
		_ = rabbit.Close()
		return
	}

	// Setup Server
	setupServer(&config.SetupServerDto{
		Rds:    redisClient,
		Env:    env,
		Ctx:    &ctx,
		Cancel: cancel,
		Wg:     &wg,
		Rb:     rabbit,
		Qt:     qt,
	})
}

func setupRedis(ctx context.Context, env *config.Config) (redis.IRedis, error) {
	return redis.Setup(ctx, &redis.Config{
		Host:     env.RedisHost,
		Username: env.RedisUser,
		Port:     env.RedisPort,
		Password: env.RedisPass,
		PoolSize: env.RedisPoolSize,
	})
}

func setupRabbitMQ(ctx context.Context, env *config.Config) (*rabbitmq.ConnectionManager, error) {
	return rabbitmq.NewConnectionManager(ctx, &rabbitmq.Config{
		Username: env.RabbitUser,
		Password: env.RabbitPass,
		Host:     env.RabbitHost,
		Port:     env.RabbitPort,
	})
}

func setupQuickteller(ctx context.Context, env *config.Config) (*quickteller.Client, error) {
	qt := quickteller.New(&quickteller.Config{
		Namespace:     env.QuicktellerNamespace,
		Timeout:       env.QuicktellerTimeoutDuration(),
		SkipTLSVerify: env.QuicktellerSkipTLSVerify,
		ProxyURL:      env.QuicktellerProxyURL,
	})

	initCtx, cancel := context.WithTimeout(ctx, env.QuicktellerTimeoutDuration())
	defer cancel()

	if err := qt.Init(initCtx, env.QuicktellerSoapURL, env.QuicktellerTerminalID, env.QuicktellerRequestPrefix); err != nil {
		return nil, err
	}
	logger.Info.Printf("Quickteller client ready for terminal %s", env.QuicktellerTerminalID)
	return qt, nil
}

func setupServer(payload *config.SetupServerDto) {
	rds := payload.Rds
	env := payload.Env
	ctx := payload.Ctx
	cancel := payload.Cancel
	wg := payload.Wg
	rb := payload.Rb
	qt := payload.Qt

	defer func() {
		if rds != nil {
			_ = rds.Close()
		}
		cancel()
		wg.Wait()
		if rb != nil {
			_ = rb.Close()
		}
	}()

	err := validation.Setup()
	if err != nil {
		logger.Error.Println("Failed to setup validation")
		panic(err)
	}

	if env.AppEnv == enum.PRODUCTION {
		gin.SetMode(gin.ReleaseMode)
	}
	e := gin.New()
	e.Use(gin.Recovery())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", env.AppPort),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	publisher := rabbitmq.NewPublisher(*ctx, rb, env.AdviceEventExchange)
	defer func() {
		_ = publisher.Close()
	}()

	var auth *jwt.Manager
	if env.AuthEnabled {
		auth = jwt.NewManager(env.JWTSecret)
	}

	svc := billService.NewService(*ctx, qt, rds, publisher, env.IdempotencyTTLDuration())

	serverApp.Setup(e, *ctx, wg, &serverApp.Dependencies{
		Redis:       rds,
		Rabbit:      rb,
		Publisher:   publisher,
		Auth:        auth,
		BillService: svc,
	})

	if env.WorkerEnabled {
		subscriber, err := serverApp.InitWorker(*ctx, rb, svc, &serverApp.WorkerConfig{
			AdviceQueue: env.AdviceQueue,
			PoolSize:    env.WorkerPoolSize,
		})
		if err != nil {
			logger.Error.Println("Failed to start advice worker", err)
			panic(err)
		}
		defer func() {
			if err := subscriber.Stop(); err != nil {
				logger.Error.Println("Failed to stop advice worker", err)
			}
		}()
	}

	go func() {
		logger.HTTP.Println("========= Server Started =========")
		logger.HTTP.Println("=========", env.AppPort, "=========")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error.Println("Server error:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	logger.HTTP.Println("========= Server Shutting Down =========")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
}
