package serverApp

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go-quickteller/internal/pkg/jwt"
	"go-quickteller/internal/pkg/middleware"
	"go-quickteller/internal/pkg/rabbitmq"
	"go-quickteller/internal/pkg/redis"

	billHandler "go-quickteller/internal/handler/bill"
	billService "go-quickteller/internal/service/bill"

	"github.com/gin-gonic/gin"
)

const (
	healthy   = "healthy"
	unhealthy = "unhealthy"
	disabled  = "disabled"
)

// Dependencies are the shared clients the HTTP server and workers use.
// Redis, RabbitMQ and Auth are optional.
type Dependencies struct {
	Redis       redis.IRedis
	Rabbit      *rabbitmq.ConnectionManager
	Publisher   *rabbitmq.Publisher
	Auth        *jwt.Manager
	BillService billService.IService
}

// Setup initializes the HTTP server with middleware and routes
func Setup(engine *gin.Engine, ctx context.Context, wg *sync.WaitGroup, deps *Dependencies) {
	InitMiddleware(engine)

	engine.GET("/health", healthHandler(deps))

	e := engine.Group(BasePath())
	InitRoutes(e, ctx, wg, deps)
}

// BasePath returns the base API path
func BasePath() string {
	return "/api"
}

// InitMiddleware initializes global middleware
func InitMiddleware(e *gin.Engine) {
	e.Use(middleware.CorsMiddleware())
	e.Use(middleware.RequestInit())
	e.Use(middleware.ResponseInit())
}

func InitRoutes(e *gin.RouterGroup, ctx context.Context, wg *sync.WaitGroup, deps *Dependencies) {
	// === Bills ===
	BillHandler := billHandler.NewHandler(ctx, deps.BillService, deps.Auth)
	BillHandler.NewRoutes(e)
}

// healthHandler reports 503 when Quickteller is not ready. Redis and RabbitMQ
// are reported but only degrade the status when configured.
func healthHandler(deps *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK

		quicktellerHealth := healthy
		if err := deps.BillService.Ready(); err != nil {
			quicktellerHealth = unhealthy
			status = http.StatusServiceUnavailable
		}

		redisHealth := disabled
		if deps.Redis != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			redisHealth = healthy
			if err := deps.Redis.Ping(ctx); err != nil {
				redisHealth = unhealthy
				status = http.StatusServiceUnavailable
			}
		}

		rabbitmqHealth := disabled
		if deps.Rabbit != nil {
			rabbitmqHealth = unhealthy
			if conn := deps.Rabbit.GetConnection(); conn != nil && !conn.IsClosed() {
				rabbitmqHealth = healthy
			} else {
				status = http.StatusServiceUnavailable
			}
		}

		c.JSON(status, gin.H{
			"status": status,
			"service": gin.H{
				"quickteller": gin.H{
					"status": quicktellerHealth,
				},
				"redis": gin.H{
					"status": redisHealth,
				},
				"rabbitmq": gin.H{
					"status": rabbitmqHealth,
				},
			},
		})
	}
}
