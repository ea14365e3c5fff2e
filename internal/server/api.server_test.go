package serverApp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-quickteller/internal/pkg/quickteller"
	"go-quickteller/internal/pkg/redis"
	billService "go-quickteller/internal/service/bill"
)

func newHealthEngine(t *testing.T, deps *Dependencies) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	e := gin.New()
	Setup(e, context.Background(), &sync.WaitGroup{}, deps)
	return e
}

func getHealth(t *testing.T, e *gin.Engine) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body["service"].(map[string]any)
}

func serviceStatus(services map[string]any, name string) string {
	return services[name].(map[string]any)["status"].(string)
}

func TestHealth_UninitializedClient(t *testing.T) {
	qt := quickteller.New(&quickteller.Config{})
	svc := billService.NewService(context.Background(), qt, nil, nil, 0)

	code, services := getHealth(t, newHealthEngine(t, &Dependencies{BillService: svc}))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, unhealthy, serviceStatus(services, "quickteller"))
	assert.Equal(t, disabled, serviceStatus(services, "redis"))
	assert.Equal(t, disabled, serviceStatus(services, "rabbitmq"))
}

func TestHealth_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rds, err := redis.Setup(context.Background(), &redis.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rds.Close() })

	qt := quickteller.New(&quickteller.Config{})
	svc := billService.NewService(context.Background(), qt, rds, nil, 0)
	e := newHealthEngine(t, &Dependencies{BillService: svc, Redis: rds})

	_, services := getHealth(t, e)
	assert.Equal(t, healthy, serviceStatus(services, "redis"))

	mr.Close()
	code, services := getHealth(t, e)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, unhealthy, serviceStatus(services, "redis"))
}
