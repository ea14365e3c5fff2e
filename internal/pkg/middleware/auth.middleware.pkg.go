package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	types "go-quickteller/internal/common/type"
	"go-quickteller/internal/pkg/helper"
	"go-quickteller/internal/pkg/jwt"
)

const ClientKey = "client"

// AuthMiddleware requires a bearer token signed by manager and stores the
// authenticated ApiClient under ClientKey.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		send := c.MustGet("send").(func(r *types.Response))

		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if token == "" {
			send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "token not found"}))
			return
		}

		client, err := manager.ValidateToken(token)
		if err != nil {
			send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "invalid token", Error: err}))
			return
		}

		c.Set(ClientKey, *client)
		c.Next()
	}
}

// RequireScope rejects clients whose token lacks scope. Requests without an
// authenticated client pass through, which is the case when auth is disabled.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ClientKey)
		if !exists {
			c.Next()
			return
		}

		client, ok := value.(types.ApiClient)
		if !ok || !client.HasScope(scope) {
			send := c.MustGet("send").(func(r *types.Response))
			send(helper.ParseResponse(&types.Response{Code: http.StatusForbidden, Message: "missing scope " + scope}))
			return
		}
		c.Next()
	}
}
