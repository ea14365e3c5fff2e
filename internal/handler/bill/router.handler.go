package bill

import (
	"go-quickteller/internal/pkg/middleware"

	"github.com/gin-gonic/gin"
)

const (
	ScopeRead = "bills:read"
	ScopePay  = "bills:pay"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	bills := e.Group("/v1/bills")
	if h.auth != nil {
		bills.Use(middleware.AuthMiddleware(h.auth))
	}

	bills.GET("/categories", middleware.RequireScope(ScopeRead), h.GetBillerCategories)
	bills.GET("/billers", middleware.RequireScope(ScopeRead), h.GetBillers)
	bills.GET("/billers/latest", middleware.RequireScope(ScopeRead), h.GetLatestBillers)
	bills.GET("/billers/:biller_id/payment-items", middleware.RequireScope(ScopeRead), h.GetBillerPaymentItems)
	bills.POST("/customers/validate", middleware.RequireScope(ScopeRead), h.ValidateCustomer)
	bills.POST("/payments/advice", middleware.RequireScope(ScopePay), h.SendBillPaymentAdvice)
	bills.GET("/transactions/:reference", middleware.RequireScope(ScopeRead), h.QueryTransaction)
}
