package bill

import (
	"context"
	"net/http"
	"strings"

	types "go-quickteller/internal/common/type"
	"go-quickteller/internal/pkg/helper"
	"go-quickteller/internal/pkg/jwt"
	billService "go-quickteller/internal/service/bill"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx         context.Context
	billService billService.IService
	auth        *jwt.Manager
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

// NewHandler creates the bill handler. A nil auth manager leaves the routes
// unauthenticated.
func NewHandler(ctx context.Context, billService billService.IService, auth *jwt.Manager) IHandler {
	return &Handler{
		ctx:         ctx,
		billService: billService,
		auth:        auth,
	}
}

// GetBillerCategories godoc
// @Summary      List biller categories
// @Tags         Bills
// @Produce      json
// @Success      200  {object}  types.ResponseAPI
// @Failure      502  {object}  types.ResponseAPI
// @Router       /v1/bills/categories [get]
func (h *Handler) GetBillerCategories(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.billService.GetBillerCategories(c.Request.Context()))
}

// GetBillers godoc
// @Summary      Search billers
// @Tags         Bills
// @Produce      json
// @Param        category_id  query  string  false  "Category id"
// @Param        biller_id    query  string  false  "Biller id"
// @Param        channel_id   query  string  false  "Channel id"
// @Param        biller_name  query  string  false  "Biller name"
// @Success      200  {object}  types.ResponseAPI
// @Failure      404  {object}  types.ResponseAPI
// @Router       /v1/bills/billers [get]
func (h *Handler) GetBillers(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req billService.GetBillersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid query parameters",
			Error:   err,
		}))
		return
	}

	send(h.billService.GetBillers(c.Request.Context(), &req))
}

// GetLatestBillers godoc
// @Summary      List newly added billers
// @Tags         Bills
// @Produce      json
// @Success      200  {object}  types.ResponseAPI
// @Failure      502  {object}  types.ResponseAPI
// @Router       /v1/bills/billers/latest [get]
func (h *Handler) GetLatestBillers(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	send(h.billService.GetLatestBillers(c.Request.Context()))
}

// GetBillerPaymentItems godoc
// @Summary      List the payment items of a biller
// @Tags         Bills
// @Produce      json
// @Param        biller_id  path  string  true  "Biller id"
// @Success      200  {object}  types.ResponseAPI
// @Failure      404  {object}  types.ResponseAPI
// @Router       /v1/bills/billers/{biller_id}/payment-items [get]
func (h *Handler) GetBillerPaymentItems(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	billerID := strings.TrimSpace(c.Param("biller_id"))
	if billerID == "" {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "biller_id is required",
		}))
		return
	}

	send(h.billService.GetBillerPaymentItems(c.Request.Context(), billerID))
}

// ValidateCustomer godoc
// @Summary      Validate a customer against a payment item
// @Tags         Bills
// @Accept       json
// @Produce      json
// @Param        request  body  billService.ValidateCustomerRequest  true  "Customer"
// @Success      200  {object}  types.ResponseAPI{data=quickteller.Customer}
// @Failure      400  {object}  types.ResponseAPI
// @Failure      422  {object}  types.ResponseAPI
// @Router       /v1/bills/customers/validate [post]
func (h *Handler) ValidateCustomer(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req billService.ValidateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.billService.ValidateCustomer(c.Request.Context(), &req))
}

// SendBillPaymentAdvice godoc
// @Summary      Pay a bill
// @Description  Sends a bill payment advice. Requests carrying the same Idempotency-Key and body are processed once.
// @Tags         Bills
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Idempotency key"
// @Param        request  body  billService.BillPaymentAdviceRequest  true  "Advice"
// @Success      200  {object}  types.ResponseAPI{data=quickteller.BillPaymentAdviceResult}
// @Failure      400  {object}  types.ResponseAPI
// @Failure      409  {object}  types.ResponseAPI
// @Failure      422  {object}  types.ResponseAPI
// @Failure      502  {object}  types.ResponseAPI
// @Router       /v1/bills/payments/advice [post]
func (h *Handler) SendBillPaymentAdvice(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req billService.BillPaymentAdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	key := strings.TrimSpace(c.GetHeader(billService.IdempotencyKeyHeader))
	send(h.billService.SendBillPaymentAdvice(c.Request.Context(), &req, key))
}

// QueryTransaction godoc
// @Summary      Query a transaction by request reference
// @Tags         Bills
// @Produce      json
// @Param        reference  path  string  true  "Request reference"
// @Success      200  {object}  types.ResponseAPI{data=quickteller.Transaction}
// @Failure      404  {object}  types.ResponseAPI
// @Router       /v1/bills/transactions/{reference} [get]
func (h *Handler) QueryTransaction(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	reference := strings.TrimSpace(c.Param("reference"))
	if reference == "" {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "reference is required",
		}))
		return
	}

	send(h.billService.QueryTransaction(c.Request.Context(), reference))
}
