package bill

import (
	"context"
	"time"

	types "go-quickteller/internal/common/type"
	"go-quickteller/internal/pkg/quickteller"
	"go-quickteller/internal/pkg/redis"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Quickteller is the part of *quickteller.Client the service depends on.
type Quickteller interface {
	CheckInitialized() error
	GetBillerCategories(ctx context.Context) ([]quickteller.Category, error)
	GetBillers(ctx context.Context, params quickteller.GetBillersParams) ([]quickteller.Biller, error)
	GetLatestBillers(ctx context.Context) ([]quickteller.Biller, error)
	GetBillerPaymentItems(ctx context.Context, billerID string) ([]quickteller.PaymentItem, error)
	ValidateCustomer(ctx context.Context, params quickteller.ValidateCustomerParams) (*quickteller.Customer, error)
	SendBillPaymentAdvice(ctx context.Context, params quickteller.BillPaymentAdviceParams) (*quickteller.BillPaymentAdviceResult, error)
	QueryTransaction(ctx context.Context, requestReference string) (*quickteller.Transaction, error)
}

// EventPublisher sends advice outcome events. *rabbitmq.Publisher implements it.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type Service struct {
	ctx            context.Context
	qt             Quickteller
	redis          redis.IRedis
	publisher      EventPublisher
	idempotencyTTL time.Duration
}

type IService interface {
	Ready() error
	GetBillerCategories(ctx context.Context) *types.Response
	GetBillers(ctx context.Context, req *GetBillersRequest) *types.Response
	GetLatestBillers(ctx context.Context) *types.Response
	GetBillerPaymentItems(ctx context.Context, billerID string) *types.Response
	ValidateCustomer(ctx context.Context, req *ValidateCustomerRequest) *types.Response
	SendBillPaymentAdvice(ctx context.Context, req *BillPaymentAdviceRequest, idempotencyKey string) *types.Response
	QueryTransaction(ctx context.Context, reference string) *types.Response
	ProcessAdvice(ctx context.Context, req *BillPaymentAdviceRequest) error
	HandleAdviceMessage(ctx context.Context, msg *amqp.Delivery) error
}

// NewService wires the bill operations. redis and publisher may be nil, which
// disables the idempotency gate and advice events respectively.
func NewService(ctx context.Context, qt Quickteller, redis redis.IRedis, publisher EventPublisher, idempotencyTTL time.Duration) IService {
	if idempotencyTTL <= 0 {
		idempotencyTTL = 24 * time.Hour
	}
	return &Service{
		ctx:            ctx,
		qt:             qt,
		redis:          redis,
		publisher:      publisher,
		idempotencyTTL: idempotencyTTL,
	}
}

// Request/Response DTOs

type GetBillersRequest struct {
	CategoryID string `form:"category_id" binding:"omitempty,numeric"`
	BillerID   string `form:"biller_id" binding:"omitempty,numeric"`
	ChannelID  string `form:"channel_id" binding:"omitempty,numeric"`
	BillerName string `form:"biller_name" binding:"omitempty,max=100"`
}

type ValidateCustomerRequest struct {
	PaymentCode             string `json:"payment_code" binding:"required"`
	CustomerID              string `json:"customer_id" binding:"required"`
	CustomerValidationField string `json:"customer_validation_field"`
	WithDetails             *bool  `json:"with_details"`
}

type BillPaymentAdviceRequest struct {
	Amount         string `json:"amount" binding:"required,amount" validate:"required,amount"`
	PaymentCode    string `json:"payment_code" binding:"required" validate:"required"`
	CustomerID     string `json:"customer_id" binding:"required" validate:"required"`
	CustomerMobile string `json:"customer_mobile" binding:"omitempty,phone" validate:"omitempty,phone"`
	CustomerEmail  string `json:"customer_email" binding:"omitempty,email" validate:"omitempty,email"`
	// CorrelationID is echoed in advice events so queued requests can be matched.
	CorrelationID string `json:"correlation_id,omitempty" binding:"omitempty,max=64" validate:"omitempty,max=64"`
}

func (r *BillPaymentAdviceRequest) params() quickteller.BillPaymentAdviceParams {
	return quickteller.BillPaymentAdviceParams{
		Amount:         r.Amount,
		PaymentCode:    r.PaymentCode,
		CustomerID:     r.CustomerID,
		CustomerMobile: r.CustomerMobile,
		CustomerEmail:  r.CustomerEmail,
	}
}

type ListResponse[T any] struct {
	Total int `json:"total"`
	Items []T `json:"items"`
}

func newList[T any](items []T) ListResponse[T] {
	return ListResponse[T]{Total: len(items), Items: items}
}

// ErrorDetail is the data of a failed Quickteller call.
type ErrorDetail struct {
	ResponseCode        string `json:"response_code,omitempty"`
	ResponseDescription string `json:"response_description,omitempty"`
	RequestReference    string `json:"request_reference,omitempty"`
}
