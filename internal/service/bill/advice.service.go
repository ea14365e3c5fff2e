package bill

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-quickteller/internal/common/enum"
	types "go-quickteller/internal/common/type"
	"go-quickteller/internal/pkg/helper"
	"go-quickteller/internal/pkg/logger"
	"go-quickteller/internal/pkg/quickteller"
	"go-quickteller/internal/pkg/validation"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/samber/lo"
)

// AdviceEvent is published after each bill payment advice attempt that
// reached a verdict.
type AdviceEvent struct {
	Event               enum.AdviceEvent `json:"event"`
	CorrelationID       string           `json:"correlation_id,omitempty"`
	RequestReference    string           `json:"request_reference,omitempty"`
	TransactionRef      string           `json:"transaction_ref,omitempty"`
	Amount              string           `json:"amount"`
	ApprovedAmount      string           `json:"approved_amount,omitempty"`
	PaymentCode         string           `json:"payment_code"`
	CustomerID          string           `json:"customer_id"`
	ResponseCode        string           `json:"response_code,omitempty"`
	ResponseDescription string           `json:"response_description,omitempty"`
	Message             string           `json:"message,omitempty"`
	OccurredAt          time.Time        `json:"occurred_at"`
}

func (s *Service) SendBillPaymentAdvice(ctx context.Context, req *BillPaymentAdviceRequest, idempotencyKey string) *types.Response {
	return s.withIdempotency(ctx, idempotencyKey, req, func() *types.Response {
		result, err := s.sendAdvice(ctx, req)
		if err != nil {
			return errorResponse(err)
		}

		return helper.ParseResponse(&types.Response{
			Code:    http.StatusOK,
			Message: "Bill payment advice sent successfully",
			Data:    result,
		})
	})
}

// ProcessAdvice handles a queued advice request. Only failures worth
// redelivering to a dead letter queue are returned: business rejections
// are reported through the failed event instead.
func (s *Service) ProcessAdvice(ctx context.Context, req *BillPaymentAdviceRequest) error {
	if err := validation.Validate(req); err != nil {
		logger.Warning.Printf("Discarding invalid advice request %s: %v", req.CorrelationID, err)
		s.publish(ctx, &AdviceEvent{
			Event:         enum.ADVICE_FAILED,
			CorrelationID: req.CorrelationID,
			Amount:        req.Amount,
			PaymentCode:   req.PaymentCode,
			CustomerID:    req.CustomerID,
			Message:       err.Error(),
		})
		return nil
	}

	_, err := s.sendAdvice(ctx, req)
	if err == nil {
		return nil
	}
	if _, ok := quickteller.AsError(err); ok {
		return nil
	}
	return err
}

// HandleAdviceMessage decodes a queued advice request and processes it.
func (s *Service) HandleAdviceMessage(ctx context.Context, msg *amqp.Delivery) error {
	var req BillPaymentAdviceRequest
	if err := json.Unmarshal(msg.Body, &req); err != nil {
		return fmt.Errorf("failed to decode advice message %s: %w", msg.MessageId, err)
	}
	if req.CorrelationID == "" {
		req.CorrelationID = msg.CorrelationId
	}
	if req.CorrelationID == "" {
		req.CorrelationID = msg.MessageId
	}

	return s.ProcessAdvice(ctx, &req)
}

func (s *Service) sendAdvice(ctx context.Context, req *BillPaymentAdviceRequest) (*quickteller.BillPaymentAdviceResult, error) {
	result, err := s.qt.SendBillPaymentAdvice(ctx, req.params())
	if err != nil {
		var qErr *quickteller.Error
		if errors.As(err, &qErr) {
			logger.Warning.Printf("Bill payment advice %s rejected: %v", qErr.RequestReference, err)
			s.publish(ctx, &AdviceEvent{
				Event:               enum.ADVICE_FAILED,
				CorrelationID:       req.CorrelationID,
				RequestReference:    qErr.RequestReference,
				Amount:              req.Amount,
				PaymentCode:         req.PaymentCode,
				CustomerID:          req.CustomerID,
				ResponseCode:        qErr.ResponseCode(),
				ResponseDescription: qErr.ResponseDescription(),
				Message:             qErr.Error(),
			})
		} else {
			logger.Error.Printf("Bill payment advice for customer %s failed: %v", req.CustomerID, err)
		}
		return nil, err
	}

	logger.Info.Printf("Bill payment advice %s approved, transaction ref %s", result.RequestReference, result.TransactionRef)
	s.publish(ctx, &AdviceEvent{
		Event:               enum.ADVICE_SUCCEEDED,
		CorrelationID:       req.CorrelationID,
		RequestReference:    result.RequestReference,
		TransactionRef:      result.TransactionRef,
		Amount:              req.Amount,
		ApprovedAmount:      result.ApprovedAmount,
		PaymentCode:         req.PaymentCode,
		CustomerID:          req.CustomerID,
		ResponseCode:        result.ResponseCode,
		ResponseDescription: lo.FromPtr(result.ResponseDescription),
	})
	return result, nil
}

func (s *Service) publish(ctx context.Context, event *AdviceEvent) {
	if s.publisher == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()
	if err := s.publisher.Publish(context.WithoutCancel(ctx), event.Event.ToString(), event); err != nil {
		logger.Warning.Printf("Failed to publish %s event: %v", event.Event, err)
	}
}
