package bill

import (
	"context"
	"net/http"

	types "go-quickteller/internal/common/type"
	"go-quickteller/internal/pkg/helper"
	"go-quickteller/internal/pkg/logger"
	"go-quickteller/internal/pkg/quickteller"
)

func (s *Service) Ready() error {
	return s.qt.CheckInitialized()
}

func (s *Service) GetBillerCategories(ctx context.Context) *types.Response {
	categories, err := s.qt.GetBillerCategories(ctx)
	if err != nil {
		logger.Warning.Printf("Failed to get biller categories: %v", err)
		return errorResponse(err)
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: "Biller categories retrieved successfully",
		Data:    newList(categories),
	})
}

func (s *Service) GetBillers(ctx context.Context, req *GetBillersRequest) *types.Response {
	billers, err := s.qt.GetBillers(ctx, quickteller.GetBillersParams{
		CategoryID: req.CategoryID,
		BillerID:   req.BillerID,
		ChannelID:  req.ChannelID,
		BillerName: req.BillerName,
	})
	if err != nil {
		logger.Warning.Printf("Failed to get billers: %v", err)
		return errorResponse(err)
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: "Billers retrieved successfully",
		Data:    newList(billers),
	})
}

func (s *Service) GetLatestBillers(ctx context.Context) *types.Response {
	billers, err := s.qt.GetLatestBillers(ctx)
	if err != nil {
		logger.Warning.Printf("Failed to get latest billers: %v", err)
		return errorResponse(err)
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: "Latest billers retrieved successfully",
		Data:    newList(billers),
	})
}

func (s *Service) GetBillerPaymentItems(ctx context.Context, billerID string) *types.Response {
	items, err := s.qt.GetBillerPaymentItems(ctx, billerID)
	if err != nil {
		logger.Warning.Printf("Failed to get payment items of biller %s: %v", billerID, err)
		return errorResponse(err)
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: "Payment items retrieved successfully",
		Data:    newList(items),
	})
}

func (s *Service) ValidateCustomer(ctx context.Context, req *ValidateCustomerRequest) *types.Response {
	customer, err := s.qt.ValidateCustomer(ctx, quickteller.ValidateCustomerParams{
		PaymentCode:             req.PaymentCode,
		CustomerID:              req.CustomerID,
		CustomerValidationField: req.CustomerValidationField,
		WithDetails:             req.WithDetails,
	})
	if err != nil {
		logger.Warning.Printf("Failed to validate customer %s: %v", req.CustomerID, err)
		return errorResponse(err)
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: "Customer validated successfully",
		Data:    customer,
	})
}

func (s *Service) QueryTransaction(ctx context.Context, reference string) *types.Response {
	transaction, err := s.qt.QueryTransaction(ctx, reference)
	if err != nil {
		logger.Warning.Printf("Failed to query transaction %s: %v", reference, err)
		return errorResponse(err)
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: "Transaction retrieved successfully",
		Data:    transaction,
	})
}
