package quickteller

import (
	"context"
	"errors"

	"github.com/samber/lo"

	"go-quickteller/internal/pkg/logger"
)

const (
	OpGetBillerCategories   = "GetBillerCategories"
	OpGetBillers            = "GetBillers"
	OpGetLatestBillers      = "GetLatestBillers"
	OpGetBillerPaymentItems = "GetBillerPaymentItems"
	OpValidateCustomer      = "ValidateCustomer"
	OpSendBillPaymentAdvice = "SendBillPaymentAdvice"
	OpQueryTransaction      = "QueryTransaction"
)

const (
	msgBillersNotFound     = "Quickteller could not find billers that satisfy this query"
	msgBillerNotFound      = "Quickteller could not find the biller"
	msgTransactionNotFound = "Transaction not found"
)

var errMissingResult = errors.New("operation result is missing")

// invoke sends args to operation and decodes the <operation>Result fragment.
func invoke[T any](ctx context.Context, s *session, operation string, args *Arguments) (*T, error) {
	result, err := s.transport.Call(ctx, operation, args.params())
	if err != nil {
		logger.Error.Printf("quickteller %s call failed: %v", operation, err)
		return nil, err
	}

	fragment, ok := result[operation+"Result"]
	if !ok {
		return nil, &DecodeError{Operation: operation, Err: errMissingResult}
	}

	return decodeResponse[T](operation, fragment)
}

// GetBillerCategories lists all biller categories.
func (c *Client) GetBillerCategories(ctx context.Context) ([]Category, error) {
	s, err := c.session()
	if err != nil {
		return nil, err
	}

	res, err := invoke[categoriesResponse](ctx, s, OpGetBillerCategories, EmptyArguments())
	if err != nil {
		return nil, err
	}

	if qErr := classify(res.Status, "An error occurred while getting biller categories"); qErr != nil {
		return nil, qErr
	}
	return orEmpty(res.CategoryList.Category), nil
}

// GetBillers searches billers. Empty filters are not sent.
func (c *Client) GetBillers(ctx context.Context, params GetBillersParams) ([]Biller, error) {
	s, err := c.session()
	if err != nil {
		return nil, err
	}

	args, err := BuildArguments(searchCriteria{
		CategoryID: params.CategoryID,
		BillerID:   params.BillerID,
		ChannelID:  params.ChannelID,
		BillerName: params.BillerName,
		TerminalID: s.terminalID,
	})
	if err != nil {
		return nil, err
	}

	res, err := invoke[billersResponse](ctx, s, OpGetBillers, args)
	if err != nil {
		return nil, err
	}

	if res.ResponseCode == CodeSuccess && res.BillerList.Count == zeroCount {
		return nil, NewError(msgBillersNotFound, nil, nil)
	}
	if qErr := classify(res.Status, "An error occurred while getting billers"); qErr != nil {
		return nil, qErr
	}
	return flattenBillers(res.BillerList.Category), nil
}

// GetLatestBillers lists newly added billers.
func (c *Client) GetLatestBillers(ctx context.Context) ([]Biller, error) {
	s, err := c.session()
	if err != nil {
		return nil, err
	}

	res, err := invoke[billersResponse](ctx, s, OpGetLatestBillers, EmptyArguments())
	if err != nil {
		return nil, err
	}

	if qErr := classify(res.Status, "An error occurred while getting latest billers"); qErr != nil {
		return nil, qErr
	}
	return flattenBillers(res.BillerList.Category), nil
}

// GetBillerPaymentItems lists the payment items of a biller.
func (c *Client) GetBillerPaymentItems(ctx context.Context, billerID string) ([]PaymentItem, error) {
	s, err := c.session()
	if err != nil {
		return nil, err
	}

	args, err := BuildArguments(searchCriteria{BillerID: billerID})
	if err != nil {
		return nil, err
	}

	res, err := invoke[paymentItemsResponse](ctx, s, OpGetBillerPaymentItems, args)
	if err != nil {
		return nil, err
	}

	if qErr := classify(res.Status, "An error occurred while getting biller payment items",
		onCode(CodeBillerNotFound, msgBillerNotFound),
	); qErr != nil {
		return nil, qErr
	}
	return orEmpty(res.PaymentItemList.PaymentItem), nil
}

// ValidateCustomer checks a customer id against a biller's payment code.
// Both the envelope status and the customer status must be successful.
func (c *Client) ValidateCustomer(ctx context.Context, params ValidateCustomerParams) (*Customer, error) {
	s, err := c.session()
	if err != nil {
		return nil, err
	}

	withDetails := lo.FromPtrOr(params.WithDetails, true)
	args, err := BuildArguments(customerDetails{
		TerminalID: s.terminalID,
		Customer: customerRequest{
			PaymentCode:             params.PaymentCode,
			CustomerID:              params.CustomerID,
			CustomerValidationField: params.CustomerValidationField,
			WithDetails:             lo.Ternary(withDetails, "True", "False"),
		},
	})
	if err != nil {
		return nil, err
	}

	res, err := invoke[customerResponse](ctx, s, OpValidateCustomer, args)
	if err != nil {
		return nil, err
	}

	if qErr := classify(res.Status, "An error occurred while attempting customer validation"); qErr != nil {
		return nil, qErr
	}

	field := lo.Ternary(params.CustomerValidationField != "", params.CustomerValidationField, "customer id")
	if qErr := classify(res.Customer.Status, "An error occurred while validating "+field+" "+params.CustomerID); qErr != nil {
		return nil, qErr
	}
	return &res.Customer, nil
}

// SendBillPaymentAdvice notifies the biller of a payment under a freshly
// generated request reference. The reference is returned on success and
// attached to every *Error.
func (c *Client) SendBillPaymentAdvice(ctx context.Context, params BillPaymentAdviceParams) (*BillPaymentAdviceResult, error) {
	s, err := c.session()
	if err != nil {
		return nil, err
	}

	reference, err := c.cfg.Reference(s.requestPrefix, c.cfg.ReferenceLength)
	if err != nil {
		return nil, err
	}

	args, err := BuildArguments(billPaymentAdvice{
		Amount:           params.Amount,
		PaymentCode:      params.PaymentCode,
		CustomerID:       params.CustomerID,
		CustomerMobile:   params.CustomerMobile,
		CustomerEmail:    params.CustomerEmail,
		TerminalID:       s.terminalID,
		RequestReference: reference,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug.Printf("sending bill payment advice %s", reference)

	res, err := invoke[BillPaymentAdviceResult](ctx, s, OpSendBillPaymentAdvice, args)
	if err != nil {
		return nil, err
	}

	if qErr := classify(res.Status, "An error occurred while sending bill payment advice",
		onCode(CodeBillerNotFound, msgBillerNotFound),
	); qErr != nil {
		qErr.RequestReference = reference
		return nil, qErr
	}

	res.RequestReference = reference
	return res, nil
}

// QueryTransaction retrieves the status of a transaction by the reference
// returned from SendBillPaymentAdvice.
func (c *Client) QueryTransaction(ctx context.Context, requestReference string) (*Transaction, error) {
	s, err := c.session()
	if err != nil {
		return nil, err
	}

	args, err := BuildArguments(transactionDetails{
		RequestReference: requestReference,
		TerminalID:       s.terminalID,
	})
	if err != nil {
		return nil, err
	}

	res, err := invoke[Transaction](ctx, s, OpQueryTransaction, args)
	if err != nil {
		return nil, err
	}

	if qErr := classify(res.Status, "An error occurred while querying transaction",
		onCodeDescribed(CodeDataNotFound, "An error occurred while querying transaction", msgTransactionNotFound),
	); qErr != nil {
		return nil, qErr
	}
	return res, nil
}

func flattenBillers(categories []BillerCategory) []Biller {
	return orEmpty(lo.FlatMap(categories, func(category BillerCategory, _ int) []Biller {
		return category.Biller
	}))
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
