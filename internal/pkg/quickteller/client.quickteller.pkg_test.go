package quickteller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testTerminalID = "3FTL0001"
	testPrefix     = "1453"
	testReference  = "1453a1b2c3d4"
)

type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) Call(ctx context.Context, operation string, xmlParams *string) (map[string]string, error) {
	args := m.Called(ctx, operation, xmlParams)
	result, _ := args.Get(0).(map[string]string)
	return result, args.Error(1)
}

func newReadyClient(t *testing.T, transport *mockTransport) *Client {
	t.Helper()
	client := New(&Config{
		Transport: func(context.Context, string) (Transport, error) { return transport, nil },
		Reference: func(prefix string, _ int) (string, error) { return prefix + "a1b2c3d4", nil },
	})
	require.NoError(t, client.Init(context.Background(), "https://sandbox.example/svc?wsdl", testTerminalID, testPrefix))
	return client
}

func result(operation, fragment string) map[string]string {
	return map[string]string{operation + "Result": fragment}
}

func params(xml string) any {
	return mock.MatchedBy(func(p *string) bool {
		return p != nil && *p == "<![CDATA["+xml+"]]>"
	})
}

func TestClient_NotInitialized(t *testing.T) {
	transport := new(mockTransport)
	client := New(&Config{
		Transport: func(context.Context, string) (Transport, error) { return transport, nil },
	})
	ctx := context.Background()

	assert.ErrorIs(t, client.CheckInitialized(), ErrNotInitialized)
	assert.False(t, client.Ready())

	_, err := client.GetBillerCategories(ctx)
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = client.GetBillers(ctx, GetBillersParams{})
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = client.GetLatestBillers(ctx)
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = client.GetBillerPaymentItems(ctx, "1")
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = client.ValidateCustomer(ctx, ValidateCustomerParams{})
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = client.SendBillPaymentAdvice(ctx, BillPaymentAdviceParams{})
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = client.QueryTransaction(ctx, testReference)
	assert.ErrorIs(t, err, ErrNotInitialized)

	transport.AssertNotCalled(t, "Call", mock.Anything, mock.Anything, mock.Anything)
}

func TestClient_Init(t *testing.T) {
	t.Run("missing settings", func(t *testing.T) {
		client := New(nil)
		err := client.Init(context.Background(), "", testTerminalID, "")

		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.ErrorIs(t, err, ErrMissingConfig)
		assert.Equal(t, []string{"endpoint url", "request reference prefix"}, cfgErr.Missing)
		assert.False(t, client.Ready())
	})

	t.Run("transport failure leaves client uninitialized", func(t *testing.T) {
		dialErr := errors.New("wsdl unreachable")
		client := New(&Config{
			Transport: func(context.Context, string) (Transport, error) { return nil, dialErr },
		})
		err := client.Init(context.Background(), "https://sandbox.example/svc", testTerminalID, testPrefix)
		assert.ErrorIs(t, err, dialErr)
		assert.False(t, client.Ready())
	})

	t.Run("second init is rejected", func(t *testing.T) {
		client := newReadyClient(t, new(mockTransport))
		assert.True(t, client.Ready())
		err := client.Init(context.Background(), "https://other.example/svc", "X", "Y")
		assert.ErrorIs(t, err, ErrAlreadyInitialized)
	})
}

func TestClient_GetBillerCategories(t *testing.T) {
	transport := new(mockTransport)
	transport.On("Call", mock.Anything, OpGetBillerCategories, (*string)(nil)).Return(result(OpGetBillerCategories,
		`<Response><ResponseCode>90000</ResponseCode><CategoryList><TotalAvailable>1</TotalAvailable>`+
			`<Category><Id>2</Id><Name>Cable TV</Name><Description>Pay for your cable TV</Description></Category>`+
			`</CategoryList></Response>`), nil)

	categories, err := newReadyClient(t, transport).GetBillerCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Category{{ID: "2", Name: "Cable TV", Description: "Pay for your cable TV"}}, categories)
	transport.AssertExpectations(t)
}

func TestClient_GetBillerCategories_Failure(t *testing.T) {
	transport := new(mockTransport)
	transport.On("Call", mock.Anything, OpGetBillerCategories, mock.Anything).Return(result(OpGetBillerCategories,
		`<Response><ResponseCode>70016</ResponseCode><ResponseDescription>Empty node</ResponseDescription></Response>`), nil)

	_, err := newReadyClient(t, transport).GetBillerCategories(context.Background())
	assert.EqualError(t, err, "An error occurred while getting biller categories with response code 70016 : Empty node")
}

func TestClient_GetBillers(t *testing.T) {
	transport := new(mockTransport)
	transport.On("Call", mock.Anything, OpGetBillers,
		params("<SearchCriteria><CategoryId>2</CategoryId><TerminalId>3FTL0001</TerminalId></SearchCriteria>"),
	).Return(result(OpGetBillers,
		`<Response><ResponseCode>90000</ResponseCode><BillerList count="1">`+
			`<Category id="2" name="Cable TV"><Biller><Id>104</Id><Name>DSTV</Name><Surcharge>10000</Surcharge></Biller></Category>`+
			`</BillerList></Response>`), nil)

	billers, err := newReadyClient(t, transport).GetBillers(context.Background(), GetBillersParams{CategoryID: "2"})
	require.NoError(t, err)
	require.Len(t, billers, 1)
	assert.Equal(t, "104", billers[0].ID)
	assert.Equal(t, "DSTV", billers[0].Name)
	assert.Equal(t, "10000", billers[0].Surcharge)
	transport.AssertExpectations(t)
}

func TestClient_GetBillers_FlattensCategories(t *testing.T) {
	transport := new(mockTransport)
	transport.On("Call", mock.Anything, OpGetBillers, mock.Anything).Return(result(OpGetBillers,
		`<Response><ResponseCode>90000</ResponseCode><BillerList count="3">`+
			`<Category id="1"><Biller><Id>1</Id></Biller><Biller><Id>2</Id></Biller></Category>`+
			`<Category id="2"><Biller><Id>3</Id></Biller></Category>`+
			`</BillerList></Response>`), nil)

	billers, err := newReadyClient(t, transport).GetBillers(context.Background(), GetBillersParams{})
	require.NoError(t, err)
	ids := make([]string, 0, len(billers))
	for _, b := range billers {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestClient_GetBillers_ZeroCount(t *testing.T) {
	transport := new(mockTransport)
	transport.On("Call", mock.Anything, OpGetBillers, mock.Anything).Return(result(OpGetBillers,
		`<Response><ResponseCode>90000</ResponseCode><BillerList count="0"/></Response>`), nil)

	_, err := newReadyClient(t, transport).GetBillers(context.Background(), GetBillersParams{BillerName: "nothing"})

	qErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, "Quickteller could not find billers that satisfy this query", err.Error())
	assert.Nil(t, qErr.Code)
	assert.Nil(t, qErr.Description)
	assert.True(t, IsNotFound(err))
}

func TestClient_GetLatestBillers(t *testing.T) {
	transport := new(mockTransport)
	transport.On("Call", mock.Anything, OpGetLatestBillers, (*string)(nil)).Return(result(OpGetLatestBillers,
		`<Response><ResponseCode>90000</ResponseCode><BillerList count="0"/></Response>`), nil)

	billers, err := newReadyClient(t, transport).GetLatestBillers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, billers)
	assert.Empty(t, billers)
}

func TestClient_GetBillerPaymentItems(t *testing.T) {
	transport := new(mockTransport)
	transport.On("Call", mock.Anything, OpGetBillerPaymentItems,
		params("<SearchCriteria><BillerId>104</BillerId></SearchCriteria>"),
	).Return(result(OpGetBillerPaymentItems,
		`<Response><ResponseCode>90000</ResponseCode><PaymentItemList><PaymentItem>`+
			`<Id>01</Id><Name>DSTV Compact</Name><Amount>1500000</Amount><PaymentCode>10401</PaymentCode>`+
			`<IsAmountFixed>true</IsAmountFixed></PaymentItem></PaymentItemList></Response>`), nil)

	items, err := newReadyClient(t, transport).GetBillerPaymentItems(context.Background(), "104")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "10401", items[0].PaymentCode)
	assert.Equal(t, "1500000", items[0].Amount)
	assert.Equal(t, "true", items[0].IsAmountFixed)
}

func TestClient_GetBillerPaymentItems_BillerNotFound(t *testing.T) {
	transport := new(mockTransport)
	transport.On("Call", mock.Anything, OpGetBillerPaymentItems, mock.Anything).Return(result(OpGetBillerPaymentItems,
		`<Response><ResponseCode>70007</ResponseCode><ResponseDescription>Biller not found</ResponseDescription></Response>`), nil)

	_, err := newReadyClient(t, transport).GetBillerPaymentItems(context.Background(), "999")
	assert.EqualError(t, err, "Quickteller could not find the biller with response code 70007 : Biller not found")
	assert.True(t, HasCode(err, CodeBillerNotFound))
}

func TestClient_ValidateCustomer(t *testing.T) {
	transport := new(mockTransport)
	transport.On("Call", mock.Anything, OpValidateCustomer,
		params("<RequestDetails><TerminalId>3FTL0001</TerminalId><Customer><PaymentCode>10401</PaymentCode>"+
			"<CustomerId>0000000001</CustomerId><WithDetails>True</WithDetails></Customer></RequestDetails>"),
	).Return(result(OpValidateCustomer,
		`<Response><ResponseCode>90000</ResponseCode><Customer><ResponseCode>90000</ResponseCode>`+
			`<CustomerId>0000000001</CustomerId><FullName>Ada Obi</FullName><Amount>0</Amount></Customer></Response>`), nil)

	customer, err := newReadyClient(t, transport).ValidateCustomer(context.Background(), ValidateCustomerParams{
		PaymentCode: "10401",
		CustomerID:  "0000000001",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Obi", customer.FullName)
	assert.Equal(t, CodeSuccess, customer.ResponseCode)
	transport.AssertExpectations(t)
}

func TestClient_ValidateCustomer_WithoutDetails(t *testing.T) {
	withDetails := false
	transport := new(mockTransport)
	transport.On("Call", mock.Anything, OpValidateCustomer,
		params("<RequestDetails><TerminalId>3FTL0001</TerminalId><Customer><PaymentCode>10401</PaymentCode>"+
			"<CustomerId>0000000001</CustomerId><CustomerValidationField>Decoder Number</CustomerValidationField>"+
			"<WithDetails>False</WithDetails></Customer></RequestDetails>"),
	).Return(result(OpValidateCustomer,
		`<Response><ResponseCode>90000</ResponseCode><Customer><ResponseCode>90000</ResponseCode></Customer></Response>`), nil)

	_, err := newReadyClient(t, transport).ValidateCustomer(context.Background(), ValidateCustomerParams{
		PaymentCode:             "10401",
		CustomerID:              "0000000001",
		CustomerValidationField: "Decoder Number",
		WithDetails:             &withDetails,
	})
	require.NoError(t, err)
	transport.AssertExpectations(t)
}

func TestClient_ValidateCustomer_Failures(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		params   ValidateCustomerParams
		want     string
	}{
		{
			name:     "outer status",
			fragment: `<Response><ResponseCode>70015</ResponseCode><ResponseDescription>Missing node</ResponseDescription></Response>`,
			params:   ValidateCustomerParams{PaymentCode: "10401"},
			want:     "An error occurred while attempting customer validation with response code 70015 : Missing node",
		},
		{
			name: "inner status with default field name",
			fragment: `<Response><ResponseCode>90000</ResponseCode><Customer><ResponseCode>20021</ResponseCode>` +
				`<ResponseDescription>Unrecognized customer</ResponseDescription></Customer></Response>`,
			params: ValidateCustomerParams{PaymentCode: "10401", CustomerID: "0000000001"},
			want:   "An error occurred while validating customer id 0000000001 with response code 20021 : Unrecognized customer",
		},
		{
			name: "inner status with validation field",
			fragment: `<Response><ResponseCode>90000</ResponseCode><Customer><ResponseCode>20021</ResponseCode>` +
				`<ResponseDescription>Unrecognized customer</ResponseDescription></Customer></Response>`,
			params: ValidateCustomerParams{PaymentCode: "10401", CustomerID: "42", CustomerValidationField: "Meter Number"},
			want:   "An error occurred while validating Meter Number 42 with response code 20021 : Unrecognized customer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := new(mockTransport)
			transport.On("Call", mock.Anything, OpValidateCustomer, mock.Anything).Return(result(OpValidateCustomer, tt.fragment), nil)

			_, err := newReadyClient(t, transport).ValidateCustomer(context.Background(), tt.params)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestClient_SendBillPaymentAdvice(t *testing.T) {
	transport := new(mockTransport)
	transport.On("Call", mock.Anything, OpSendBillPaymentAdvice,
		params("<BillPaymentAdvice><Amount>150000</Amount><PaymentCode>10401</PaymentCode><CustomerId>0000000001</CustomerId>"+
			"<CustomerEmail>ada@example.com</CustomerEmail><TerminalId>3FTL0001</TerminalId>"+
			"<RequestReference>1453a1b2c3d4</RequestReference></BillPaymentAdvice>"),
	).Return(result(OpSendBillPaymentAdvice,
		`<Response><ResponseCode>90000</ResponseCode><TransactionRef>FBN|WEB|3FTL0001|1</TransactionRef>`+
			`<ApprovedAmount>150000</ApprovedAmount></Response>`), nil)

	res, err := newReadyClient(t, transport).SendBillPaymentAdvice(context.Background(), BillPaymentAdviceParams{
		Amount:        "150000",
		PaymentCode:   "10401",
		CustomerID:    "0000000001",
		CustomerEmail: "ada@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, testReference, res.RequestReference)
	assert.Equal(t, "FBN|WEB|3FTL0001|1", res.TransactionRef)
	assert.Equal(t, "150000", res.ApprovedAmount)
	transport.AssertExpectations(t)
}

func TestClient_SendBillPaymentAdvice_ReferenceOnError(t *testing.T) {
	transport := new(mockTransport)
	transport.On("Call", mock.Anything, OpSendBillPaymentAdvice, mock.Anything).Return(result(OpSendBillPaymentAdvice,
		`<Response><ResponseCode>20031</ResponseCode><ResponseDescription>Invalid amount</ResponseDescription></Response>`), nil)

	_, err := newReadyClient(t, transport).SendBillPaymentAdvice(context.Background(), BillPaymentAdviceParams{
		Amount: "1", PaymentCode: "10401", CustomerID: "0000000001",
	})

	qErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, testReference, qErr.RequestReference)
	assert.Equal(t, "An error occurred while sending bill payment advice with response code 20031 : Invalid amount", err.Error())
}

func TestClient_SendBillPaymentAdvice_GeneratedReference(t *testing.T) {
	transport := new(mockTransport)
	var sent string
	transport.On("Call", mock.Anything, OpSendBillPaymentAdvice, mock.Anything).
		Run(func(args mock.Arguments) { sent = *args.Get(2).(*string) }).
		Return(result(OpSendBillPaymentAdvice, `<Response><ResponseCode>90000</ResponseCode></Response>`), nil)

	client := New(&Config{
		Transport: func(context.Context, string) (Transport, error) { return transport, nil },
	})
	require.NoError(t, client.Init(context.Background(), "https://sandbox.example/svc", testTerminalID, testPrefix))

	res, err := client.SendBillPaymentAdvice(context.Background(), BillPaymentAdviceParams{
		Amount: "100", PaymentCode: "10401", CustomerID: "1",
	})
	require.NoError(t, err)
	assert.Len(t, res.RequestReference, len(testPrefix)+DefaultReferenceLength)
	assert.Regexp(t, `^1453[0-9a-f]{8}$`, res.RequestReference)
	assert.Contains(t, sent, "<RequestReference>"+res.RequestReference+"</RequestReference>")
}

func TestClient_QueryTransaction(t *testing.T) {
	transport := new(mockTransport)
	transport.On("Call", mock.Anything, OpQueryTransaction,
		params("<RequestDetails><RequestReference>1453a1b2c3d4</RequestReference><TerminalId>3FTL0001</TerminalId></RequestDetails>"),
	).Return(result(OpQueryTransaction,
		`<Response><ResponseCode>90000</ResponseCode><Status>Complete</Status><RequestReference>1453a1b2c3d4</RequestReference>`+
			`<Amount>150000</Amount><BillPayment><Biller>DSTV</Biller><CustomerId1>0000000001</CustomerId1></BillPayment></Response>`), nil)

	txn, err := newReadyClient(t, transport).QueryTransaction(context.Background(), testReference)
	require.NoError(t, err)
	assert.Equal(t, "Complete", txn.State)
	assert.Equal(t, testReference, txn.RequestReference)
	require.NotNil(t, txn.BillPayment)
	assert.Equal(t, "DSTV", txn.BillPayment.Biller)
	transport.AssertExpectations(t)
}

func TestClient_QueryTransaction_NotFound(t *testing.T) {
	transport := new(mockTransport)
	transport.On("Call", mock.Anything, OpQueryTransaction, mock.Anything).Return(result(OpQueryTransaction,
		`<Response><ResponseCode>70013</ResponseCode><ResponseDescription>No record found</ResponseDescription></Response>`), nil)

	_, err := newReadyClient(t, transport).QueryTransaction(context.Background(), "unknown")

	qErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, "Transaction not found", qErr.ResponseDescription())
	assert.Equal(t, CodeDataNotFound, qErr.ResponseCode())
	assert.True(t, IsNotFound(err))
}

func TestClient_TransportErrorPassesThrough(t *testing.T) {
	callErr := errors.New("connection reset")
	transport := new(mockTransport)
	transport.On("Call", mock.Anything, OpGetLatestBillers, mock.Anything).Return(nil, callErr)

	_, err := newReadyClient(t, transport).GetLatestBillers(context.Background())
	assert.ErrorIs(t, err, callErr)
	_, isBusiness := AsError(err)
	assert.False(t, isBusiness)
}

func TestClient_MissingResultField(t *testing.T) {
	transport := new(mockTransport)
	transport.On("Call", mock.Anything, OpGetLatestBillers, mock.Anything).Return(map[string]string{}, nil)

	_, err := newReadyClient(t, transport).GetLatestBillers(context.Background())

	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestClient_InitDoesNotBlockReaders(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	transport := new(mockTransport)
	client := New(&Config{
		Transport: func(context.Context, string) (Transport, error) {
			close(entered)
			<-release
			return transport, nil
		},
	})

	initErr := make(chan error, 1)
	go func() {
		initErr <- client.Init(context.Background(), "https://sandbox.example/svc", testTerminalID, testPrefix)
	}()
	<-entered

	checked := make(chan error, 1)
	go func() { checked <- client.CheckInitialized() }()
	select {
	case err := <-checked:
		assert.ErrorIs(t, err, ErrNotInitialized)
	case <-time.After(time.Second):
		t.Fatal("CheckInitialized blocked while the transport was dialing")
	}

	close(release)
	require.NoError(t, <-initErr)
	assert.True(t, client.Ready())
}
