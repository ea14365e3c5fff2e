package quickteller

import "encoding/xml"

/*----------- Request parameters -----------*/

// GetBillersParams filters the biller search. Empty fields are not sent.
type GetBillersParams struct {
	CategoryID string `json:"category_id"`
	BillerID   string `json:"biller_id"`
	ChannelID  string `json:"channel_id"`
	BillerName string `json:"biller_name"`
}

type ValidateCustomerParams struct {
	PaymentCode             string `json:"payment_code"`
	CustomerID              string `json:"customer_id"`
	CustomerValidationField string `json:"customer_validation_field"`
	// WithDetails defaults to true when nil.
	WithDetails *bool `json:"with_details"`
}

type BillPaymentAdviceParams struct {
	Amount         string `json:"amount"`
	PaymentCode    string `json:"payment_code"`
	CustomerID     string `json:"customer_id"`
	CustomerMobile string `json:"customer_mobile"`
	CustomerEmail  string `json:"customer_email"`
}

/*----------- Outgoing XML documents -----------*/

type searchCriteria struct {
	XMLName    xml.Name `xml:"SearchCriteria"`
	CategoryID string   `xml:"CategoryId,omitempty"`
	BillerID   string   `xml:"BillerId,omitempty"`
	ChannelID  string   `xml:"ChannelId,omitempty"`
	BillerName string   `xml:"BillerName,omitempty"`
	TerminalID string   `xml:"TerminalId,omitempty"`
}

type customerDetails struct {
	XMLName    xml.Name        `xml:"RequestDetails"`
	TerminalID string          `xml:"TerminalId,omitempty"`
	Customer   customerRequest `xml:"Customer"`
}

type customerRequest struct {
	PaymentCode             string `xml:"PaymentCode,omitempty"`
	CustomerID              string `xml:"CustomerId,omitempty"`
	CustomerValidationField string `xml:"CustomerValidationField,omitempty"`
	WithDetails             string `xml:"WithDetails,omitempty"`
}

type billPaymentAdvice struct {
	XMLName          xml.Name `xml:"BillPaymentAdvice"`
	Amount           string   `xml:"Amount,omitempty"`
	PaymentCode      string   `xml:"PaymentCode,omitempty"`
	CustomerID       string   `xml:"CustomerId,omitempty"`
	CustomerMobile   string   `xml:"CustomerMobile,omitempty"`
	CustomerEmail    string   `xml:"CustomerEmail,omitempty"`
	TerminalID       string   `xml:"TerminalId,omitempty"`
	RequestReference string   `xml:"RequestReference,omitempty"`
}

type transactionDetails struct {
	XMLName          xml.Name `xml:"RequestDetails"`
	RequestReference string   `xml:"RequestReference,omitempty"`
	TerminalID       string   `xml:"TerminalId,omitempty"`
}

/*----------- Responses -----------*/

// Status is the code block shared by every Quickteller response, and by the
// customer record nested in a validation response.
type Status struct {
	ResponseCode         string  `mapstructure:"ResponseCode" json:"response_code"`
	ResponseCodeGrouping string  `mapstructure:"ResponseCodeGrouping" json:"response_code_grouping,omitempty"`
	ResponseDescription  *string `mapstructure:"ResponseDescription" json:"response_description,omitempty"`
}

type Category struct {
	ID          string `mapstructure:"Id" json:"id"`
	Name        string `mapstructure:"Name" json:"name"`
	Description string `mapstructure:"Description" json:"description"`
}

type Biller struct {
	Type                   string `mapstructure:"Type" json:"type,omitempty"`
	ID                     string `mapstructure:"Id" json:"id"`
	PayDirectProductID     string `mapstructure:"PAYDirectProductId" json:"paydirect_product_id,omitempty"`
	Name                   string `mapstructure:"Name" json:"name"`
	ShortName              string `mapstructure:"ShortName" json:"short_name,omitempty"`
	Narration              string `mapstructure:"Narration" json:"narration,omitempty"`
	CustomerField1         string `mapstructure:"CustomerField1" json:"customer_field1,omitempty"`
	CustomerField2         string `mapstructure:"CustomerField2" json:"customer_field2,omitempty"`
	LogoURL                string `mapstructure:"LogoUrl" json:"logo_url,omitempty"`
	URL                    string `mapstructure:"Url" json:"url,omitempty"`
	Surcharge              string `mapstructure:"Surcharge" json:"surcharge,omitempty"`
	CustomSectionURL       string `mapstructure:"CustomSectionUrl" json:"custom_section_url,omitempty"`
	CurrencyCode           string `mapstructure:"CurrencyCode" json:"currency_code,omitempty"`
	CurrencySymbol         string `mapstructure:"CurrencySymbol" json:"currency_symbol,omitempty"`
	QuickTellerSiteURLName string `mapstructure:"QuickTellerSiteUrlName" json:"quickteller_site_url_name,omitempty"`
	SupportEmail           string `mapstructure:"SupportEmail" json:"support_email,omitempty"`
	CustomMessage          string `mapstructure:"CustomMessage" json:"custom_message,omitempty"`
	RiskCategoryID         string `mapstructure:"RiskCategoryId" json:"risk_category_id,omitempty"`
}

type BillerCategory struct {
	ID          string   `mapstructure:"id" json:"id"`
	Name        string   `mapstructure:"name" json:"name"`
	Description string   `mapstructure:"Description" json:"description"`
	Biller      []Biller `mapstructure:"Biller" json:"billers"`
}

type PaymentItem struct {
	ID                 string `mapstructure:"Id" json:"id"`
	Name               string `mapstructure:"Name" json:"name"`
	BillerName         string `mapstructure:"BillerName" json:"biller_name"`
	ConsumerIDField    string `mapstructure:"ConsumerIdField" json:"consumer_id_field"`
	Code               string `mapstructure:"Code" json:"code"`
	BillerType         string `mapstructure:"BillerType" json:"biller_type"`
	ItemFee            string `mapstructure:"ItemFee" json:"item_fee"`
	Amount             string `mapstructure:"Amount" json:"amount"`
	BillerID           string `mapstructure:"BillerId" json:"biller_id"`
	BillerCategoryID   string `mapstructure:"BillerCategoryId" json:"biller_category_id"`
	CurrencyCode       string `mapstructure:"CurrencyCode" json:"currency_code"`
	CurrencySymbol     string `mapstructure:"CurrencySymbol" json:"currency_symbol"`
	ItemCurrencyCode   string `mapstructure:"ItemCurrencyCode" json:"item_currency_code"`
	ItemCurrencySymbol string `mapstructure:"ItemCurrencySymbol" json:"item_currency_symbol"`
	IsAmountFixed      string `mapstructure:"IsAmountFixed" json:"is_amount_fixed"`
	SortOrder          string `mapstructure:"SortOrder" json:"sort_order"`
	PictureID          string `mapstructure:"PictureId" json:"picture_id"`
	PictureGUID        string `mapstructure:"PictureGuid" json:"picture_guid"`
	PaymentCode        string `mapstructure:"PaymentCode" json:"payment_code"`
	AmountType         string `mapstructure:"AmountType" json:"amount_type"`
	PayDirectItemCode  string `mapstructure:"PaydirectItemCode" json:"paydirect_item_code"`
}

// Customer is the validated customer record. It carries its own status,
// independent of the envelope status.
type Customer struct {
	Status                `mapstructure:",squash"`
	PaymentCode           string `mapstructure:"PaymentCode" json:"payment_code"`
	CustomerID            string `mapstructure:"CustomerId" json:"customer_id"`
	WithDetails           string `mapstructure:"WithDetails" json:"with_details,omitempty"`
	FullName              string `mapstructure:"FullName" json:"full_name,omitempty"`
	Address               string `mapstructure:"Address" json:"address,omitempty"`
	DateOfBirth           string `mapstructure:"DateOfBirth" json:"date_of_birth,omitempty"`
	Email                 string `mapstructure:"Email" json:"email,omitempty"`
	Lastname              string `mapstructure:"Lastname" json:"lastname,omitempty"`
	Othernames            string `mapstructure:"Othernames" json:"othernames,omitempty"`
	Phone                 string `mapstructure:"Phone" json:"phone,omitempty"`
	Title                 string `mapstructure:"Title" json:"title,omitempty"`
	SecConsumerID         string `mapstructure:"SecConsumerId" json:"sec_consumer_id,omitempty"`
	PriConsumerID         string `mapstructure:"PriConsumerId" json:"pri_consumer_id,omitempty"`
	Amount                string `mapstructure:"Amount" json:"amount,omitempty"`
	AmountType            string `mapstructure:"AmountType" json:"amount_type,omitempty"`
	AmountTypeDescription string `mapstructure:"AmountTypeDescription" json:"amount_type_description,omitempty"`
}

type BillPaymentAdviceResult struct {
	Status           `mapstructure:",squash"`
	TransactionRef   string `mapstructure:"TransactionRef" json:"transaction_ref"`
	ApprovedAmount   string `mapstructure:"ApprovedAmount" json:"approved_amount"`
	RequestReference string `mapstructure:"-" json:"request_reference"`
}

type BillPayment struct {
	Biller          string `mapstructure:"Biller" json:"biller,omitempty"`
	BillerID        string `mapstructure:"BillerId" json:"biller_id,omitempty"`
	CustomerID1     string `mapstructure:"CustomerId1" json:"customer_id1,omitempty"`
	CustomerID2     string `mapstructure:"CustomerId2" json:"customer_id2,omitempty"`
	PaymentTypeName string `mapstructure:"PaymentTypeName" json:"payment_type_name,omitempty"`
	PaymentTypeCode string `mapstructure:"PaymentTypeCode" json:"payment_type_code,omitempty"`
	Narration       string `mapstructure:"Narration" json:"narration,omitempty"`
}

type Transaction struct {
	Status                  `mapstructure:",squash"`
	TransactionSet          string       `mapstructure:"TransactionSet" json:"transaction_set"`
	TransactionResponseCode string       `mapstructure:"TransactionResponseCode" json:"transaction_response_code"`
	State                   string       `mapstructure:"Status" json:"status"`
	ServiceCode             string       `mapstructure:"ServiceCode" json:"service_code,omitempty"`
	ServiceName             string       `mapstructure:"ServiceName" json:"service_name,omitempty"`
	RequestReference        string       `mapstructure:"RequestReference" json:"request_reference"`
	PaymentReference        string       `mapstructure:"PaymentReference" json:"payment_reference,omitempty"`
	TransactionDate         string       `mapstructure:"TransactionDate" json:"transaction_date,omitempty"`
	Amount                  string       `mapstructure:"Amount" json:"amount,omitempty"`
	Surcharge               string       `mapstructure:"Surcharge" json:"surcharge,omitempty"`
	CurrencyCode            string       `mapstructure:"CurrencyCode" json:"currency_code,omitempty"`
	CustomerEmail           string       `mapstructure:"CustomerEmail" json:"customer_email,omitempty"`
	CustomerMobile          string       `mapstructure:"CustomerMobile" json:"customer_mobile,omitempty"`
	BillPayment             *BillPayment `mapstructure:"BillPayment" json:"bill_payment,omitempty"`
}

type categoriesResponse struct {
	Status       `mapstructure:",squash"`
	CategoryList struct {
		TotalAvailable string     `mapstructure:"TotalAvailable"`
		Category       []Category `mapstructure:"Category"`
	} `mapstructure:"CategoryList"`
}

type billersResponse struct {
	Status     `mapstructure:",squash"`
	BillerList struct {
		Count    string           `mapstructure:"count"`
		Category []BillerCategory `mapstructure:"Category"`
	} `mapstructure:"BillerList"`
}

type paymentItemsResponse struct {
	Status          `mapstructure:",squash"`
	PaymentItemList struct {
		PaymentItem []PaymentItem `mapstructure:"PaymentItem"`
	} `mapstructure:"PaymentItemList"`
}

type customerResponse struct {
	Status   `mapstructure:",squash"`
	Customer Customer `mapstructure:"Customer"`
}
