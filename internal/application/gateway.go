package application

import "context"

// GatewayClient executes Getnet HTTP operations under one tenant's
// credential session. Implementations attach the bearer token (and the
// seller_id header on card endpoints) and translate gateway rejections
// into typed errors.
type GatewayClient interface {
	TokenizeCard(ctx context.Context, cardNumber string) (string, error)
	SaveCardToVault(ctx context.Context, card VaultCard) (*VaultCardResponse, error)
	FetchCardByToken(ctx context.Context, cardID string) (*VaultCardResponse, error)
	DeleteCard(ctx context.Context, cardID string) error
	ListCardsByCustomer(ctx context.Context, customerID string) ([]VaultCardResponse, error)
	CreatePayment(ctx context.Context, payment PaymentCreditRequest) (*PaymentCreditResponse, error)
	ConfirmCapture(ctx context.Context, gatewayPaymentID string, amount int64) (*PaymentConfirmResponse, error)
	VoidPayment(ctx context.Context, gatewayPaymentID string) (*PaymentVoidResponse, error)
	RefundPayment(ctx context.Context, cancel CancelRequest) (*CancelRequestResponse, error)
}

// VaultCard is the request body for saving a card to the gateway vault.
// VerifyCard is filled in by the client from the tenant configuration.
type VaultCard struct {
	NumberToken     string `json:"number_token"`
	Brand           string `json:"brand,omitempty"`
	CardholderName  string `json:"cardholder_name"`
	ExpirationMonth string `json:"expiration_month"`
	ExpirationYear  string `json:"expiration_year"`
	CustomerID      string `json:"customer_id"`
	VerifyCard      bool   `json:"verify_card"`
	SecurityCode    string `json:"security_code,omitempty"`
}

// VaultCardResponse is the gateway's representation of a vaulted card.
type VaultCardResponse struct {
	CardID          string `json:"card_id"`
	LastFourDigits  string `json:"last_four_digits"`
	ExpirationMonth string `json:"expiration_month"`
	ExpirationYear  string `json:"expiration_year"`
	Brand           string `json:"brand"`
	CardholderName  string `json:"cardholder_name"`
	CustomerID      string `json:"customer_id"`
	NumberToken     string `json:"number_token"`
	UsedAt          string `json:"used_at"`
	Status          string `json:"status"`
}

type Order struct {
	OrderID     string `json:"order_id"`
	SalesTax    int64  `json:"sales_tax"`
	ProductType string `json:"product_type"`
}

type BillingAddress struct {
	Street     string `json:"street,omitempty"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

type CustomerCredit struct {
	CustomerID     string         `json:"customer_id"`
	FirstName      string         `json:"first_name,omitempty"`
	LastName       string         `json:"last_name,omitempty"`
	Name           string         `json:"name,omitempty"`
	Email          string         `json:"email,omitempty"`
	DocumentType   string         `json:"document_type,omitempty"`
	DocumentNumber string         `json:"document_number,omitempty"`
	PhoneNumber    string         `json:"phone_number,omitempty"`
	BillingAddress BillingAddress `json:"billing_address"`
}

type CardCredit struct {
	NumberToken     string `json:"number_token"`
	CardholderName  string `json:"cardholder_name"`
	SecurityCode    string `json:"security_code,omitempty"`
	Brand           string `json:"brand,omitempty"`
	ExpirationMonth string `json:"expiration_month"`
	ExpirationYear  string `json:"expiration_year"`
}

type Credit struct {
	Delayed            bool       `json:"delayed"`
	PreAuthorization   bool       `json:"pre_authorization"`
	SaveCardData       bool       `json:"save_card_data"`
	TransactionType    string     `json:"transaction_type"`
	NumberInstallments int        `json:"number_installments"`
	SoftDescriptor     string     `json:"soft_descriptor"`
	Card               CardCredit `json:"card"`
}

// PaymentCreditRequest is the body of POST /v1/payments/credit. Amount is
// in the currency's minor units.
type PaymentCreditRequest struct {
	SellerID string         `json:"seller_id,omitempty"`
	Amount   int64          `json:"amount"`
	Currency string         `json:"currency"`
	Order    Order          `json:"order"`
	Customer CustomerCredit `json:"customer"`
	Credit   Credit         `json:"credit"`
}

// PaymentCreditDetail is the credit block of a payment response.
type PaymentCreditDetail struct {
	Delayed               bool   `json:"delayed"`
	AuthorizationCode     string `json:"authorization_code"`
	AuthorizedAt          string `json:"authorized_at"`
	ReasonCode            string `json:"reason_code"`
	ReasonMessage         string `json:"reason_message"`
	Acquirer              string `json:"acquirer"`
	SoftDescriptor        string `json:"soft_descriptor"`
	Brand                 string `json:"brand"`
	TerminalNsu           string `json:"terminal_nsu"`
	AcquirerTransactionID string `json:"acquirer_transaction_id"`
	TransactionID         string `json:"transaction_id"`
}

type PaymentCreditResponse struct {
	PaymentID  string               `json:"payment_id"`
	SellerID   string               `json:"seller_id"`
	Amount     int64                `json:"amount"`
	Currency   string               `json:"currency"`
	OrderID    string               `json:"order_id"`
	Status     string               `json:"status"`
	ReceivedAt string               `json:"received_at"`
	Credit     *PaymentCreditDetail `json:"credit"`
}

type CreditConfirm struct {
	ConfirmDate string `json:"confirm_date"`
	Message     string `json:"message"`
}

type PaymentConfirmResponse struct {
	PaymentID     string         `json:"payment_id"`
	SellerID      string         `json:"seller_id"`
	Amount        int64          `json:"amount"`
	Currency      string         `json:"currency"`
	OrderID       string         `json:"order_id"`
	Status        string         `json:"status"`
	CreditConfirm *CreditConfirm `json:"credit_confirm"`
}

type CreditCancel struct {
	CanceledAt string `json:"canceled_at"`
	Message    string `json:"message"`
}

type PaymentVoidResponse struct {
	PaymentID    string        `json:"payment_id"`
	SellerID     string        `json:"seller_id"`
	Amount       int64         `json:"amount"`
	Currency     string        `json:"currency"`
	OrderID      string        `json:"order_id"`
	Status       string        `json:"status"`
	CreditCancel *CreditCancel `json:"credit_cancel"`
}

// CancelRequest asks the gateway to refund a (captured) payment. The
// cancellation is asynchronous on the gateway side; CancelCustomKey is the
// caller's idempotency key, at most 30 characters.
type CancelRequest struct {
	PaymentID       string `json:"payment_id"`
	CancelAmount    int64  `json:"cancel_amount"`
	CancelCustomKey string `json:"cancel_custom_key"`
}

type CancelRequestResponse struct {
	SellerID        string `json:"seller_id"`
	PaymentID       string `json:"payment_id"`
	CancelRequestAt string `json:"cancel_request_at"`
	CancelRequestID string `json:"cancel_request_id"`
	CancelCustomKey string `json:"cancel_custom_key"`
	Status          string `json:"status"`
}
