// Package domain holds the entities shared between the orchestration
// services, the gateway client and the persistence layer.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType mirrors the host platform's payment transaction types.
type TransactionType string

const (
	TypeAuthorize TransactionType = "AUTHORIZE"
	TypeCapture   TransactionType = "CAPTURE"
	TypePurchase  TransactionType = "PURCHASE"
	TypeVoid      TransactionType = "VOID"
	TypeRefund    TransactionType = "REFUND"
)

// ResultStatus is the outcome reported back to the host platform.
type ResultStatus string

const (
	StatusProcessed ResultStatus = "PROCESSED"
	StatusPending   ResultStatus = "PENDING"
	StatusError     ResultStatus = "ERROR"
	StatusUndefined ResultStatus = "UNDEFINED"
)

// ReasonCodeApproved is Getnet's reason code for an approved credit
// transaction.
const ReasonCodeApproved = "00"

// CallContext carries the per-request tenant scope and clock supplied by
// the host platform.
type CallContext struct {
	TenantID uuid.UUID
	Now      time.Time
}

// GatewayProperties are the gateway-specific identifiers surfaced on every
// transaction result.
type GatewayProperties struct {
	PaymentID             string `json:"paymentId"`
	SellerID              string `json:"sellerId"`
	AuthorizationCode     string `json:"authorizationCode"`
	TerminalNsu           string `json:"terminalNsu"`
	AcquirerTransactionID string `json:"acquirerTransactionId"`
	TransactionID         string `json:"transactionId"`
}

// TransactionResult is what every orchestration operation hands back to the
// host platform. Failed attempts are represented as a result with an ERROR
// or UNDEFINED status rather than an error value, so the host always has a
// recordable outcome.
type TransactionResult struct {
	KbPaymentID     uuid.UUID
	KbTransactionID uuid.UUID
	Type            TransactionType
	Amount          decimal.Decimal
	Currency        string
	Status          ResultStatus

	GatewayErrorCode string
	GatewayErrorMsg  string

	// FirstReferenceID is the gateway payment id, SecondReferenceID the
	// terminal NSU.
	FirstReferenceID  string
	SecondReferenceID string

	CreatedDate   time.Time
	EffectiveDate time.Time

	Properties GatewayProperties
}

// ErrorResult degrades a failed attempt into a recordable outcome.
func ErrorResult(kbPaymentID, kbTransactionID uuid.UUID, txType TransactionType, amount decimal.Decimal, currency string, code, message string, now time.Time) TransactionResult {
	return TransactionResult{
		KbPaymentID:      kbPaymentID,
		KbTransactionID:  kbTransactionID,
		Type:             txType,
		Amount:           amount,
		Currency:         currency,
		Status:           StatusError,
		GatewayErrorCode: code,
		GatewayErrorMsg:  message,
		CreatedDate:      now,
	}
}

// UndefinedResult reports an attempt whose gateway-side outcome is unknown,
// typically because the gateway was unreachable.
func UndefinedResult(kbPaymentID, kbTransactionID uuid.UUID, txType TransactionType, amount decimal.Decimal, currency string, message string, now time.Time) TransactionResult {
	return TransactionResult{
		KbPaymentID:     kbPaymentID,
		KbTransactionID: kbTransactionID,
		Type:            txType,
		Amount:          amount,
		Currency:        currency,
		Status:          StatusUndefined,
		GatewayErrorMsg: message,
		CreatedDate:     now,
	}
}

// PaymentMethodInfo is one entry of the payment-method listing returned to
// the host platform.
type PaymentMethodInfo struct {
	KbAccountID       uuid.UUID
	KbPaymentMethodID uuid.UUID
	ExternalKey       string
	IsDefault         bool
}

// PaymentMethodDetail is the live card detail fetched from the vault.
type PaymentMethodDetail struct {
	CardID          string
	Brand           string
	LastFourDigits  string
	ExpirationMonth string
	ExpirationYear  string
	CardholderName  string
	CustomerID      string
	Status          string
}
