package rest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/billingbridge/getnet-gateway/internal/domain"
)

// transactionRequest is the shared body for the transaction endpoints.
// Amount is in major units.
type transactionRequest struct {
	KbAccountID       string          `json:"kbAccountId"`
	KbTransactionID   string          `json:"kbTransactionId"`
	KbPaymentMethodID string          `json:"kbPaymentMethodId,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
}

type transactionResponse struct {
	KbPaymentID       string                   `json:"kbPaymentId"`
	KbTransactionID   string                   `json:"kbTransactionId"`
	TransactionType   string                   `json:"transactionType"`
	Amount            decimal.Decimal          `json:"amount"`
	Currency          string                   `json:"currency,omitempty"`
	Status            string                   `json:"status"`
	GatewayErrorCode  string                   `json:"gatewayErrorCode,omitempty"`
	GatewayError      string                   `json:"gatewayError,omitempty"`
	FirstReferenceID  string                   `json:"firstPaymentReferenceId,omitempty"`
	SecondReferenceID string                   `json:"secondPaymentReferenceId,omitempty"`
	CreatedDate       time.Time                `json:"createdDate"`
	EffectiveDate     *time.Time               `json:"effectiveDate,omitempty"`
	Properties        domain.GatewayProperties `json:"properties"`
}

func toTransactionResponse(result domain.TransactionResult) transactionResponse {
	resp := transactionResponse{
		KbPaymentID:       result.KbPaymentID.String(),
		KbTransactionID:   result.KbTransactionID.String(),
		TransactionType:   string(result.Type),
		Amount:            result.Amount,
		Currency:          result.Currency,
		Status:            string(result.Status),
		GatewayErrorCode:  result.GatewayErrorCode,
		GatewayError:      result.GatewayErrorMsg,
		FirstReferenceID:  result.FirstReferenceID,
		SecondReferenceID: result.SecondReferenceID,
		CreatedDate:       result.CreatedDate,
		Properties:        result.Properties,
	}
	if !result.EffectiveDate.IsZero() {
		effective := result.EffectiveDate
		resp.EffectiveDate = &effective
	}
	return resp
}

type addPaymentMethodRequest struct {
	KbAccountID       string `json:"kbAccountId"`
	KbPaymentMethodID string `json:"kbPaymentMethodId"`
	IsDefault         bool   `json:"isDefault"`
	Card              struct {
		CardID          string `json:"cardId,omitempty"`
		Number          string `json:"number,omitempty"`
		ExpirationMonth string `json:"expirationMonth,omitempty"`
		ExpirationYear  string `json:"expirationYear,omitempty"`
		HolderName      string `json:"holderName,omitempty"`
	} `json:"card"`
}

type paymentMethodInfoResponse struct {
	KbAccountID       string `json:"kbAccountId"`
	KbPaymentMethodID string `json:"kbPaymentMethodId"`
	ExternalKey       string `json:"externalKey"`
	IsDefault         bool   `json:"isDefault"`
}

type paymentMethodDetailResponse struct {
	CardID          string `json:"cardId"`
	Brand           string `json:"brand"`
	LastFourDigits  string `json:"lastFourDigits"`
	ExpirationMonth string `json:"expirationMonth"`
	ExpirationYear  string `json:"expirationYear"`
	CardholderName  string `json:"cardholderName"`
	CustomerID      string `json:"customerId"`
	Status          string `json:"status"`
}
