package services

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billingbridge/getnet-gateway/internal/domain"
)

// PaymentCommand is the input for authorize and purchase.
type PaymentCommand struct {
	KbAccountID       uuid.UUID
	KbPaymentID       uuid.UUID
	KbTransactionID   uuid.UUID
	KbPaymentMethodID uuid.UUID
	Amount            decimal.Decimal
	Currency          string
	Context           domain.CallContext
}

// CaptureCommand captures a previously authorized payment.
type CaptureCommand struct {
	KbAccountID     uuid.UUID
	KbPaymentID     uuid.UUID
	KbTransactionID uuid.UUID
	Amount          decimal.Decimal
	Currency        string
	Context         domain.CallContext
}

// VoidCommand cancels a payment before the void window closes.
type VoidCommand struct {
	KbAccountID     uuid.UUID
	KbPaymentID     uuid.UUID
	KbTransactionID uuid.UUID
	Context         domain.CallContext
}

// RefundCommand requests an asynchronous cancellation of a captured
// payment.
type RefundCommand struct {
	KbAccountID     uuid.UUID
	KbPaymentID     uuid.UUID
	KbTransactionID uuid.UUID
	Amount          decimal.Decimal
	Currency        string
	Context         domain.CallContext
}

// CardInput carries the card fields supplied by the host when adding a
// payment method. CardID short-circuits the gateway interaction: it binds
// the method to a card tokenized out-of-band.
type CardInput struct {
	CardID          string
	Number          string
	ExpirationMonth string
	ExpirationYear  string
	HolderName      string
}

type AddPaymentMethodCommand struct {
	KbAccountID       uuid.UUID
	KbPaymentMethodID uuid.UUID
	Card              CardInput
	SetDefault        bool
	Context           domain.CallContext
}
