package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerRecord is one immutable row recording a single gateway interaction
// outcome for a billing transaction. Rows are never updated; the set of
// records for a payment forms an append-only history ordered by RecordID.
type LedgerRecord struct {
	RecordID               int64
	KbAccountID            uuid.UUID
	KbPaymentID            uuid.UUID
	KbPaymentTransactionID uuid.UUID
	TransactionType        TransactionType
	Amount                 decimal.Decimal
	Currency               string
	GatewayPaymentID       string
	SellerID               string
	OrderID                string
	GatewayStatus          string
	ReceivedAt             time.Time
	AuthorizationCode      string
	AuthorizedAt           time.Time
	ReasonCode             string
	ReasonMessage          string
	SoftDescriptor         string
	Brand                  string
	TerminalNsu            string
	AcquirerTransactionID  string
	GatewayTransactionID   string
	CreatedDate            time.Time
	KbTenantID             uuid.UUID
}

// PaymentMethodRecord maps a billing payment-method id to a gateway vault
// card id. At most one record exists per (KbPaymentMethodID, KbTenantID);
// records are soft-deleted, never removed.
type PaymentMethodRecord struct {
	RecordID          int64
	KbAccountID       uuid.UUID
	KbPaymentMethodID uuid.UUID
	GatewayCardID     string
	IsDefault         bool
	IsDeleted         bool
	CreatedDate       time.Time
	UpdatedDate       time.Time
	KbTenantID        uuid.UUID
}
