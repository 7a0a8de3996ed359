package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerModel mirrors one getnet_payments row. ReceivedAt and AuthorizedAt
// are nullable: void and refund responses carry no fresh authorization
// payload.
type ledgerModel struct {
	RecordID               int64
	KbAccountID            uuid.UUID
	KbPaymentID            uuid.UUID
	KbPaymentTransactionID uuid.UUID
	TransactionType        string
	Amount                 decimal.Decimal
	Currency               string
	GetnetPaymentID        string
	SellerID               string
	OrderID                string
	GetnetStatus           string
	ReceivedAt             *time.Time
	AuthorizationCode      string
	AuthorizedAt           *time.Time
	ReasonCode             string
	ReasonMessage          string
	SoftDescriptor         string
	Brand                  string
	TerminalNsu            string
	AcquirerTransactionID  string
	TransactionID          string
	CreatedDate            time.Time
	KbTenantID             uuid.UUID
}

// paymentMethodModel mirrors one getnet_payment_methods row.
type paymentMethodModel struct {
	RecordID          int64
	KbAccountID       uuid.UUID
	KbPaymentMethodID uuid.UUID
	GetnetCardID      string
	IsDefault         bool
	IsDeleted         bool
	CreatedDate       time.Time
	UpdatedDate       time.Time
	KbTenantID        uuid.UUID
}
