package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billingbridge/getnet-gateway/internal/domain"
)

// GatewayClientSource resolves a gateway client bound to a tenant's
// credential session. Sessions for different tenants are never shared.
type GatewayClientSource interface {
	ClientFor(ctx context.Context, tenantID uuid.UUID) (GatewayClient, error)
}

// LedgerRepository is the port for the append-only gateway interaction
// ledger.
type LedgerRepository interface {
	// Insert persists the record and returns the stored row, including
	// its assigned RecordID. The insert and the read-back run inside one
	// database transaction.
	Insert(ctx context.Context, record *domain.LedgerRecord) (*domain.LedgerRecord, error)
	// LatestForPayment returns the most recently inserted record for the
	// payment, regardless of its transaction type.
	LatestForPayment(ctx context.Context, kbPaymentID, kbTenantID uuid.UUID) (*domain.LedgerRecord, error)
	// HistoryForPayment returns every record for the payment, newest
	// first.
	HistoryForPayment(ctx context.Context, kbPaymentID, kbTenantID uuid.UUID) ([]*domain.LedgerRecord, error)
}

// PaymentMethodRepository is the port for the local vault card store.
type PaymentMethodRepository interface {
	Insert(ctx context.Context, record *domain.PaymentMethodRecord) error
	FindByKbPaymentMethodID(ctx context.Context, kbPaymentMethodID, kbTenantID uuid.UUID) (*domain.PaymentMethodRecord, error)
	// ListByAccount returns the non-deleted records for the account.
	ListByAccount(ctx context.Context, kbAccountID, kbTenantID uuid.UUID) ([]*domain.PaymentMethodRecord, error)
	// MarkDeleted soft-deletes the record and clears its default flag.
	MarkDeleted(ctx context.Context, kbPaymentMethodID, kbTenantID uuid.UUID) error
	// SetDefault flags the record as the account's default and clears the
	// flag on every other non-deleted record, atomically.
	SetDefault(ctx context.Context, kbAccountID, kbPaymentMethodID, kbTenantID uuid.UUID) error
}

// HostPayment is the slice of the host platform's payment state needed for
// the void business rules.
type HostPayment struct {
	KbPaymentID    uuid.UUID
	CreatedDate    time.Time
	AuthAmount     decimal.Decimal
	CapturedAmount decimal.Decimal
	Currency       string
}

// HostClient is the port to the host billing platform, which this
// subsystem treats as a black box.
type HostClient interface {
	GetPayment(ctx context.Context, kbPaymentID uuid.UUID) (*HostPayment, error)
	GetAccountExternalKey(ctx context.Context, kbAccountID uuid.UUID) (string, error)
	ListPaymentMethods(ctx context.Context, kbAccountID uuid.UUID) ([]uuid.UUID, error)
	DeletePaymentMethod(ctx context.Context, kbPaymentMethodID uuid.UUID) error
}
