package services_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/billingbridge/getnet-gateway/internal/application"
	"github.com/billingbridge/getnet-gateway/internal/domain"
)

type mockGatewayClient struct {
	mock.Mock
}

func (m *mockGatewayClient) TokenizeCard(ctx context.Context, cardNumber string) (string, error) {
	args := m.Called(ctx, cardNumber)
	return args.String(0), args.Error(1)
}

func (m *mockGatewayClient) SaveCardToVault(ctx context.Context, card application.VaultCard) (*application.VaultCardResponse, error) {
	args := m.Called(ctx, card)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.VaultCardResponse), args.Error(1)
}

func (m *mockGatewayClient) FetchCardByToken(ctx context.Context, cardID string) (*application.VaultCardResponse, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.VaultCardResponse), args.Error(1)
}

func (m *mockGatewayClient) DeleteCard(ctx context.Context, cardID string) error {
	args := m.Called(ctx, cardID)
	return args.Error(0)
}

func (m *mockGatewayClient) ListCardsByCustomer(ctx context.Context, customerID string) ([]application.VaultCardResponse, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]application.VaultCardResponse), args.Error(1)
}

func (m *mockGatewayClient) CreatePayment(ctx context.Context, payment application.PaymentCreditRequest) (*application.PaymentCreditResponse, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.PaymentCreditResponse), args.Error(1)
}

func (m *mockGatewayClient) ConfirmCapture(ctx context.Context, gatewayPaymentID string, amount int64) (*application.PaymentConfirmResponse, error) {
	args := m.Called(ctx, gatewayPaymentID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.PaymentConfirmResponse), args.Error(1)
}

func (m *mockGatewayClient) VoidPayment(ctx context.Context, gatewayPaymentID string) (*application.PaymentVoidResponse, error) {
	args := m.Called(ctx, gatewayPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.PaymentVoidResponse), args.Error(1)
}

func (m *mockGatewayClient) RefundPayment(ctx context.Context, cancel application.CancelRequest) (*application.CancelRequestResponse, error) {
	args := m.Called(ctx, cancel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.CancelRequestResponse), args.Error(1)
}

type mockClientSource struct {
	mock.Mock
}

func (m *mockClientSource) ClientFor(ctx context.Context, tenantID uuid.UUID) (application.GatewayClient, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(application.GatewayClient), args.Error(1)
}

type mockLedgerRepository struct {
	mock.Mock
}

// Insert accepts either a fixed record or a function computing the saved
// row from the inserted one, so tests can echo the input back with an
// assigned record id.
func (m *mockLedgerRepository) Insert(ctx context.Context, record *domain.LedgerRecord) (*domain.LedgerRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(context.Context, *domain.LedgerRecord) *domain.LedgerRecord); ok {
		return fn(ctx, record), args.Error(1)
	}
	return args.Get(0).(*domain.LedgerRecord), args.Error(1)
}

func (m *mockLedgerRepository) LatestForPayment(ctx context.Context, kbPaymentID, kbTenantID uuid.UUID) (*domain.LedgerRecord, error) {
	args := m.Called(ctx, kbPaymentID, kbTenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerRecord), args.Error(1)
}

func (m *mockLedgerRepository) HistoryForPayment(ctx context.Context, kbPaymentID, kbTenantID uuid.UUID) ([]*domain.LedgerRecord, error) {
	args := m.Called(ctx, kbPaymentID, kbTenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LedgerRecord), args.Error(1)
}

type mockPaymentMethodRepository struct {
	mock.Mock
}

func (m *mockPaymentMethodRepository) Insert(ctx context.Context, record *domain.PaymentMethodRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockPaymentMethodRepository) FindByKbPaymentMethodID(ctx context.Context, kbPaymentMethodID, kbTenantID uuid.UUID) (*domain.PaymentMethodRecord, error) {
	args := m.Called(ctx, kbPaymentMethodID, kbTenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethodRecord), args.Error(1)
}

func (m *mockPaymentMethodRepository) ListByAccount(ctx context.Context, kbAccountID, kbTenantID uuid.UUID) ([]*domain.PaymentMethodRecord, error) {
	args := m.Called(ctx, kbAccountID, kbTenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentMethodRecord), args.Error(1)
}

func (m *mockPaymentMethodRepository) MarkDeleted(ctx context.Context, kbPaymentMethodID, kbTenantID uuid.UUID) error {
	args := m.Called(ctx, kbPaymentMethodID, kbTenantID)
	return args.Error(0)
}

func (m *mockPaymentMethodRepository) SetDefault(ctx context.Context, kbAccountID, kbPaymentMethodID, kbTenantID uuid.UUID) error {
	args := m.Called(ctx, kbAccountID, kbPaymentMethodID, kbTenantID)
	return args.Error(0)
}

type mockHostClient struct {
	mock.Mock
}

func (m *mockHostClient) GetPayment(ctx context.Context, kbPaymentID uuid.UUID) (*application.HostPayment, error) {
	args := m.Called(ctx, kbPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.HostPayment), args.Error(1)
}

func (m *mockHostClient) GetAccountExternalKey(ctx context.Context, kbAccountID uuid.UUID) (string, error) {
	args := m.Called(ctx, kbAccountID)
	return args.String(0), args.Error(1)
}

func (m *mockHostClient) ListPaymentMethods(ctx context.Context, kbAccountID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, kbAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *mockHostClient) DeletePaymentMethod(ctx context.Context, kbPaymentMethodID uuid.UUID) error {
	args := m.Called(ctx, kbPaymentMethodID)
	return args.Error(0)
}
