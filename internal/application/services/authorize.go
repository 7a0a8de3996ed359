package services

import (
	"context"
	"log/slog"

	"github.com/billingbridge/getnet-gateway/internal/application"
	"github.com/billingbridge/getnet-gateway/internal/domain"
)

// AuthorizeService performs authorize and purchase against the gateway.
// Both paths never propagate an error: failed attempts degrade into a
// result the host can record.
type AuthorizeService struct {
	clients application.GatewayClientSource
	ledger  application.LedgerRepository
	methods application.PaymentMethodRepository
	logger  *slog.Logger
}

func NewAuthorizeService(
	clients application.GatewayClientSource,
	ledger application.LedgerRepository,
	methods application.PaymentMethodRepository,
	logger *slog.Logger,
) *AuthorizeService {
	return &AuthorizeService{
		clients: clients,
		ledger:  ledger,
		methods: methods,
		logger:  logger,
	}
}

// Authorize places a pre-authorization hold; the funds are captured later.
func (s *AuthorizeService) Authorize(ctx context.Context, cmd PaymentCommand) domain.TransactionResult {
	return s.execute(ctx, domain.TypeAuthorize, cmd)
}

// Purchase authorizes and captures in one step.
func (s *AuthorizeService) Purchase(ctx context.Context, cmd PaymentCommand) domain.TransactionResult {
	return s.execute(ctx, domain.TypePurchase, cmd)
}

func (s *AuthorizeService) execute(ctx context.Context, txType domain.TransactionType, cmd PaymentCommand) domain.TransactionResult {
	client, err := s.clients.ClientFor(ctx, cmd.Context.TenantID)
	if err != nil {
		s.logger.Error("failed to resolve gateway client", "tenant_id", cmd.Context.TenantID, "error", err)
		return degradeFailure(cmd.KbPaymentID, cmd.KbTransactionID, txType, cmd.Amount, cmd.Currency, cmd.Context.Now, err)
	}

	method, err := s.methods.FindByKbPaymentMethodID(ctx, cmd.KbPaymentMethodID, cmd.Context.TenantID)
	if err != nil {
		s.logger.Error("failed to resolve payment method",
			"kb_payment_method_id", cmd.KbPaymentMethodID,
			"error", err,
		)
		return degradeFailure(cmd.KbPaymentID, cmd.KbTransactionID, txType, cmd.Amount, cmd.Currency, cmd.Context.Now, err)
	}

	card, err := client.FetchCardByToken(ctx, method.GatewayCardID)
	if err != nil {
		s.logger.Warn("failed to exchange card token", "kb_payment_id", cmd.KbPaymentID, "error", err)
		return degradeFailure(cmd.KbPaymentID, cmd.KbTransactionID, txType, cmd.Amount, cmd.Currency, cmd.Context.Now, err)
	}

	payment := application.PaymentCreditRequest{
		Amount:   domain.ToMinorUnits(cmd.Currency, cmd.Amount),
		Currency: cmd.Currency,
		Order: application.Order{
			OrderID:     cmd.KbTransactionID.String(),
			ProductType: "service",
		},
		Customer: application.CustomerCredit{
			CustomerID: cmd.KbAccountID.String(),
		},
		Credit: application.Credit{
			Delayed:            false,
			PreAuthorization:   txType == domain.TypeAuthorize,
			SaveCardData:       false,
			TransactionType:    "FULL",
			NumberInstallments: 1,
			SoftDescriptor:     softDescriptor(cmd.KbTransactionID.String()),
			Card: application.CardCredit{
				NumberToken:     card.NumberToken,
				CardholderName:  card.CardholderName,
				ExpirationMonth: card.ExpirationMonth,
				ExpirationYear:  card.ExpirationYear,
				Brand:           card.Brand,
			},
		},
	}

	resp, err := client.CreatePayment(ctx, payment)
	if err != nil {
		s.logger.Warn("gateway rejected payment",
			"kb_payment_id", cmd.KbPaymentID,
			"type", txType,
			"error", err,
		)
		return degradeFailure(cmd.KbPaymentID, cmd.KbTransactionID, txType, cmd.Amount, cmd.Currency, cmd.Context.Now, err)
	}

	record := s.recordFromResponse(txType, cmd, resp)
	saved, err := s.ledger.Insert(ctx, record)
	if err != nil {
		s.logger.Error("failed to save ledger record", "kb_payment_id", cmd.KbPaymentID, "error", err)
		return domain.ErrorResult(cmd.KbPaymentID, cmd.KbTransactionID, txType,
			cmd.Amount, cmd.Currency, application.ErrCodeStorage, err.Error(), cmd.Context.Now)
	}

	return resultFromRecord(saved)
}

func (s *AuthorizeService) recordFromResponse(txType domain.TransactionType, cmd PaymentCommand, resp *application.PaymentCreditResponse) *domain.LedgerRecord {
	record := &domain.LedgerRecord{
		KbAccountID:            cmd.KbAccountID,
		KbPaymentID:            cmd.KbPaymentID,
		KbPaymentTransactionID: cmd.KbTransactionID,
		TransactionType:        txType,
		Amount:                 cmd.Amount,
		Currency:               cmd.Currency,
		GatewayPaymentID:       resp.PaymentID,
		SellerID:               resp.SellerID,
		OrderID:                resp.OrderID,
		GatewayStatus:          resp.Status,
		ReceivedAt:             parseGatewayTime(resp.ReceivedAt),
		CreatedDate:            cmd.Context.Now,
		KbTenantID:             cmd.Context.TenantID,
	}

	if resp.Credit != nil {
		record.AuthorizationCode = resp.Credit.AuthorizationCode
		record.AuthorizedAt = parseGatewayTime(resp.Credit.AuthorizedAt)
		record.ReasonCode = resp.Credit.ReasonCode
		record.ReasonMessage = resp.Credit.ReasonMessage
		record.SoftDescriptor = resp.Credit.SoftDescriptor
		record.Brand = resp.Credit.Brand
		record.TerminalNsu = resp.Credit.TerminalNsu
		record.AcquirerTransactionID = resp.Credit.AcquirerTransactionID
		record.GatewayTransactionID = resp.Credit.TransactionID
	}

	return record
}
