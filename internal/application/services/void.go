package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/billingbridge/getnet-gateway/internal/application"
	"github.com/billingbridge/getnet-gateway/internal/domain"
)

// VoidService cancels a payment on the gateway. Getnet only voids within a
// narrow window after authorization, so the business rules run before any
// gateway call. Failures degrade into a result the host can record.
type VoidService struct {
	clients application.GatewayClientSource
	ledger  application.LedgerRepository
	host    application.HostClient
	logger  *slog.Logger
}

func NewVoidService(
	clients application.GatewayClientSource,
	ledger application.LedgerRepository,
	host application.HostClient,
	logger *slog.Logger,
) *VoidService {
	return &VoidService{
		clients: clients,
		ledger:  ledger,
		host:    host,
		logger:  logger,
	}
}

func (s *VoidService) Void(ctx context.Context, cmd VoidCommand) domain.TransactionResult {
	voidError := func(code, message string) domain.TransactionResult {
		return domain.ErrorResult(cmd.KbPaymentID, cmd.KbTransactionID, domain.TypeVoid,
			decimal.Zero, "", code, message, cmd.Context.Now)
	}

	payment, err := s.host.GetPayment(ctx, cmd.KbPaymentID)
	if err != nil {
		s.logger.Error("failed to retrieve payment from host platform",
			"kb_payment_id", cmd.KbPaymentID,
			"error", err,
		)
		return voidError("", "failed to retrieve the related payment")
	}

	elapsed := cmd.Context.Now.Sub(payment.CreatedDate)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	elapsedDays := int64(elapsed.Hours() / 24)

	captured := payment.CapturedAmount
	if elapsedDays >= 1 && captured.IsPositive() {
		return voidError("", "cannot void a captured transaction older than a day, retry with refund")
	}
	if elapsedDays >= 1 && elapsedDays < 7 && captured.IsZero() {
		return voidError("", "pre-authorization expired, verify the transaction on the gateway directly")
	}

	history, err := s.ledger.HistoryForPayment(ctx, cmd.KbPaymentID, cmd.Context.TenantID)
	if err != nil {
		return voidError(application.ErrCodeStorage, err.Error())
	}
	original := originalTransaction(history)
	if original == nil {
		return voidError("", "failed to find the original gateway payment id")
	}

	client, err := s.clients.ClientFor(ctx, cmd.Context.TenantID)
	if err != nil {
		return voidError("", err.Error())
	}

	resp, err := client.VoidPayment(ctx, original.GatewayPaymentID)
	if err != nil {
		return degradeFailure(cmd.KbPaymentID, cmd.KbTransactionID, domain.TypeVoid,
			original.Amount, original.Currency, cmd.Context.Now, err)
	}

	record := &domain.LedgerRecord{
		KbAccountID:            cmd.KbAccountID,
		KbPaymentID:            cmd.KbPaymentID,
		KbPaymentTransactionID: cmd.KbTransactionID,
		TransactionType:        domain.TypeVoid,
		Amount:                 original.Amount,
		Currency:               original.Currency,
		GatewayPaymentID:       resp.PaymentID,
		SellerID:               resp.SellerID,
		OrderID:                resp.OrderID,
		GatewayStatus:          resp.Status,
		AuthorizationCode:      original.AuthorizationCode,
		AuthorizedAt:           original.AuthorizedAt,
		ReasonCode:             original.ReasonCode,
		SoftDescriptor:         original.SoftDescriptor,
		Brand:                  original.Brand,
		TerminalNsu:            original.TerminalNsu,
		AcquirerTransactionID:  original.AcquirerTransactionID,
		GatewayTransactionID:   original.GatewayTransactionID,
		CreatedDate:            cmd.Context.Now,
		KbTenantID:             cmd.Context.TenantID,
	}

	message := resp.Status
	if resp.CreditCancel != nil {
		record.ReceivedAt = parseGatewayTime(resp.CreditCancel.CanceledAt)
		record.ReasonMessage = resp.CreditCancel.Message
		message = resp.CreditCancel.Message
	}

	saved, err := s.ledger.Insert(ctx, record)
	if err != nil {
		s.logger.Error("failed to save void record", "kb_payment_id", cmd.KbPaymentID, "error", err)
		return voidError(application.ErrCodeStorage, err.Error())
	}

	status := domain.StatusError
	if strings.EqualFold(resp.Status, "CANCELED") {
		status = domain.StatusProcessed
	}

	return domain.TransactionResult{
		KbPaymentID:       cmd.KbPaymentID,
		KbTransactionID:   cmd.KbTransactionID,
		Type:              domain.TypeVoid,
		Amount:            saved.Amount,
		Currency:          saved.Currency,
		Status:            status,
		GatewayErrorMsg:   message,
		GatewayErrorCode:  resp.Status,
		FirstReferenceID:  resp.PaymentID,
		SecondReferenceID: saved.TerminalNsu,
		CreatedDate:       cmd.Context.Now,
		EffectiveDate:     cmd.Context.Now,
		Properties:        recordProperties(saved),
	}
}
