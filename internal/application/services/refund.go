package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/billingbridge/getnet-gateway/internal/application"
	"github.com/billingbridge/getnet-gateway/internal/domain"
)

// RefundService requests a cancellation of a captured payment. The
// gateway processes cancellations asynchronously: unless it denies the
// request outright, the outcome stays PENDING and is settled out of band.
type RefundService struct {
	clients application.GatewayClientSource
	ledger  application.LedgerRepository
	logger  *slog.Logger
}

func NewRefundService(
	clients application.GatewayClientSource,
	ledger application.LedgerRepository,
	logger *slog.Logger,
) *RefundService {
	return &RefundService{
		clients: clients,
		ledger:  ledger,
		logger:  logger,
	}
}

func (s *RefundService) Refund(ctx context.Context, cmd RefundCommand) domain.TransactionResult {
	refundError := func(code, message string) domain.TransactionResult {
		return domain.ErrorResult(cmd.KbPaymentID, cmd.KbTransactionID, domain.TypeRefund,
			cmd.Amount, cmd.Currency, code, message, cmd.Context.Now)
	}

	history, err := s.ledger.HistoryForPayment(ctx, cmd.KbPaymentID, cmd.Context.TenantID)
	if err != nil {
		return refundError(application.ErrCodeStorage, err.Error())
	}
	original := originalTransaction(history)
	if original == nil {
		return refundError("", "failed to find the original gateway payment id")
	}

	client, err := s.clients.ClientFor(ctx, cmd.Context.TenantID)
	if err != nil {
		return refundError("", err.Error())
	}

	cancel := application.CancelRequest{
		PaymentID:       original.GatewayPaymentID,
		CancelAmount:    domain.ToMinorUnits(cmd.Currency, cmd.Amount),
		CancelCustomKey: truncate(cmd.KbTransactionID.String(), cancelKeyLimit),
	}

	resp, err := client.RefundPayment(ctx, cancel)
	if err != nil {
		s.logger.Warn("gateway refused cancel request",
			"kb_payment_id", cmd.KbPaymentID,
			"error", err,
		)
		return degradeFailure(cmd.KbPaymentID, cmd.KbTransactionID, domain.TypeRefund,
			cmd.Amount, cmd.Currency, cmd.Context.Now, err)
	}

	record := &domain.LedgerRecord{
		KbAccountID:            cmd.KbAccountID,
		KbPaymentID:            cmd.KbPaymentID,
		KbPaymentTransactionID: cmd.KbTransactionID,
		TransactionType:        domain.TypeRefund,
		Amount:                 cmd.Amount,
		Currency:               cmd.Currency,
		GatewayPaymentID:       resp.PaymentID,
		SellerID:               resp.SellerID,
		OrderID:                original.OrderID,
		GatewayStatus:          resp.Status,
		ReceivedAt:             parseGatewayTime(resp.CancelRequestAt),
		AuthorizationCode:      original.AuthorizationCode,
		AuthorizedAt:           original.AuthorizedAt,
		ReasonCode:             original.ReasonCode,
		ReasonMessage:          "cancel request " + resp.CancelRequestID,
		SoftDescriptor:         original.SoftDescriptor,
		Brand:                  original.Brand,
		TerminalNsu:            original.TerminalNsu,
		AcquirerTransactionID:  original.AcquirerTransactionID,
		GatewayTransactionID:   original.GatewayTransactionID,
		CreatedDate:            cmd.Context.Now,
		KbTenantID:             cmd.Context.TenantID,
	}

	saved, err := s.ledger.Insert(ctx, record)
	if err != nil {
		s.logger.Error("failed to save refund record", "kb_payment_id", cmd.KbPaymentID, "error", err)
		return refundError(application.ErrCodeStorage, err.Error())
	}

	status := domain.StatusPending
	if strings.EqualFold(resp.Status, "DENIED") {
		status = domain.StatusError
	}

	return domain.TransactionResult{
		KbPaymentID:       cmd.KbPaymentID,
		KbTransactionID:   cmd.KbTransactionID,
		Type:              domain.TypeRefund,
		Amount:            cmd.Amount,
		Currency:          cmd.Currency,
		Status:            status,
		GatewayErrorCode:  resp.Status,
		FirstReferenceID:  resp.PaymentID,
		SecondReferenceID: saved.TerminalNsu,
		CreatedDate:       cmd.Context.Now,
		EffectiveDate:     saved.ReceivedAt,
		Properties:        recordProperties(saved),
	}
}
