package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/billingbridge/getnet-gateway/internal/application"
	"github.com/billingbridge/getnet-gateway/internal/domain"
	"github.com/billingbridge/getnet-gateway/internal/infrastructure/persistence/postgres"
)

// CaptureService confirms a delayed (pre-authorized) payment. Unlike
// authorize, a capture failure propagates as an error: there is no safe
// default result to hand the host.
type CaptureService struct {
	clients application.GatewayClientSource
	ledger  application.LedgerRepository
	logger  *slog.Logger
}

func NewCaptureService(
	clients application.GatewayClientSource,
	ledger application.LedgerRepository,
	logger *slog.Logger,
) *CaptureService {
	return &CaptureService{
		clients: clients,
		ledger:  ledger,
		logger:  logger,
	}
}

func (s *CaptureService) Capture(ctx context.Context, cmd CaptureCommand) (*domain.TransactionResult, error) {
	latest, err := s.ledger.LatestForPayment(ctx, cmd.KbPaymentID, cmd.Context.TenantID)
	if err != nil {
		if errors.Is(err, postgres.ErrRecordNotFound) {
			return nil, application.NewPreconditionError("no prior authorization found for payment")
		}
		return nil, application.NewStorageError(err)
	}

	client, err := s.clients.ClientFor(ctx, cmd.Context.TenantID)
	if err != nil {
		return nil, application.NewInvalidInputError(err)
	}

	resp, err := client.ConfirmCapture(ctx, latest.GatewayPaymentID, domain.ToMinorUnits(cmd.Currency, cmd.Amount))
	if err != nil {
		return nil, translateGatewayError(err)
	}

	if !strings.EqualFold(resp.Status, "CONFIRMED") {
		message := resp.Status
		if resp.CreditConfirm != nil {
			message = resp.CreditConfirm.Message
		}
		return nil, application.NewGatewayRejectedError(resp.Status, "transaction could not be captured: "+message)
	}

	history, err := s.ledger.HistoryForPayment(ctx, cmd.KbPaymentID, cmd.Context.TenantID)
	if err != nil {
		return nil, application.NewStorageError(err)
	}
	original := originalTransaction(history)
	if original == nil {
		original = latest
	}

	record := &domain.LedgerRecord{
		KbAccountID:            cmd.KbAccountID,
		KbPaymentID:            cmd.KbPaymentID,
		KbPaymentTransactionID: cmd.KbTransactionID,
		TransactionType:        domain.TypeCapture,
		Amount:                 cmd.Amount,
		Currency:               cmd.Currency,
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
	if resp.CreditConfirm != nil {
		record.ReceivedAt = parseGatewayTime(resp.CreditConfirm.ConfirmDate)
		record.ReasonMessage = resp.CreditConfirm.Message
	}

	saved, err := s.ledger.Insert(ctx, record)
	if err != nil {
		s.logger.Error("failed to save capture record", "kb_payment_id", cmd.KbPaymentID, "error", err)
		return nil, application.NewStorageError(err)
	}

	result := resultFromRecord(saved)
	return &result, nil
}
