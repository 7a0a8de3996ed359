package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billingbridge/getnet-gateway/internal/application"
	"github.com/billingbridge/getnet-gateway/internal/domain"
	"github.com/billingbridge/getnet-gateway/internal/infrastructure/getnet"
)

// softDescriptorPrefix is what Getnet prints on the cardholder statement
// before the transaction reference.
const softDescriptorPrefix = "COB "

// softDescriptorLimit is the gateway's statement text limit.
const softDescriptorLimit = 20

// cancelKeyLimit is the gateway's cancel_custom_key length limit.
const cancelKeyLimit = 30

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

func softDescriptor(reference string) string {
	return truncate(softDescriptorPrefix+reference, softDescriptorLimit)
}

// originalTransaction scans the payment's history from oldest to newest
// and returns the first record that carries a gateway payment id. This is
// deliberately a different notion from "latest record": the latest record
// reflects the newest attempt, the original transaction anchors derived
// operations to the row the gateway identifiers were first assigned on.
func originalTransaction(history []*domain.LedgerRecord) *domain.LedgerRecord {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].GatewayPaymentID != "" {
			return history[i]
		}
	}
	return nil
}

// parseGatewayTime parses Getnet's timestamp strings, which come in a few
// RFC 3339 flavours. A zero time is returned when nothing parses.
func parseGatewayTime(s string) time.Time {
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.000Z0700",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// resultFromRecord translates a stored authorization/purchase/capture row
// into the host-facing result. The gateway's approval reason code decides
// between PROCESSED and ERROR.
func resultFromRecord(record *domain.LedgerRecord) domain.TransactionResult {
	status := domain.StatusError
	if record.ReasonCode == domain.ReasonCodeApproved {
		status = domain.StatusProcessed
	}

	return domain.TransactionResult{
		KbPaymentID:       record.KbPaymentID,
		KbTransactionID:   record.KbPaymentTransactionID,
		Type:              record.TransactionType,
		Amount:            record.Amount,
		Currency:          record.Currency,
		Status:            status,
		GatewayErrorCode:  record.ReasonCode,
		GatewayErrorMsg:   record.ReasonMessage,
		FirstReferenceID:  record.GatewayPaymentID,
		SecondReferenceID: record.TerminalNsu,
		CreatedDate:       record.CreatedDate,
		EffectiveDate:     record.AuthorizedAt,
		Properties:        recordProperties(record),
	}
}

func recordProperties(record *domain.LedgerRecord) domain.GatewayProperties {
	return domain.GatewayProperties{
		PaymentID:             record.GatewayPaymentID,
		SellerID:              record.SellerID,
		AuthorizationCode:     record.AuthorizationCode,
		TerminalNsu:           record.TerminalNsu,
		AcquirerTransactionID: record.AcquirerTransactionID,
		TransactionID:         record.GatewayTransactionID,
	}
}

// degradeFailure turns a gateway or local failure into a recordable
// result. A transport failure leaves the gateway-side outcome unknown, so
// it degrades to UNDEFINED; everything else is a definite ERROR.
func degradeFailure(kbPaymentID, kbTransactionID uuid.UUID, txType domain.TransactionType, amount decimal.Decimal, currency string, now time.Time, err error) domain.TransactionResult {
	if errors.Is(err, getnet.ErrGatewayUnavailable) {
		return domain.UndefinedResult(kbPaymentID, kbTransactionID, txType,
			amount, currency, err.Error(), now)
	}

	code := ""
	message := err.Error()
	if gwErr, ok := getnet.IsGatewayError(err); ok {
		code = gwErr.Code
		message = gwErr.Message
	}
	return domain.ErrorResult(kbPaymentID, kbTransactionID, txType,
		amount, currency, code, message, now)
}

// translateGatewayError maps a gateway client failure onto the service
// error taxonomy for the operations that propagate errors.
func translateGatewayError(err error) *application.ServiceError {
	if errors.Is(err, getnet.ErrGatewayUnavailable) {
		return application.NewGatewayUnavailableError(err)
	}
	if _, ok := getnet.IsAuthenticationError(err); ok {
		return application.NewAuthRejectedError(err)
	}
	if gwErr, ok := getnet.IsGatewayError(err); ok {
		return application.NewGatewayRejectedError(gwErr.Code, gwErr.Message)
	}
	return application.NewGatewayUnavailableError(err)
}
