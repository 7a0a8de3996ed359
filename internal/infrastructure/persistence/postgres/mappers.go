package postgres

import (
	"time"

	"github.com/billingbridge/getnet-gateway/internal/domain"
)

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func toLedgerModel(r *domain.LedgerRecord) ledgerModel {
	return ledgerModel{
		RecordID:               r.RecordID,
		KbAccountID:            r.KbAccountID,
		KbPaymentID:            r.KbPaymentID,
		KbPaymentTransactionID: r.KbPaymentTransactionID,
		TransactionType:        string(r.TransactionType),
		Amount:                 r.Amount,
		Currency:               r.Currency,
		GetnetPaymentID:        r.GatewayPaymentID,
		SellerID:               r.SellerID,
		OrderID:                r.OrderID,
		GetnetStatus:           r.GatewayStatus,
		ReceivedAt:             nullableTime(r.ReceivedAt),
		AuthorizationCode:      r.AuthorizationCode,
		AuthorizedAt:           nullableTime(r.AuthorizedAt),
		ReasonCode:             r.ReasonCode,
		ReasonMessage:          r.ReasonMessage,
		SoftDescriptor:         r.SoftDescriptor,
		Brand:                  r.Brand,
		TerminalNsu:            r.TerminalNsu,
		AcquirerTransactionID:  r.AcquirerTransactionID,
		TransactionID:          r.GatewayTransactionID,
		CreatedDate:            r.CreatedDate,
		KbTenantID:             r.KbTenantID,
	}
}

func toLedgerRecord(m ledgerModel) *domain.LedgerRecord {
	return &domain.LedgerRecord{
		RecordID:               m.RecordID,
		KbAccountID:            m.KbAccountID,
		KbPaymentID:            m.KbPaymentID,
		KbPaymentTransactionID: m.KbPaymentTransactionID,
		TransactionType:        domain.TransactionType(m.TransactionType),
		Amount:                 m.Amount,
		Currency:               m.Currency,
		GatewayPaymentID:       m.GetnetPaymentID,
		SellerID:               m.SellerID,
		OrderID:                m.OrderID,
		GatewayStatus:          m.GetnetStatus,
		ReceivedAt:             timeOrZero(m.ReceivedAt),
		AuthorizationCode:      m.AuthorizationCode,
		AuthorizedAt:           timeOrZero(m.AuthorizedAt),
		ReasonCode:             m.ReasonCode,
		ReasonMessage:          m.ReasonMessage,
		SoftDescriptor:         m.SoftDescriptor,
		Brand:                  m.Brand,
		TerminalNsu:            m.TerminalNsu,
		AcquirerTransactionID:  m.AcquirerTransactionID,
		GatewayTransactionID:   m.TransactionID,
		CreatedDate:            m.CreatedDate,
		KbTenantID:             m.KbTenantID,
	}
}

func toPaymentMethodRecord(m paymentMethodModel) *domain.PaymentMethodRecord {
	return &domain.PaymentMethodRecord{
		RecordID:          m.RecordID,
		KbAccountID:       m.KbAccountID,
		KbPaymentMethodID: m.KbPaymentMethodID,
		GatewayCardID:     m.GetnetCardID,
		IsDefault:         m.IsDefault,
		IsDeleted:         m.IsDeleted,
		CreatedDate:       m.CreatedDate,
		UpdatedDate:       m.UpdatedDate,
		KbTenantID:        m.KbTenantID,
	}
}
