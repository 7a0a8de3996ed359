package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/billingbridge/getnet-gateway/internal/application"
	"github.com/billingbridge/getnet-gateway/internal/domain"
)

var ErrRecordNotFound = errors.New("ledger record not found")

const ledgerColumns = `
	record_id, kb_account_id, kb_payment_id, kb_payment_transaction_id,
	transaction_type, amount, currency, getnet_payment_id, seller_id,
	order_id, getnet_status, received_at, authorization_code, authorized_at,
	reason_code, reason_message, soft_descriptor, brand, terminal_nsu,
	acquirer_transaction_id, transaction_id, created_date, kb_tenant_id`

type LedgerRepository struct {
	db *DB
}

func NewLedgerRepository(db *DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

var _ application.LedgerRepository = (*LedgerRepository)(nil)

// Insert appends the record and reads the stored row back inside the same
// transaction, so the caller observes its own write including the assigned
// record id.
func (r *LedgerRepository) Insert(ctx context.Context, record *domain.LedgerRecord) (*domain.LedgerRecord, error) {
	query := `
		INSERT INTO getnet_payments (
			kb_account_id, kb_payment_id, kb_payment_transaction_id,
			transaction_type, amount, currency, getnet_payment_id, seller_id,
			order_id, getnet_status, received_at, authorization_code, authorized_at,
			reason_code, reason_message, soft_descriptor, brand, terminal_nsu,
			acquirer_transaction_id, transaction_id, created_date, kb_tenant_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		          $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING record_id
	`

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	m := toLedgerModel(record)
	var recordID int64
	err = tx.QueryRow(ctx, query,
		m.KbAccountID,
		m.KbPaymentID,
		m.KbPaymentTransactionID,
		m.TransactionType,
		m.Amount,
		m.Currency,
		m.GetnetPaymentID,
		m.SellerID,
		m.OrderID,
		m.GetnetStatus,
		m.ReceivedAt,
		m.AuthorizationCode,
		m.AuthorizedAt,
		m.ReasonCode,
		m.ReasonMessage,
		m.SoftDescriptor,
		m.Brand,
		m.TerminalNsu,
		m.AcquirerTransactionID,
		m.TransactionID,
		m.CreatedDate,
		m.KbTenantID,
	).Scan(&recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert ledger record: %w", err)
	}

	row := tx.QueryRow(ctx,
		`SELECT `+ledgerColumns+` FROM getnet_payments WHERE record_id = $1`,
		recordID,
	)
	saved, err := scanLedgerRecord(row)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit ledger insert: %w", err)
	}

	return saved, nil
}

// LatestForPayment returns the most recently inserted record for the
// payment, regardless of transaction type.
func (r *LedgerRepository) LatestForPayment(ctx context.Context, kbPaymentID, kbTenantID uuid.UUID) (*domain.LedgerRecord, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM getnet_payments
		WHERE kb_payment_id = $1 AND kb_tenant_id = $2
		ORDER BY record_id DESC
		LIMIT 1
	`

	row := r.db.Pool.QueryRow(ctx, query, kbPaymentID, kbTenantID)
	return scanLedgerRecord(row)
}

// HistoryForPayment returns every record for the payment, newest first.
func (r *LedgerRepository) HistoryForPayment(ctx context.Context, kbPaymentID, kbTenantID uuid.UUID) ([]*domain.LedgerRecord, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM getnet_payments
		WHERE kb_payment_id = $1 AND kb_tenant_id = $2
		ORDER BY record_id DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, kbPaymentID, kbTenantID)
	if err != nil {
		return nil, fmt.Errorf("query ledger history: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.LedgerRecord, error) {
		var m ledgerModel
		err := row.Scan(
			&m.RecordID, &m.KbAccountID, &m.KbPaymentID, &m.KbPaymentTransactionID,
			&m.TransactionType, &m.Amount, &m.Currency, &m.GetnetPaymentID, &m.SellerID,
			&m.OrderID, &m.GetnetStatus, &m.ReceivedAt, &m.AuthorizationCode, &m.AuthorizedAt,
			&m.ReasonCode, &m.ReasonMessage, &m.SoftDescriptor, &m.Brand, &m.TerminalNsu,
			&m.AcquirerTransactionID, &m.TransactionID, &m.CreatedDate, &m.KbTenantID,
		)
		return toLedgerRecord(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("scan ledger history: %w", err)
	}

	return results, nil
}

// scanLedgerRecord converts a database row into a domain LedgerRecord.
// Returns ErrRecordNotFound if the row doesn't exist.
func scanLedgerRecord(row pgx.Row) (*domain.LedgerRecord, error) {
	var m ledgerModel
	err := row.Scan(
		&m.RecordID, &m.KbAccountID, &m.KbPaymentID, &m.KbPaymentTransactionID,
		&m.TransactionType, &m.Amount, &m.Currency, &m.GetnetPaymentID, &m.SellerID,
		&m.OrderID, &m.GetnetStatus, &m.ReceivedAt, &m.AuthorizationCode, &m.AuthorizedAt,
		&m.ReasonCode, &m.ReasonMessage, &m.SoftDescriptor, &m.Brand, &m.TerminalNsu,
		&m.AcquirerTransactionID, &m.TransactionID, &m.CreatedDate, &m.KbTenantID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to scan ledger record: %w", err)
	}
	return toLedgerRecord(m), nil
}
