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

var (
	ErrPaymentMethodNotFound  = errors.New("payment method not found")
	ErrDuplicatePaymentMethod = errors.New("payment method already exists for tenant")
)

const paymentMethodColumns = `
	record_id, kb_account_id, kb_payment_method_id, getnet_card_id,
	is_default, is_deleted, created_date, updated_date, kb_tenant_id`

type PaymentMethodRepository struct {
	db *DB
}

func NewPaymentMethodRepository(db *DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: db}
}

var _ application.PaymentMethodRepository = (*PaymentMethodRepository)(nil)

func (r *PaymentMethodRepository) Insert(ctx context.Context, record *domain.PaymentMethodRecord) error {
	query := `
		INSERT INTO getnet_payment_methods (
			kb_account_id, kb_payment_method_id, getnet_card_id,
			is_default, is_deleted, created_date, updated_date, kb_tenant_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		record.KbAccountID,
		record.KbPaymentMethodID,
		record.GatewayCardID,
		record.IsDefault,
		record.IsDeleted,
		record.CreatedDate,
		record.UpdatedDate,
		record.KbTenantID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicatePaymentMethod
		}
		return fmt.Errorf("failed to insert payment method: %w", err)
	}

	return nil
}

func (r *PaymentMethodRepository) FindByKbPaymentMethodID(ctx context.Context, kbPaymentMethodID, kbTenantID uuid.UUID) (*domain.PaymentMethodRecord, error) {
	query := `
		SELECT ` + paymentMethodColumns + `
		FROM getnet_payment_methods
		WHERE kb_payment_method_id = $1 AND kb_tenant_id = $2
	`

	row := r.db.Pool.QueryRow(ctx, query, kbPaymentMethodID, kbTenantID)
	return scanPaymentMethod(row)
}

func (r *PaymentMethodRepository) ListByAccount(ctx context.Context, kbAccountID, kbTenantID uuid.UUID) ([]*domain.PaymentMethodRecord, error) {
	query := `
		SELECT ` + paymentMethodColumns + `
		FROM getnet_payment_methods
		WHERE kb_account_id = $1 AND kb_tenant_id = $2 AND is_deleted = FALSE
		ORDER BY record_id ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, kbAccountID, kbTenantID)
	if err != nil {
		return nil, fmt.Errorf("query payment methods by account: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.PaymentMethodRecord, error) {
		var m paymentMethodModel
		err := row.Scan(
			&m.RecordID, &m.KbAccountID, &m.KbPaymentMethodID, &m.GetnetCardID,
			&m.IsDefault, &m.IsDeleted, &m.CreatedDate, &m.UpdatedDate, &m.KbTenantID,
		)
		return toPaymentMethodRecord(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("scan payment methods: %w", err)
	}

	return results, nil
}

// MarkDeleted soft-deletes the record. The row is kept so the history of
// gateway card ids stays resolvable.
func (r *PaymentMethodRepository) MarkDeleted(ctx context.Context, kbPaymentMethodID, kbTenantID uuid.UUID) error {
	query := `
		UPDATE getnet_payment_methods
		SET is_deleted = TRUE, is_default = FALSE, updated_date = NOW()
		WHERE kb_payment_method_id = $1 AND kb_tenant_id = $2
	`

	tag, err := r.db.Pool.Exec(ctx, query, kbPaymentMethodID, kbTenantID)
	if err != nil {
		return fmt.Errorf("failed to mark payment method deleted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPaymentMethodNotFound
	}

	return nil
}

// SetDefault clears the default flag on every non-deleted record for the
// account and flags the given method, in one transaction so concurrent
// readers never observe two defaults.
func (r *PaymentMethodRepository) SetDefault(ctx context.Context, kbAccountID, kbPaymentMethodID, kbTenantID uuid.UUID) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE getnet_payment_methods
		SET is_default = FALSE, updated_date = NOW()
		WHERE kb_account_id = $1 AND kb_tenant_id = $2 AND is_deleted = FALSE
	`, kbAccountID, kbTenantID)
	if err != nil {
		return fmt.Errorf("failed to clear default payment methods: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE getnet_payment_methods
		SET is_default = TRUE, updated_date = NOW()
		WHERE kb_payment_method_id = $1 AND kb_tenant_id = $2 AND is_deleted = FALSE
	`, kbPaymentMethodID, kbTenantID)
	if err != nil {
		return fmt.Errorf("failed to set default payment method: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPaymentMethodNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit default switch: %w", err)
	}

	return nil
}

func scanPaymentMethod(row pgx.Row) (*domain.PaymentMethodRecord, error) {
	var m paymentMethodModel
	err := row.Scan(
		&m.RecordID, &m.KbAccountID, &m.KbPaymentMethodID, &m.GetnetCardID,
		&m.IsDefault, &m.IsDeleted, &m.CreatedDate, &m.UpdatedDate, &m.KbTenantID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, fmt.Errorf("failed to scan payment method: %w", err)
	}
	return toPaymentMethodRecord(m), nil
}
