package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/billingbridge/getnet-gateway/internal/application"
	"github.com/billingbridge/getnet-gateway/internal/domain"
	"github.com/billingbridge/getnet-gateway/internal/infrastructure/persistence/postgres"
)

// QueryService answers read-only questions from the local ledger without
// touching the gateway.
type QueryService struct {
	ledger application.LedgerRepository
	logger *slog.Logger
}

func NewQueryService(ledger application.LedgerRepository, logger *slog.Logger) *QueryService {
	return &QueryService{ledger: ledger, logger: logger}
}

// GetPaymentInfo derives the host-facing transaction info from the latest
// ledger row for the payment. A payment with no rows yields an empty
// list, not an error.
func (s *QueryService) GetPaymentInfo(ctx context.Context, kbPaymentID uuid.UUID, callCtx domain.CallContext) ([]domain.TransactionResult, error) {
	record, err := s.ledger.LatestForPayment(ctx, kbPaymentID, callCtx.TenantID)
	if err != nil {
		if errors.Is(err, postgres.ErrRecordNotFound) {
			return []domain.TransactionResult{}, nil
		}
		return nil, application.NewStorageError(err)
	}
	return []domain.TransactionResult{resultFromRecord(record)}, nil
}
