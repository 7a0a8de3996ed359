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

// PaymentMethodService manages the mapping between host payment methods
// and gateway vault cards. Unlike the transaction services these
// operations have no recordable degraded outcome, so failures propagate
// as service errors.
type PaymentMethodService struct {
	clients application.GatewayClientSource
	methods application.PaymentMethodRepository
	host    application.HostClient
	logger  *slog.Logger
}

func NewPaymentMethodService(
	clients application.GatewayClientSource,
	methods application.PaymentMethodRepository,
	host application.HostClient,
	logger *slog.Logger,
) *PaymentMethodService {
	return &PaymentMethodService{
		clients: clients,
		methods: methods,
		host:    host,
		logger:  logger,
	}
}

// Add tokenizes and vaults the card, then records the mapping. When the
// host supplies a card id the card was vaulted out-of-band and only the
// mapping is stored.
func (s *PaymentMethodService) Add(ctx context.Context, cmd AddPaymentMethodCommand) error {
	cardID := cmd.Card.CardID

	if cardID == "" {
		if cmd.Card.Number == "" {
			return application.NewInvalidInputError(errors.New("either a card id or a card number is required"))
		}

		client, err := s.clients.ClientFor(ctx, cmd.Context.TenantID)
		if err != nil {
			return translateGatewayError(err)
		}

		numberToken, err := client.TokenizeCard(ctx, cmd.Card.Number)
		if err != nil {
			return translateGatewayError(err)
		}

		externalKey, err := s.host.GetAccountExternalKey(ctx, cmd.KbAccountID)
		if err != nil {
			s.logger.Error("failed to resolve account external key",
				"kb_account_id", cmd.KbAccountID,
				"error", err,
			)
			return application.NewPreconditionError("failed to resolve the account on the host platform")
		}

		saved, err := client.SaveCardToVault(ctx, application.VaultCard{
			NumberToken:     numberToken,
			CardholderName:  cmd.Card.HolderName,
			ExpirationMonth: truncate(cmd.Card.ExpirationMonth, 2),
			ExpirationYear:  lastTwo(cmd.Card.ExpirationYear),
			CustomerID:      externalKey,
		})
		if err != nil {
			return translateGatewayError(err)
		}
		cardID = saved.CardID
	}

	record := &domain.PaymentMethodRecord{
		KbAccountID:       cmd.KbAccountID,
		KbPaymentMethodID: cmd.KbPaymentMethodID,
		GatewayCardID:     cardID,
		IsDefault:         false,
		CreatedDate:       cmd.Context.Now,
		UpdatedDate:       cmd.Context.Now,
		KbTenantID:        cmd.Context.TenantID,
	}
	if err := s.methods.Insert(ctx, record); err != nil {
		if errors.Is(err, postgres.ErrDuplicatePaymentMethod) {
			return application.NewPreconditionError("payment method already exists")
		}
		return application.NewStorageError(err)
	}

	if cmd.SetDefault {
		if err := s.methods.SetDefault(ctx, cmd.KbAccountID, cmd.KbPaymentMethodID, cmd.Context.TenantID); err != nil {
			return application.NewStorageError(err)
		}
	}
	return nil
}

// Delete soft-deletes the mapping. The vault card removal is best effort:
// a gateway failure is logged and the local deletion proceeds, so the
// host's view stays consistent.
func (s *PaymentMethodService) Delete(ctx context.Context, kbPaymentMethodID uuid.UUID, callCtx domain.CallContext) error {
	record, err := s.methods.FindByKbPaymentMethodID(ctx, kbPaymentMethodID, callCtx.TenantID)
	if err != nil {
		if errors.Is(err, postgres.ErrPaymentMethodNotFound) {
			return application.NewPreconditionError("payment method not found")
		}
		return application.NewStorageError(err)
	}

	if client, err := s.clients.ClientFor(ctx, callCtx.TenantID); err != nil {
		s.logger.Warn("skipping vault card removal, no gateway session",
			"kb_payment_method_id", kbPaymentMethodID,
			"error", err,
		)
	} else if err := client.DeleteCard(ctx, record.GatewayCardID); err != nil {
		s.logger.Warn("failed to remove card from vault",
			"kb_payment_method_id", kbPaymentMethodID,
			"card_id", record.GatewayCardID,
			"error", err,
		)
	}

	if err := s.methods.MarkDeleted(ctx, kbPaymentMethodID, callCtx.TenantID); err != nil {
		return application.NewStorageError(err)
	}
	return nil
}

// SetDefault switches the account's default payment method in a single
// atomic step.
func (s *PaymentMethodService) SetDefault(ctx context.Context, kbAccountID, kbPaymentMethodID uuid.UUID, callCtx domain.CallContext) error {
	if err := s.methods.SetDefault(ctx, kbAccountID, kbPaymentMethodID, callCtx.TenantID); err != nil {
		if errors.Is(err, postgres.ErrPaymentMethodNotFound) {
			return application.NewPreconditionError("payment method not found")
		}
		return application.NewStorageError(err)
	}
	return nil
}

// List returns the account's payment methods. Without refresh the local
// store is authoritative and nothing is returned, matching the host's
// contract that the host-side state is already complete. With refresh the
// host-side methods are dropped and re-derived from the gateway vault.
func (s *PaymentMethodService) List(ctx context.Context, kbAccountID uuid.UUID, refresh bool, callCtx domain.CallContext) ([]domain.PaymentMethodInfo, error) {
	if !refresh {
		return []domain.PaymentMethodInfo{}, nil
	}

	existing, err := s.host.ListPaymentMethods(ctx, kbAccountID)
	if err != nil {
		return nil, application.NewPreconditionError("failed to list payment methods on the host platform")
	}
	for _, id := range existing {
		if err := s.host.DeletePaymentMethod(ctx, id); err != nil {
			return nil, application.NewPreconditionError("failed to delete a stale payment method on the host platform")
		}
	}

	externalKey, err := s.host.GetAccountExternalKey(ctx, kbAccountID)
	if err != nil {
		return nil, application.NewPreconditionError("failed to resolve the account on the host platform")
	}

	client, err := s.clients.ClientFor(ctx, callCtx.TenantID)
	if err != nil {
		return nil, translateGatewayError(err)
	}
	cards, err := client.ListCardsByCustomer(ctx, externalKey)
	if err != nil {
		return nil, translateGatewayError(err)
	}

	infos := make([]domain.PaymentMethodInfo, 0, len(cards))
	for i, card := range cards {
		infos = append(infos, domain.PaymentMethodInfo{
			KbAccountID:       kbAccountID,
			KbPaymentMethodID: uuid.New(),
			ExternalKey:       card.CardID,
			IsDefault:         i == 0,
		})
	}
	return infos, nil
}

// GetDetail fetches the live card from the vault for a stored payment
// method.
func (s *PaymentMethodService) GetDetail(ctx context.Context, kbPaymentMethodID uuid.UUID, callCtx domain.CallContext) (*domain.PaymentMethodDetail, error) {
	record, err := s.methods.FindByKbPaymentMethodID(ctx, kbPaymentMethodID, callCtx.TenantID)
	if err != nil {
		if errors.Is(err, postgres.ErrPaymentMethodNotFound) {
			return nil, application.NewPreconditionError("payment method not found")
		}
		return nil, application.NewStorageError(err)
	}

	client, err := s.clients.ClientFor(ctx, callCtx.TenantID)
	if err != nil {
		return nil, translateGatewayError(err)
	}
	card, err := client.FetchCardByToken(ctx, record.GatewayCardID)
	if err != nil {
		return nil, translateGatewayError(err)
	}

	return &domain.PaymentMethodDetail{
		CardID:          card.CardID,
		Brand:           card.Brand,
		LastFourDigits:  card.LastFourDigits,
		ExpirationMonth: card.ExpirationMonth,
		ExpirationYear:  card.ExpirationYear,
		CardholderName:  card.CardholderName,
		CustomerID:      card.CustomerID,
		Status:          card.Status,
	}, nil
}

// lastTwo keeps the trailing two characters, turning a four-digit year
// into the two-digit form the vault expects.
func lastTwo(s string) string {
	if len(s) <= 2 {
		return s
	}
	return s[len(s)-2:]
}
