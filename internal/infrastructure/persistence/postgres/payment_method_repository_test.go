package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/billingbridge/getnet-gateway/internal/domain"
	"github.com/billingbridge/getnet-gateway/internal/infrastructure/persistence/postgres"
	"github.com/billingbridge/getnet-gateway/internal/infrastructure/persistence/postgres/testhelpers"
)

type PaymentMethodRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDatabase
	repo   *postgres.PaymentMethodRepository
}

func TestPaymentMethodRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PaymentMethodRepositoryTestSuite))
}

func (suite *PaymentMethodRepositoryTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.repo = postgres.NewPaymentMethodRepository(suite.testDB.DB)
}

func (suite *PaymentMethodRepositoryTestSuite) TearDownSuite() {
	suite.testDB.Cleanup(suite.T())
}

func (suite *PaymentMethodRepositoryTestSuite) SetupTest() {
	suite.testDB.CleanTables(suite.T())
}

func methodRecord(kbAccountID, tenantID uuid.UUID, cardID string) *domain.PaymentMethodRecord {
	return &domain.PaymentMethodRecord{
		KbAccountID:       kbAccountID,
		KbPaymentMethodID: uuid.New(),
		GatewayCardID:     cardID,
		CreatedDate:       time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC),
		UpdatedDate:       time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC),
		KbTenantID:        tenantID,
	}
}

func (suite *PaymentMethodRepositoryTestSuite) Test_InsertAndFind() {
	ctx := context.Background()
	t := suite.T()
	tenantID := uuid.New()
	rec := methodRecord(uuid.New(), tenantID, "card-1")

	require.NoError(t, suite.repo.Insert(ctx, rec))

	found, err := suite.repo.FindByKbPaymentMethodID(ctx, rec.KbPaymentMethodID, tenantID)
	require.NoError(t, err)
	assert.Equal(t, "card-1", found.GatewayCardID)
	assert.False(t, found.IsDefault)
	assert.False(t, found.IsDeleted)
}

func (suite *PaymentMethodRepositoryTestSuite) Test_Insert_DuplicateRejected() {
	ctx := context.Background()
	t := suite.T()
	tenantID := uuid.New()
	rec := methodRecord(uuid.New(), tenantID, "card-1")

	require.NoError(t, suite.repo.Insert(ctx, rec))

	dup := *rec
	dup.GatewayCardID = "card-2"
	err := suite.repo.Insert(ctx, &dup)

	assert.ErrorIs(t, err, postgres.ErrDuplicatePaymentMethod)
}

func (suite *PaymentMethodRepositoryTestSuite) Test_Insert_SameMethodDifferentTenantAllowed() {
	ctx := context.Background()
	t := suite.T()
	methodID := uuid.New()

	recA := methodRecord(uuid.New(), uuid.New(), "card-1")
	recA.KbPaymentMethodID = methodID
	recB := methodRecord(uuid.New(), uuid.New(), "card-1")
	recB.KbPaymentMethodID = methodID

	require.NoError(t, suite.repo.Insert(ctx, recA))
	require.NoError(t, suite.repo.Insert(ctx, recB))
}

func (suite *PaymentMethodRepositoryTestSuite) Test_Find_NotFound() {
	ctx := context.Background()
	t := suite.T()

	_, err := suite.repo.FindByKbPaymentMethodID(ctx, uuid.New(), uuid.New())

	assert.ErrorIs(t, err, postgres.ErrPaymentMethodNotFound)
}

func (suite *PaymentMethodRepositoryTestSuite) Test_ListByAccount_ExcludesDeleted() {
	ctx := context.Background()
	t := suite.T()
	tenantID := uuid.New()
	accountID := uuid.New()

	kept := methodRecord(accountID, tenantID, "card-1")
	deleted := methodRecord(accountID, tenantID, "card-2")
	require.NoError(t, suite.repo.Insert(ctx, kept))
	require.NoError(t, suite.repo.Insert(ctx, deleted))
	require.NoError(t, suite.repo.MarkDeleted(ctx, deleted.KbPaymentMethodID, tenantID))

	records, err := suite.repo.ListByAccount(ctx, accountID, tenantID)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "card-1", records[0].GatewayCardID)
}

func (suite *PaymentMethodRepositoryTestSuite) Test_MarkDeleted_ClearsDefaultFlag() {
	ctx := context.Background()
	t := suite.T()
	tenantID := uuid.New()
	accountID := uuid.New()
	rec := methodRecord(accountID, tenantID, "card-1")

	require.NoError(t, suite.repo.Insert(ctx, rec))
	require.NoError(t, suite.repo.SetDefault(ctx, accountID, rec.KbPaymentMethodID, tenantID))
	require.NoError(t, suite.repo.MarkDeleted(ctx, rec.KbPaymentMethodID, tenantID))

	found, err := suite.repo.FindByKbPaymentMethodID(ctx, rec.KbPaymentMethodID, tenantID)
	require.NoError(t, err)
	assert.True(t, found.IsDeleted)
	assert.False(t, found.IsDefault)
}

func (suite *PaymentMethodRepositoryTestSuite) Test_MarkDeleted_NotFound() {
	ctx := context.Background()
	t := suite.T()

	err := suite.repo.MarkDeleted(ctx, uuid.New(), uuid.New())

	assert.ErrorIs(t, err, postgres.ErrPaymentMethodNotFound)
}

func (suite *PaymentMethodRepositoryTestSuite) Test_SetDefault_AtMostOnePerAccount() {
	ctx := context.Background()
	t := suite.T()
	tenantID := uuid.New()
	accountID := uuid.New()

	first := methodRecord(accountID, tenantID, "card-1")
	second := methodRecord(accountID, tenantID, "card-2")
	require.NoError(t, suite.repo.Insert(ctx, first))
	require.NoError(t, suite.repo.Insert(ctx, second))

	require.NoError(t, suite.repo.SetDefault(ctx, accountID, first.KbPaymentMethodID, tenantID))
	require.NoError(t, suite.repo.SetDefault(ctx, accountID, second.KbPaymentMethodID, tenantID))

	records, err := suite.repo.ListByAccount(ctx, accountID, tenantID)
	require.NoError(t, err)

	defaults := 0
	for _, rec := range records {
		if rec.IsDefault {
			defaults++
			assert.Equal(t, second.KbPaymentMethodID, rec.KbPaymentMethodID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func (suite *PaymentMethodRepositoryTestSuite) Test_SetDefault_UnknownMethod() {
	ctx := context.Background()
	t := suite.T()
	tenantID := uuid.New()
	accountID := uuid.New()

	rec := methodRecord(accountID, tenantID, "card-1")
	require.NoError(t, suite.repo.Insert(ctx, rec))
	require.NoError(t, suite.repo.SetDefault(ctx, accountID, rec.KbPaymentMethodID, tenantID))

	err := suite.repo.SetDefault(ctx, accountID, uuid.New(), tenantID)
	assert.ErrorIs(t, err, postgres.ErrPaymentMethodNotFound)

	// The failed switch must not clear the existing default.
	found, findErr := suite.repo.FindByKbPaymentMethodID(ctx, rec.KbPaymentMethodID, tenantID)
	require.NoError(t, findErr)
	assert.True(t, found.IsDefault)
}
