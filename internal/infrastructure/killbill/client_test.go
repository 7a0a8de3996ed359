package killbill

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billingbridge/getnet-gateway/internal/config"
)

func testConfig(baseURL string) config.KillbillConfig {
	return config.KillbillConfig{
		BaseURL:     baseURL,
		Username:    "admin",
		Password:    "password",
		APIKey:      "bob",
		APISecret:   "lazar",
		ConnTimeout: 5 * time.Second,
	}
}

func TestGetPayment(t *testing.T) {
	kbPaymentID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1.0/kb/payments/"+kbPaymentID.String(), r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "password", pass)
		assert.Equal(t, "bob", r.Header.Get("X-Killbill-ApiKey"))
		assert.Equal(t, "lazar", r.Header.Get("X-Killbill-ApiSecret"))

		w.Write([]byte(`{
			"paymentId": "` + kbPaymentID.String() + `",
			"authAmount": 10.00,
			"capturedAmount": 0,
			"currency": "BRL",
			"transactions": [{"effectiveDate": "2026-08-27T09:00:00.000Z"}]
		}`))
	}))
	defer server.Close()

	payment, err := NewClient(testConfig(server.URL)).GetPayment(context.Background(), kbPaymentID)

	require.NoError(t, err)
	assert.Equal(t, kbPaymentID, payment.KbPaymentID)
	assert.Equal(t, "10", payment.AuthAmount.String())
	assert.True(t, payment.CapturedAmount.IsZero())
	assert.Equal(t, "BRL", payment.Currency)
	assert.Equal(t, time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC), payment.CreatedDate.UTC())
}

func TestGetPaymentErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewClient(testConfig(server.URL)).GetPayment(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestGetAccountExternalKey(t *testing.T) {
	kbAccountID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1.0/kb/accounts/"+kbAccountID.String(), r.URL.Path)
		w.Write([]byte(`{"accountId": "` + kbAccountID.String() + `", "externalKey": "acct-ext-key"}`))
	}))
	defer server.Close()

	key, err := NewClient(testConfig(server.URL)).GetAccountExternalKey(context.Background(), kbAccountID)

	require.NoError(t, err)
	assert.Equal(t, "acct-ext-key", key)
}

func TestListPaymentMethods(t *testing.T) {
	kbAccountID := uuid.New()
	firstID := uuid.New()
	secondID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1.0/kb/accounts/"+kbAccountID.String()+"/paymentMethods", r.URL.Path)
		w.Write([]byte(`[
			{"paymentMethodId": "` + firstID.String() + `"},
			{"paymentMethodId": "` + secondID.String() + `"}
		]`))
	}))
	defer server.Close()

	ids, err := NewClient(testConfig(server.URL)).ListPaymentMethods(context.Background(), kbAccountID)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{firstID, secondID}, ids)
}

func TestDeletePaymentMethodSendsCreatedBy(t *testing.T) {
	methodID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/1.0/kb/paymentMethods/"+methodID.String(), r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Killbill-CreatedBy"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := NewClient(testConfig(server.URL)).DeletePaymentMethod(context.Background(), methodID)

	require.NoError(t, err)
}
