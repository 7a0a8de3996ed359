package getnet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billingbridge/getnet-gateway/internal/application"
)

// gatewayStub serves the token endpoint plus one handler per test, so the
// client under test runs its real login flow.
func gatewayStub(t *testing.T, handle http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/oauth/v2/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(loginResponse{
			TokenType:   "Bearer",
			AccessToken: "access-token",
			ExpiresIn:   3600,
		})
	})
	mux.HandleFunc("/", handle)
	return httptest.NewServer(mux)
}

func testClient(serverURL string) *Client {
	return &Client{session: &session{
		tenantID: uuid.New(),
		cfg: TenantConfig{
			BaseURL:      serverURL,
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			SellerID:     "seller-1",
			VerifyCard:   true,
		},
		httpClient: http.DefaultClient,
		now:        time.Now,
	}}
}

func TestTokenizeCardSendsSellerHeader(t *testing.T) {
	server := gatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/tokens/card", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
		assert.Equal(t, "seller-1", r.Header.Get("seller_id"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "5155901222280001", body["card_number"])

		json.NewEncoder(w).Encode(map[string]string{"number_token": "token-1"})
	})
	defer server.Close()

	token, err := testClient(server.URL).TokenizeCard(context.Background(), "5155901222280001")

	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
}

func TestSaveCardToVaultInjectsVerifyCard(t *testing.T) {
	server := gatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/cards", r.URL.Path)

		var card application.VaultCard
		require.NoError(t, json.NewDecoder(r.Body).Decode(&card))
		assert.True(t, card.VerifyCard)
		assert.Equal(t, "token-1", card.NumberToken)

		json.NewEncoder(w).Encode(application.VaultCardResponse{CardID: "card-1"})
	})
	defer server.Close()

	saved, err := testClient(server.URL).SaveCardToVault(context.Background(), application.VaultCard{
		NumberToken: "token-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "card-1", saved.CardID)
}

func TestCreatePaymentInjectsSellerID(t *testing.T) {
	server := gatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/credit", r.URL.Path)
		// Payment endpoints carry the seller in the body, not a header.
		assert.Empty(t, r.Header.Get("seller_id"))

		var payment application.PaymentCreditRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payment))
		assert.Equal(t, "seller-1", payment.SellerID)

		json.NewEncoder(w).Encode(application.PaymentCreditResponse{PaymentID: "pay-1", Status: "APPROVED"})
	})
	defer server.Close()

	resp, err := testClient(server.URL).CreatePayment(context.Background(), application.PaymentCreditRequest{
		Amount:   1000,
		Currency: "BRL",
	})

	require.NoError(t, err)
	assert.Equal(t, "pay-1", resp.PaymentID)
}

func TestDeleteCardAcceptsNoContent(t *testing.T) {
	server := gatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/cards/card-1", r.URL.Path)
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	err := testClient(server.URL).DeleteCard(context.Background(), "card-1")

	require.NoError(t, err)
}

func TestListCardsByCustomer(t *testing.T) {
	server := gatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/cards", r.URL.Path)
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		assert.Equal(t, "acct-ext-key", r.URL.Query().Get("customer_id"))

		json.NewEncoder(w).Encode(cardListResponse{Cards: []application.VaultCardResponse{
			{CardID: "card-1"},
			{CardID: "card-2"},
		}})
	})
	defer server.Close()

	cards, err := testClient(server.URL).ListCardsByCustomer(context.Background(), "acct-ext-key")

	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "card-1", cards[0].CardID)
}

func TestConfirmCapturePathAndBody(t *testing.T) {
	server := gatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/credit/pay-1/confirm", r.URL.Path)

		var body map[string]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(1000), body["amount"])

		json.NewEncoder(w).Encode(application.PaymentConfirmResponse{PaymentID: "pay-1", Status: "CONFIRMED"})
	})
	defer server.Close()

	resp, err := testClient(server.URL).ConfirmCapture(context.Background(), "pay-1", 1000)

	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", resp.Status)
}

func TestGatewayRejectionParsesDetails(t *testing.T) {
	server := gatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{
			"message": "Payment error",
			"name": "PaymentError",
			"details": [{
				"status": "DENIED",
				"error_code": "PAYMENTS-402",
				"description": "Not approved",
				"description_detail": "Insufficient funds"
			}]
		}`))
	})
	defer server.Close()

	_, err := testClient(server.URL).CreatePayment(context.Background(), application.PaymentCreditRequest{})

	require.Error(t, err)
	gwErr, ok := IsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, "PAYMENTS-402", gwErr.Code)
	assert.Equal(t, "Not approved Insufficient funds", gwErr.Message)
	assert.Equal(t, http.StatusPaymentRequired, gwErr.StatusCode)
}

func TestTransportFailureWrapsUnavailable(t *testing.T) {
	client := testClient("http://127.0.0.1:1")
	client.session.httpClient = &http.Client{Timeout: 100 * time.Millisecond}
	// Skip login so the transport failure comes from the payment call.
	client.session.accessToken = "Bearer access-token"
	client.session.tokenExpiry = time.Now().Add(time.Hour)

	_, err := client.CreatePayment(context.Background(), application.PaymentCreditRequest{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}
