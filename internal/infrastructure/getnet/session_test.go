package getnet

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenServer(t *testing.T, logins *atomic.Int64, expiresIn int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/oauth/v2/token" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		logins.Add(1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		basic := base64.StdEncoding.EncodeToString([]byte("client-id:client-secret"))
		assert.Equal(t, "Basic "+basic, r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "oob", r.PostForm.Get("scope"))
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		json.NewEncoder(w).Encode(loginResponse{
			TokenType:   "Bearer",
			AccessToken: "token-" + r.Header.Get("X-Request-Id"),
			ExpiresIn:   expiresIn,
		})
	}))
}

func testSession(serverURL string, now func() time.Time) *session {
	return &session{
		tenantID: uuid.New(),
		cfg: TenantConfig{
			BaseURL:      serverURL,
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			SellerID:     "seller-1",
		},
		httpClient: http.DefaultClient,
		now:        now,
	}
}

func TestSessionReusesTokenWhileValid(t *testing.T) {
	var logins atomic.Int64
	server := tokenServer(t, &logins, 3600)
	defer server.Close()

	clock := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	sess := testSession(server.URL, func() time.Time { return clock })

	first, err := sess.authorization(context.Background())
	require.NoError(t, err)
	assert.Contains(t, first, "Bearer ")

	clock = clock.Add(30 * time.Minute)
	second, err := sess.authorization(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), logins.Load())
}

func TestSessionReLogsInAfterExpiry(t *testing.T) {
	var logins atomic.Int64
	server := tokenServer(t, &logins, 60)
	defer server.Close()

	clock := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	sess := testSession(server.URL, func() time.Time { return clock })

	_, err := sess.authorization(context.Background())
	require.NoError(t, err)

	clock = clock.Add(2 * time.Minute)
	_, err = sess.authorization(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), logins.Load())
}

func TestSessionLoginRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"name":"invalid_client","message":"client authentication failed"}`))
	}))
	defer server.Close()

	sess := testSession(server.URL, time.Now)

	_, err := sess.authorization(context.Background())
	require.Error(t, err)

	authErr, ok := IsAuthenticationError(err)
	require.True(t, ok)
	assert.Equal(t, "invalid_client", authErr.Code)
	assert.Equal(t, "client authentication failed", authErr.Message)
}

func TestSessionLoginTransportFailure(t *testing.T) {
	sess := testSession("http://127.0.0.1:1", time.Now)
	sess.httpClient = &http.Client{Timeout: 100 * time.Millisecond}

	_, err := sess.authorization(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestSessionCacheIsolatesTenants(t *testing.T) {
	var logins atomic.Int64
	server := tokenServer(t, &logins, 3600)
	defer server.Close()

	cache := NewSessionCache(&StaticConfigSource{
		Default: TenantConfig{
			BaseURL:      server.URL,
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			SellerID:     "seller-1",
		},
	}, 5*time.Second)

	tenantA := uuid.New()
	tenantB := uuid.New()

	clientA, err := cache.ClientFor(context.Background(), tenantA)
	require.NoError(t, err)
	clientB, err := cache.ClientFor(context.Background(), tenantB)
	require.NoError(t, err)

	sessA := clientA.(*Client).session
	sessB := clientB.(*Client).session
	assert.NotSame(t, sessA, sessB)

	// The same tenant gets the same session back.
	clientA2, err := cache.ClientFor(context.Background(), tenantA)
	require.NoError(t, err)
	assert.Same(t, sessA, clientA2.(*Client).session)
}

func TestStaticConfigSourceOverrides(t *testing.T) {
	tenantID := uuid.New()
	source := &StaticConfigSource{
		Default: TenantConfig{BaseURL: "https://default", SellerID: "default-seller"},
		Tenants: map[uuid.UUID]TenantConfig{
			tenantID: {BaseURL: "https://tenant", SellerID: "tenant-seller"},
		},
	}

	cfg, err := source.TenantConfig(tenantID)
	require.NoError(t, err)
	assert.Equal(t, "tenant-seller", cfg.SellerID)

	cfg, err = source.TenantConfig(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "default-seller", cfg.SellerID)
}

func TestStaticConfigSourceNoDefault(t *testing.T) {
	source := &StaticConfigSource{}
	_, err := source.TenantConfig(uuid.New())
	require.Error(t, err)
}
