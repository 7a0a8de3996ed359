package getnet

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/billingbridge/getnet-gateway/internal/application"
)

// TenantConfig is the gateway credential set for one tenant.
type TenantConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	SellerID     string
	VerifyCard   bool
}

// ConfigSource resolves the gateway configuration for a tenant.
type ConfigSource interface {
	TenantConfig(tenantID uuid.UUID) (TenantConfig, error)
}

// StaticConfigSource serves a fixed default configuration, with optional
// per-tenant overrides.
type StaticConfigSource struct {
	Default TenantConfig
	Tenants map[uuid.UUID]TenantConfig
}

func (s *StaticConfigSource) TenantConfig(tenantID uuid.UUID) (TenantConfig, error) {
	if cfg, ok := s.Tenants[tenantID]; ok {
		return cfg, nil
	}
	if s.Default.BaseURL == "" {
		return TenantConfig{}, fmt.Errorf("no gateway configuration for tenant %s", tenantID)
	}
	return s.Default, nil
}

type loginResponse struct {
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// session holds the bearer token for exactly one tenant.
type session struct {
	tenantID   uuid.UUID
	cfg        TenantConfig
	httpClient *http.Client
	now        func() time.Time

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// authorization returns the cached "<token_type> <access_token>" value,
// logging in first when the token is absent or expired. Holding the mutex
// across the login keeps a half-initialized token from becoming visible;
// redundant logins would be harmless on the gateway side but are avoided.
func (s *session) authorization(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken != "" && s.now().Before(s.tokenExpiry) {
		return s.accessToken, nil
	}

	login, err := s.login(ctx)
	if err != nil {
		return "", err
	}

	s.accessToken = login.TokenType + " " + login.AccessToken
	s.tokenExpiry = s.now().Add(time.Duration(login.ExpiresIn) * time.Second)
	return s.accessToken, nil
}

// login performs the client-credentials grant against the gateway token
// endpoint.
func (s *session) login(ctx context.Context) (*loginResponse, error) {
	url := s.cfg.BaseURL + "/auth/oauth/v2/token"
	body := strings.NewReader("scope=oob&grant_type=client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("error creating login request: %w", err)
	}

	basic := base64.StdEncoding.EncodeToString([]byte(s.cfg.ClientID + ":" + s.cfg.ClientSecret))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+basic)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, &AuthenticationError{GatewayError: *parseGatewayError(resp.StatusCode, raw)}
	}

	var login loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return nil, fmt.Errorf("error decoding login response: %w", err)
	}

	return &login, nil
}

// SessionCache hands out gateway clients backed by per-tenant credential
// sessions. Sessions live for the process lifetime and are keyed by tenant
// id, so one tenant's token is never reused for another.
type SessionCache struct {
	source  ConfigSource
	timeout time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

func NewSessionCache(source ConfigSource, timeout time.Duration) *SessionCache {
	return &SessionCache{
		source:   source,
		timeout:  timeout,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*session),
	}
}

var _ application.GatewayClientSource = (*SessionCache)(nil)

// ClientFor returns the gateway client for the tenant, creating the
// session lazily on first use.
func (c *SessionCache) ClientFor(ctx context.Context, tenantID uuid.UUID) (application.GatewayClient, error) {
	sess, err := c.sessionFor(tenantID)
	if err != nil {
		return nil, err
	}
	return &Client{session: sess}, nil
}

func (c *SessionCache) sessionFor(tenantID uuid.UUID) (*session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sess, ok := c.sessions[tenantID]; ok {
		return sess, nil
	}

	cfg, err := c.source.TenantConfig(tenantID)
	if err != nil {
		return nil, err
	}

	sess := &session{
		tenantID:   tenantID,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: c.timeout},
		now:        c.now,
	}
	c.sessions[tenantID] = sess
	return sess, nil
}
