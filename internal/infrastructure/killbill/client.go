// Package killbill is a thin client for the slice of the host billing
// platform's REST API the orchestration services depend on. The host is a
// black box to this subsystem; only the fields the business rules need are
// decoded.
package killbill

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billingbridge/getnet-gateway/internal/application"
	"github.com/billingbridge/getnet-gateway/internal/config"
)

type Client struct {
	baseURL    string
	username   string
	password   string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

func NewClient(cfg config.KillbillConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		username:   cfg.Username,
		password:   cfg.Password,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		httpClient: &http.Client{Timeout: cfg.ConnTimeout},
	}
}

var _ application.HostClient = (*Client)(nil)

type paymentTransaction struct {
	EffectiveDate time.Time `json:"effectiveDate"`
}

type payment struct {
	PaymentID      uuid.UUID            `json:"paymentId"`
	AuthAmount     decimal.Decimal      `json:"authAmount"`
	CapturedAmount decimal.Decimal      `json:"capturedAmount"`
	Currency       string               `json:"currency"`
	Transactions   []paymentTransaction `json:"transactions"`
}

func (c *Client) GetPayment(ctx context.Context, kbPaymentID uuid.UUID) (*application.HostPayment, error) {
	var p payment
	if err := c.get(ctx, "/1.0/kb/payments/"+kbPaymentID.String(), &p); err != nil {
		return nil, err
	}

	host := &application.HostPayment{
		KbPaymentID:    p.PaymentID,
		AuthAmount:     p.AuthAmount,
		CapturedAmount: p.CapturedAmount,
		Currency:       p.Currency,
	}
	if len(p.Transactions) > 0 {
		host.CreatedDate = p.Transactions[0].EffectiveDate
	}
	return host, nil
}

type account struct {
	ExternalKey string `json:"externalKey"`
}

func (c *Client) GetAccountExternalKey(ctx context.Context, kbAccountID uuid.UUID) (string, error) {
	var a account
	if err := c.get(ctx, "/1.0/kb/accounts/"+kbAccountID.String(), &a); err != nil {
		return "", err
	}
	return a.ExternalKey, nil
}

type paymentMethod struct {
	PaymentMethodID uuid.UUID `json:"paymentMethodId"`
}

func (c *Client) ListPaymentMethods(ctx context.Context, kbAccountID uuid.UUID) ([]uuid.UUID, error) {
	var methods []paymentMethod
	if err := c.get(ctx, "/1.0/kb/accounts/"+kbAccountID.String()+"/paymentMethods", &methods); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(methods))
	for _, m := range methods {
		ids = append(ids, m.PaymentMethodID)
	}
	return ids, nil
}

func (c *Client) DeletePaymentMethod(ctx context.Context, kbPaymentMethodID uuid.UUID) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/1.0/kb/paymentMethods/"+kbPaymentMethodID.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Killbill-CreatedBy", "getnet-gateway")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling killbill: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("killbill returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling killbill: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("killbill returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding killbill response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("error creating killbill request: %w", err)
	}

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Killbill-ApiKey", c.apiKey)
		req.Header.Set("X-Killbill-ApiSecret", c.apiSecret)
	}
	return req, nil
}
