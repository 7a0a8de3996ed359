package getnet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/billingbridge/getnet-gateway/internal/application"
)

// Client executes Getnet endpoints under one tenant's credential session.
// It is stateless apart from the session it is layered on.
type Client struct {
	session *session
}

var _ application.GatewayClient = (*Client)(nil)

type tokenCardRequest struct {
	CardNumber string `json:"card_number"`
}

type tokenCardResponse struct {
	NumberToken string `json:"number_token"`
}

// TokenizeCard exchanges a raw PAN for a one-time number token.
func (c *Client) TokenizeCard(ctx context.Context, cardNumber string) (string, error) {
	req := tokenCardRequest{CardNumber: cardNumber}
	resp, err := send[tokenCardResponse](c, ctx, http.MethodPost, "/v1/tokens/card", &req, true)
	if err != nil {
		return "", err
	}
	return resp.NumberToken, nil
}

func (c *Client) SaveCardToVault(ctx context.Context, card application.VaultCard) (*application.VaultCardResponse, error) {
	card.VerifyCard = c.session.cfg.VerifyCard
	return send[application.VaultCardResponse](c, ctx, http.MethodPost, "/v1/cards", &card, true)
}

func (c *Client) FetchCardByToken(ctx context.Context, cardID string) (*application.VaultCardResponse, error) {
	path := "/v1/cards/" + url.PathEscape(cardID)
	return send[application.VaultCardResponse](c, ctx, http.MethodGet, path, nil, true)
}

func (c *Client) DeleteCard(ctx context.Context, cardID string) error {
	path := "/v1/cards/" + url.PathEscape(cardID)
	_, err := send[struct{}](c, ctx, http.MethodDelete, path, nil, true)
	return err
}

type cardListResponse struct {
	Cards []application.VaultCardResponse `json:"cards"`
}

func (c *Client) ListCardsByCustomer(ctx context.Context, customerID string) ([]application.VaultCardResponse, error) {
	path := "/v1/cards?status=active&customer_id=" + url.QueryEscape(customerID)
	resp, err := send[cardListResponse](c, ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}
	return resp.Cards, nil
}

func (c *Client) CreatePayment(ctx context.Context, payment application.PaymentCreditRequest) (*application.PaymentCreditResponse, error) {
	payment.SellerID = c.session.cfg.SellerID
	return send[application.PaymentCreditResponse](c, ctx, http.MethodPost, "/v1/payments/credit", &payment, false)
}

type confirmRequest struct {
	Amount int64 `json:"amount"`
}

func (c *Client) ConfirmCapture(ctx context.Context, gatewayPaymentID string, amount int64) (*application.PaymentConfirmResponse, error) {
	path := "/v1/payments/credit/" + url.PathEscape(gatewayPaymentID) + "/confirm"
	req := confirmRequest{Amount: amount}
	return send[application.PaymentConfirmResponse](c, ctx, http.MethodPost, path, &req, false)
}

func (c *Client) VoidPayment(ctx context.Context, gatewayPaymentID string) (*application.PaymentVoidResponse, error) {
	path := "/v1/payments/credit/" + url.PathEscape(gatewayPaymentID) + "/cancel"
	return send[application.PaymentVoidResponse](c, ctx, http.MethodPost, path, nil, false)
}

func (c *Client) RefundPayment(ctx context.Context, cancel application.CancelRequest) (*application.CancelRequestResponse, error) {
	return send[application.CancelRequestResponse](c, ctx, http.MethodPost, "/v1/payments/cancel/request", &cancel, false)
}

// send serializes the request body, attaches the session's bearer token
// (and the seller_id header on seller-scoped endpoints), issues the call
// and decodes the response. A transport failure wraps
// ErrGatewayUnavailable; a non-2xx status becomes a *GatewayError.
func send[Resp any](c *Client, ctx context.Context, method, path string, reqBody any, sellerScoped bool) (*Resp, error) {
	authorization, err := c.session.authorization(ctx)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.session.cfg.BaseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Authorization", authorization)
	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if sellerScoped {
		httpReq.Header.Set("seller_id", c.session.cfg.SellerID)
	}

	resp, err := c.session.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return nil, parseGatewayError(resp.StatusCode, raw)
	}

	var decoded Resp
	if resp.StatusCode == http.StatusNoContent {
		return &decoded, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &decoded, nil
}
