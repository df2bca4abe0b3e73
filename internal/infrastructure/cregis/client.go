package cregis

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/finbridge/broker-funding-service/internal/domain"
)

const successCode = "00000"

// Config is passed in explicitly at startup; the client reads nothing
// from the process environment.
type Config struct {
	BaseURL         string
	ProjectID       int64
	APIKey          string
	CallbackURL     string
	SuccessURL      string
	CancelURL       string
	TokenList       string
	ValidityMinutes int
	Timeout         time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// envelope is the provider-specific response wrapper. "00000" is the
// only success code.
type envelope struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type createOrderData struct {
	CregisID       string `json:"cregis_id"`
	CheckoutURL    string `json:"checkout_url"`
	PaymentAddress string `json:"payment_address"`
	ExpireTime     int64  `json:"expire_time"`
}

type orderStatusData struct {
	Status     string `json:"status"`
	TxID       string `json:"tx_id"`
	PaidAmount string `json:"paid_amount"`
}

func (c *Client) CreateOrder(ctx context.Context, input *domain.CreateOrderInput) (*domain.CreateOrderResult, error) {
	validMinutes := input.ValidMinutes
	if validMinutes == 0 {
		validMinutes = c.cfg.ValidityMinutes
	}

	params := map[string]string{
		"pid":          strconv.FormatInt(c.cfg.ProjectID, 10),
		"nonce":        nonce(),
		"timestamp":    strconv.FormatInt(time.Now().UnixMilli(), 10),
		"order_id":     input.OrderID,
		"amount":       formatAmount(input.Amount),
		"currency":     input.Currency,
		"payer_id":     input.PayerID,
		"valid_time":   strconv.Itoa(validMinutes),
		"callback_url": c.cfg.CallbackURL,
		"success_url":  c.cfg.SuccessURL,
		"cancel_url":   c.cfg.CancelURL,
		"token_list":   c.cfg.TokenList,
	}
	params["sign"] = Sign(params, c.cfg.APIKey)

	var data createOrderData
	if err := c.post(ctx, "/checkout", params, &data); err != nil {
		return nil, err
	}

	return &domain.CreateOrderResult{
		CregisID:       data.CregisID,
		CheckoutURL:    data.CheckoutURL,
		PaymentAddress: data.PaymentAddress,
		ExpiresAt:      time.UnixMilli(data.ExpireTime),
	}, nil
}

func (c *Client) QueryOrderStatus(ctx context.Context, cregisID string) (*domain.OrderStatusResult, error) {
	params := map[string]string{
		"pid":       strconv.FormatInt(c.cfg.ProjectID, 10),
		"nonce":     nonce(),
		"timestamp": strconv.FormatInt(time.Now().UnixMilli(), 10),
		"cregis_id": cregisID,
	}
	params["sign"] = Sign(params, c.cfg.APIKey)

	var data orderStatusData
	if err := c.post(ctx, "/order/info", params, &data); err != nil {
		return nil, err
	}

	paidAmount := 0.0
	if data.PaidAmount != "" {
		parsed, err := strconv.ParseFloat(data.PaidAmount, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad paid_amount %q", domain.ErrGateway, data.PaidAmount)
		}
		paidAmount = parsed
	}

	return &domain.OrderStatusResult{
		Status:     domain.GatewayStatus(data.Status),
		TxHash:     data.TxID,
		PaidAmount: paidAmount,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, params map[string]string, out interface{}) error {
	body, err := json.Marshal(params)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s returned %s", domain.ErrGateway, path, resp.Status)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("%w: malformed response: %v", domain.ErrGateway, err)
	}
	if env.Code != successCode {
		return fmt.Errorf("%w: code=%s msg=%s", domain.ErrGateway, env.Code, env.Msg)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: malformed data: %v", domain.ErrGateway, err)
		}
	}
	return nil
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

func nonce() string {
	b := make([]byte, 3)
	rand.Read(b)
	return hex.EncodeToString(b)
}
