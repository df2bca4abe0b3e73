package mt5

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/finbridge/broker-funding-service/internal/domain"
)

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client is a thin client to the MT5 manager balance API. It carries no
// retry policy: a timed-out credit is an unknown outcome, and blind
// retries risk double-crediting.
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

type balanceRequest struct {
	Login   int64   `json:"login"`
	Amount  float64 `json:"amount"`
	Comment string  `json:"comment"`
	Type    string  `json:"type"`
}

type balanceResponse struct {
	Retcode string `json:"retcode"`
	Ticket  int64  `json:"ticket"`
}

// AddBalance credits (or, with a negative amount, debits) a trading
// account.
func (c *Client) AddBalance(ctx context.Context, login int64, amount float64, comment string) error {
	requestBodyBytes, err := json.Marshal(balanceRequest{
		Login:   login,
		Amount:  amount,
		Comment: comment,
		Type:    "balance",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/api/trade/balance", c.cfg.BaseURL), bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	response, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCreditGateway, err)
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCreditGateway, err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("%w: manager API returned %s", domain.ErrCreditGateway, response.Status)
	}

	var balanceResp balanceResponse
	if err := json.Unmarshal(responseBodyBytes, &balanceResp); err != nil {
		return fmt.Errorf("%w: malformed response: %v", domain.ErrCreditGateway, err)
	}
	// MT5 manager retcodes look like "0 Done"; anything else is a failure
	if !strings.HasPrefix(balanceResp.Retcode, "0") {
		return fmt.Errorf("%w: retcode=%s", domain.ErrCreditGateway, balanceResp.Retcode)
	}

	return nil
}
