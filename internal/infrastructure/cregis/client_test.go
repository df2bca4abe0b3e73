package cregis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finbridge/broker-funding-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:         baseURL,
		ProjectID:       42,
		APIKey:          "api-key",
		CallbackURL:     "https://broker.example.com/deposits/cregis/webhook",
		TokenList:       "USDT-TRC20",
		ValidityMinutes: 30,
		Timeout:         2 * time.Second,
	})
}

func TestCreateOrder(t *testing.T) {
	t.Run("success envelope", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/checkout", r.URL.Path)

			var params map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
			assert.Equal(t, "42", params["pid"])
			assert.Equal(t, "order-1", params["order_id"])
			assert.Equal(t, "100.5", params["amount"])
			assert.Equal(t, Sign(params, "api-key"), params["sign"])

			json.NewEncoder(w).Encode(map[string]interface{}{
				"code": "00000",
				"msg":  "ok",
				"data": map[string]interface{}{
					"cregis_id":       "cr-1",
					"checkout_url":    "https://pay.example.com/c/1",
					"payment_address": "TXabc",
					"expire_time":     time.Now().Add(30*time.Minute).UnixMilli(),
				},
			})
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		result, err := client.CreateOrder(context.Background(), &domain.CreateOrderInput{
			OrderID:  "order-1",
			Amount:   100.5,
			Currency: "USDT",
			PayerID:  "user-1",
		})
		require.NoError(t, err)
		assert.Equal(t, "cr-1", result.CregisID)
		assert.Equal(t, "https://pay.example.com/c/1", result.CheckoutURL)
		assert.Equal(t, "TXabc", result.PaymentAddress)
		assert.True(t, result.ExpiresAt.After(time.Now()))
	})

	t.Run("non-success code wraps ErrGateway", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"code": "10021",
				"msg":  "invalid project",
			})
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.CreateOrder(context.Background(), &domain.CreateOrderInput{
			OrderID: "order-1", Amount: 1, Currency: "USDT",
		})
		assert.ErrorIs(t, err, domain.ErrGateway)
		assert.Contains(t, err.Error(), "10021")
	})

	t.Run("http error wraps ErrGateway", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.CreateOrder(context.Background(), &domain.CreateOrderInput{
			OrderID: "order-1", Amount: 1, Currency: "USDT",
		})
		assert.ErrorIs(t, err, domain.ErrGateway)
	})
}

func TestQueryOrderStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/order/info", r.URL.Path)

		var params map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, "cr-1", params["cregis_id"])
		assert.Equal(t, Sign(params, "api-key"), params["sign"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"code": "00000",
			"msg":  "ok",
			"data": map[string]interface{}{
				"status":      "paid",
				"tx_id":       "0xdeadbeef",
				"paid_amount": "100.5",
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.QueryOrderStatus(context.Background(), "cr-1")
	require.NoError(t, err)
	assert.Equal(t, domain.GatewayStatusPaid, result.Status)
	assert.Equal(t, "0xdeadbeef", result.TxHash)
	assert.Equal(t, 100.5, result.PaidAmount)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "100", formatAmount(100))
	assert.Equal(t, "100.5", formatAmount(100.5))
	assert.Equal(t, "0.001", formatAmount(0.001))
}
