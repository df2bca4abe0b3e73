package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/finbridge/broker-funding-service/internal/domain"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/cregis"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/metrics"
	depositusecase "github.com/finbridge/broker-funding-service/internal/usecase/deposit"
	"github.com/gin-gonic/gin"
)

// WebhookHandler accepts payment notifications from Cregis. The gateway
// retries until it receives the literal body "success", so every outcome
// that must not be retried (unknown order, stale event) still acks.
type WebhookHandler struct {
	uc      depositusecase.DepositUsecase
	secret  string
	metrics *metrics.FundingMetrics
}

func NewWebhookHandler(uc depositusecase.DepositUsecase, webhookSecret string, m *metrics.FundingMetrics) *WebhookHandler {
	return &WebhookHandler{uc: uc, secret: webhookSecret, metrics: m}
}

type webhookPayload struct {
	EventName string          `json:"event_name"`
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data"`
}

type webhookOrderData struct {
	CregisID string `json:"cregis_id"`
	OrderID  string `json:"order_id"`
	Status   string `json:"status"`
	TxID     string `json:"tx_id"`
}

func (h *WebhookHandler) HandleCregisWebhook(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.reject(c, http.StatusBadRequest, "failed to read webhook body", err)
		return
	}

	// Verification applies only when a shared secret is configured;
	// without one the provider sends unsigned callbacks.
	if h.secret != "" {
		signature := c.GetHeader("X-Cregis-Signature")
		if signature == "" {
			signature = c.GetHeader("Signature")
		}
		if !cregis.VerifyWebhook(rawBody, signature, h.secret) {
			h.reject(c, http.StatusUnauthorized, "webhook signature mismatch", domain.ErrWebhookSignature)
			return
		}
	}

	var payload webhookPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		h.reject(c, http.StatusBadRequest, "malformed webhook payload", err)
		return
	}

	data, err := decodeOrderData(payload.Data)
	if err != nil {
		h.reject(c, http.StatusBadRequest, "malformed webhook data", err)
		return
	}
	if data.OrderID == "" || data.Status == "" {
		h.reject(c, http.StatusBadRequest, "webhook data missing order_id or status", nil)
		return
	}

	if h.metrics != nil {
		h.metrics.WebhookEventsTotal.WithLabelValues(data.Status).Inc()
	}

	err = h.uc.ReconcileByGatewayOrderID(c.Request.Context(), data.OrderID, depositusecase.Observation{
		Status: domain.GatewayStatus(data.Status),
		TxHash: data.TxID,
		Source: "webhook",
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrDepositNotFound):
		// Not ours (or created by another environment). Ack so the
		// gateway stops retrying.
		slog.Warn("webhook for unknown order", "order_id", data.OrderID, "status", data.Status)
	case errors.Is(err, domain.ErrUnknownGatewayState):
		slog.Warn("webhook with unknown gateway status", "order_id", data.OrderID, "status", data.Status)
	default:
		slog.Error("webhook reconcile failed", "order_id", data.OrderID, "error", err)
		c.String(http.StatusInternalServerError, "error")
		return
	}

	c.String(http.StatusOK, "success")
}

// decodeOrderData tolerates both shapes Cregis sends: data as a JSON
// object and data as a JSON-encoded string containing the object.
func decodeOrderData(raw json.RawMessage) (*webhookOrderData, error) {
	if len(raw) == 0 {
		return nil, errors.New("empty data field")
	}

	var data webhookOrderData
	if err := json.Unmarshal(raw, &data); err == nil {
		return &data, nil
	}

	var nested string
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(nested), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (h *WebhookHandler) reject(c *gin.Context, code int, msg string, err error) {
	if h.metrics != nil {
		h.metrics.WebhookRejectedTotal.Inc()
	}
	slog.Warn(msg, "error", err)
	c.String(code, "invalid")
}
