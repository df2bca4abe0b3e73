package notifier

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Notifier posts manual-remediation alerts to an operations webhook.
// Delivery is fire-and-forget: a lost alert is recoverable from the
// credit ledger, a blocked reconciliation transaction is not.
type Notifier struct {
	WebhookURL string
	client     *http.Client
}

func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		WebhookURL: webhookURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type CreditFailureAlert struct {
	DepositID string  `json:"deposit_id"`
	Login     int64   `json:"login"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Reason    string  `json:"reason"`
	At        string  `json:"at"`
}

func (n *Notifier) NotifyCreditFailure(alert CreditFailureAlert) {
	if n == nil || n.WebhookURL == "" {
		return
	}
	alert.At = time.Now().UTC().Format(time.RFC3339)

	go func() {
		body, err := json.Marshal(alert)
		if err != nil {
			log.Printf("ops alert error: marshal failed: %v", err)
			return
		}

		resp, err := n.client.Post(n.WebhookURL, "application/json", bytes.NewBuffer(body))
		if err != nil {
			log.Printf("ops alert error: request failed for deposit %s: %v", alert.DepositID, err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			log.Printf("ops alert warning: non-2xx response for deposit %s: %s", alert.DepositID, resp.Status)
		} else {
			log.Printf("ops alert sent: credit failure for deposit %s", alert.DepositID)
		}
	}()
}
