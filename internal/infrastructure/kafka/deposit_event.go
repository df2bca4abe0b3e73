package publisher

type DepositEvent struct {
	DepositID      string  `json:"deposit_id"`
	UserID         string  `json:"user_id"`
	Status         string  `json:"status"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	GatewayOrderID string  `json:"gateway_order_id"`
	TxHash         string  `json:"tx_hash,omitempty"`
}
