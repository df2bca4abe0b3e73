package publisher

type WithdrawalEvent struct {
	WithdrawalID string  `json:"withdrawal_id"`
	UserID       string  `json:"user_id"`
	Status       string  `json:"status"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Login        int64   `json:"login"`
	Reason       string  `json:"reason,omitempty"`
}
