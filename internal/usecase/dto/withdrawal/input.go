package withdrawaldto

type CreateWithdrawalInput struct {
	UserID              string
	TradingAccountLogin int64
	Amount              float64
	Currency            string
	WalletAddress       string
}

type ListWithdrawalsInput struct {
	Page   int64
	Limit  int64
	Status string
}
