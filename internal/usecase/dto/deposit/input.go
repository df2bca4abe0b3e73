package depositdto

type CreateDepositInput struct {
	UserID              string
	Amount              float64
	Currency            string
	DestinationType     string
	TradingAccountLogin int64
}

type GetDepositsInput struct {
	UserID string
	Page   int64
	Limit  int64
	Status string
}
