package withdrawaldto

import "github.com/finbridge/broker-funding-service/internal/domain"

type ListWithdrawalsOutput struct {
	Withdrawals []*domain.Withdrawal
	Total       int64
}
