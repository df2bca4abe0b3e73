package domain

import "errors"

var (
	ErrGateway             = errors.New("payment gateway request failed")
	ErrCreditGateway       = errors.New("trading account credit failed")
	ErrWebhookSignature    = errors.New("webhook signature verification failed")
	ErrAlreadyCredited     = errors.New("credit event already issued for deposit")
	ErrDepositNotFound     = errors.New("deposit not found")
	ErrDepositConflict     = errors.New("deposit status conflict")
	ErrWithdrawalNotFound  = errors.New("withdrawal not found")
	ErrWithdrawalConflict  = errors.New("withdrawal status conflict")
	ErrNotOwner            = errors.New("resource does not belong to user")
	ErrUnknownGatewayState = errors.New("unknown gateway status")
)
