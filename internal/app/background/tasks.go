package background

import (
	"context"
	"log"
	"time"

	depositusecase "github.com/finbridge/broker-funding-service/internal/usecase/deposit"
)

type BackgroundTasks struct {
	DepositUsecase depositusecase.DepositUsecase
	SweepInterval  time.Duration
}

func NewBackgroundTasks(depositUC depositusecase.DepositUsecase) *BackgroundTasks {
	return &BackgroundTasks{
		DepositUsecase: depositUC,
		SweepInterval:  30 * time.Second,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startExpiredDepositsSweep(ctx)
}

// startExpiredDepositsSweep re-queries the gateway for pending deposits
// whose validity window has passed. Webhooks for expiry are not
// guaranteed, so this is the path that eventually rejects them.
func (bt *BackgroundTasks) startExpiredDepositsSweep(ctx context.Context) {
	ticker := time.NewTicker(bt.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.DepositUsecase.SweepExpiredDeposits(ctx); err != nil {
				log.Printf("Expired deposits sweep error: %v\n", err)
			}
		}
	}
}
