package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/finbridge/broker-funding-service/internal/domain"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/metrics"
	depositdto "github.com/finbridge/broker-funding-service/internal/usecase/dto/deposit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGatewayMetrics builds the metric fields the gateway call paths
// touch, unregistered so tests can run side by side.
func newGatewayMetrics() *metrics.FundingMetrics {
	return &metrics.FundingMetrics{
		DepositsCreatedTotal: *prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "deposits_created_total"},
			[]string{"currency", "destination"},
		),
		DepositsCreatedAmountTotal: *prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "deposits_created_amount_total"},
			[]string{"currency"},
		),
		GatewayErrorsTotal: *prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "gateway_errors_total"},
			[]string{"operation"},
		),
		GatewayRequestDuration: *prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "gateway_request_duration_seconds", Buckets: prometheus.DefBuckets},
			[]string{"operation"},
		),
	}
}

func TestGatewayRequestDurationObserved(t *testing.T) {
	t.Run("create order records duration", func(t *testing.T) {
		repo := newFakeDepositRepo()
		gateway := &fakePaymentGateway{
			createResult: &domain.CreateOrderResult{
				CregisID:    "cregis-1",
				CheckoutURL: "https://pay.example.com/c/1",
				ExpiresAt:   time.Now().Add(30 * time.Minute),
			},
		}
		fundingMetrics := newGatewayMetrics()
		uc := NewDefaultDepositUsecase(repo, gateway, &fakeTradingGateway{}, nil, nil, nil, nil, fundingMetrics, 15*time.Second)

		_, err := uc.CreateDeposit(context.Background(), &depositdto.CreateDepositInput{
			UserID:              "user-1",
			Amount:              100,
			Currency:            "USDT",
			DestinationType:     "trading_account",
			TradingAccountLogin: 12345,
		})
		require.NoError(t, err)

		assert.Equal(t, 1, testutil.CollectAndCount(&fundingMetrics.GatewayRequestDuration, "gateway_request_duration_seconds"))
	})

	t.Run("failed gateway call still records duration", func(t *testing.T) {
		repo := newFakeDepositRepo()
		gateway := &fakePaymentGateway{
			createErr: fmt.Errorf("%w: provider down", domain.ErrGateway),
		}
		fundingMetrics := newGatewayMetrics()
		uc := NewDefaultDepositUsecase(repo, gateway, &fakeTradingGateway{}, nil, nil, nil, nil, fundingMetrics, 15*time.Second)

		_, err := uc.CreateDeposit(context.Background(), &depositdto.CreateDepositInput{
			UserID:              "user-1",
			Amount:              100,
			Currency:            "USDT",
			DestinationType:     "trading_account",
			TradingAccountLogin: 12345,
		})
		assert.ErrorIs(t, err, domain.ErrGateway)

		assert.Equal(t, 1, testutil.CollectAndCount(&fundingMetrics.GatewayRequestDuration, "gateway_request_duration_seconds"))
		assert.Equal(t, float64(1), testutil.ToFloat64(fundingMetrics.GatewayErrorsTotal.WithLabelValues("create_order")))
	})
}
