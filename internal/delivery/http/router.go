package http

import (
	"github.com/finbridge/broker-funding-service/internal/delivery/http/handlers"
	"github.com/finbridge/broker-funding-service/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	DepositHandler    *handlers.DepositHandler
	WebhookHandler    *handlers.WebhookHandler
	WithdrawalHandler *handlers.WithdrawalHandler
	JWTSecret         string
	AdminAPIKey       string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Gateway callbacks authenticate via HMAC over the body, not JWT.
	// The path is part of the provider contract.
	router.POST("/deposits/cregis/webhook", deps.WebhookHandler.HandleCregisWebhook)

	api := router.Group("/api", middleware.UserAuth(deps.JWTSecret))
	{
		deposits := api.Group("/deposits")
		{
			deposits.POST("", deps.DepositHandler.CreateDeposit)
			deposits.GET("", deps.DepositHandler.ListDeposits)
			deposits.GET("/:id", deps.DepositHandler.GetDeposit)
			deposits.POST("/:id/poll", deps.DepositHandler.PollDeposit)
			deposits.POST("/:id/cancel", deps.DepositHandler.CancelDeposit)
		}

		withdrawals := api.Group("/withdrawals")
		{
			withdrawals.POST("", deps.WithdrawalHandler.CreateWithdrawal)
			withdrawals.GET("", deps.WithdrawalHandler.ListMyWithdrawals)
			withdrawals.GET("/:id", deps.WithdrawalHandler.GetWithdrawal)
		}
	}

	admin := router.Group("/api/admin", middleware.AdminAuth(deps.AdminAPIKey))
	{
		admin.GET("/withdrawals", deps.WithdrawalHandler.AdminListWithdrawals)
		admin.POST("/withdrawals/:id/approve", deps.WithdrawalHandler.ApproveWithdrawal)
		admin.POST("/withdrawals/:id/reject", deps.WithdrawalHandler.RejectWithdrawal)
	}

	return router
}
