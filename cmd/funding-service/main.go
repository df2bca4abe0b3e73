package main

import (
	"context"
	"fmt"
	"log"

	"github.com/finbridge/broker-funding-service/internal/app/background"
	"github.com/finbridge/broker-funding-service/internal/app/setup"
	"github.com/finbridge/broker-funding-service/internal/config"
	httpdelivery "github.com/finbridge/broker-funding-service/internal/delivery/http"
	"github.com/finbridge/broker-funding-service/internal/delivery/http/handlers"
	"github.com/finbridge/broker-funding-service/internal/infrastructure/migrate"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	deps := setup.InitializeDependencies(cfg)

	if cfg.FundingDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(deps.DB, cfg.FundingDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	useCases := setup.InitializeUseCases(deps)

	// Background sweep of expired pending deposits
	backgroundTasks := background.NewBackgroundTasks(useCases.DepositUsecase)
	backgroundTasks.StartAll(context.Background())

	router := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		DepositHandler:    handlers.NewDepositHandler(useCases.DepositUsecase),
		WebhookHandler:    handlers.NewWebhookHandler(useCases.DepositUsecase, cfg.CregisGateway.WebhookSecret, useCases.Metrics),
		WithdrawalHandler: handlers.NewWithdrawalHandler(useCases.WithdrawalUsecase),
		JWTSecret:         cfg.AuthConfig.JWTSecret,
		AdminAPIKey:       cfg.AuthConfig.AdminAPIKey,
	})

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("HTTP server started on %s\n", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
