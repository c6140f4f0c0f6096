package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"paylock/internal/client"
	"paylock/internal/config"
	"paylock/internal/logger"
	"paylock/internal/repository"
	"paylock/internal/server"
	"paylock/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)

	db := client.InitSqliteClient(cfg.DatabasePath)
	fusionClient := client.NewFusionClient(&cfg.Fusion, cfg.BaseURL)

	contentRepo := repository.NewContentRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)
	userRepo := repository.NewUserRepository(db)

	paymentService := service.NewPaymentService(fusionClient, contentRepo, transactionRepo, log)
	unlockManager := service.NewUnlockManager(paymentService, cfg.Fusion.PollInterval, log)
	contentService := service.NewContentService(contentRepo)
	ledgerService := service.NewLedgerService(transactionRepo, withdrawalRepo)
	userService := service.NewUserService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.AdminEmail)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(paymentService, unlockManager, contentService, ledgerService, userService, log)

	log.WithField("addr", serverAddr).Info("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	unlockManager.Shutdown()

	if err := srv.Shutdown(); err != nil {
		log.WithError(err).Fatal("HTTP server shutdown error")
	}
}
