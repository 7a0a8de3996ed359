package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/billingbridge/getnet-gateway/internal/application/services"
	"github.com/billingbridge/getnet-gateway/internal/config"
	"github.com/billingbridge/getnet-gateway/internal/infrastructure/getnet"
	"github.com/billingbridge/getnet-gateway/internal/infrastructure/killbill"
	"github.com/billingbridge/getnet-gateway/internal/infrastructure/persistence/postgres"
	"github.com/billingbridge/getnet-gateway/internal/interfaces/rest"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting getnet gateway bridge",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()

	if err := postgres.Migrate(cfg.Database.ConnString()); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ledgerRepo := postgres.NewLedgerRepository(db)
	methodRepo := postgres.NewPaymentMethodRepository(db)

	sessions := getnet.NewSessionCache(&getnet.StaticConfigSource{
		Default: getnet.TenantConfig{
			BaseURL:      cfg.Getnet.BaseURL,
			ClientID:     cfg.Getnet.ClientID,
			ClientSecret: cfg.Getnet.ClientSecret,
			SellerID:     cfg.Getnet.SellerID,
			VerifyCard:   cfg.Getnet.VerifyCard,
		},
	}, cfg.Getnet.ConnTimeout)

	hostClient := killbill.NewClient(cfg.Killbill)

	authorizeService := services.NewAuthorizeService(sessions, ledgerRepo, methodRepo, logger)
	captureService := services.NewCaptureService(sessions, ledgerRepo, logger)
	voidService := services.NewVoidService(sessions, ledgerRepo, hostClient, logger)
	refundService := services.NewRefundService(sessions, ledgerRepo, logger)
	methodService := services.NewPaymentMethodService(sessions, methodRepo, hostClient, logger)
	queryService := services.NewQueryService(ledgerRepo, logger)

	handlers := rest.NewHandlers(
		authorizeService,
		captureService,
		voidService,
		refundService,
		methodService,
		queryService,
	)

	router := rest.NewRouter(handlers, logger, cfg.Server.ReadTimeout)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
