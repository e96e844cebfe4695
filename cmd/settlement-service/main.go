package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/LavaJover/shvark-settlement-service/internal/app/background"
	"github.com/LavaJover/shvark-settlement-service/internal/app/setup"
	"github.com/LavaJover/shvark-settlement-service/internal/config"
	"github.com/LavaJover/shvark-settlement-service/internal/delivery/grpcapi"
	"github.com/LavaJover/shvark-settlement-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-settlement-service/internal/infrastructure/logger"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	logger.Setup(cfg.LogConfig)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := setup.InitializeDependencies(ctx, cfg, prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to init dependencies: %v", err)
	}
	defer deps.Close()

	ucs, err := setup.InitializeUseCases(deps)
	if err != nil {
		log.Fatalf("failed to init usecases: %v", err)
	}

	// gRPC admin API
	adminHandler := grpcapi.NewSettlementAdminHandler(
		ucs.CommissionUsecase,
		ucs.WalletUsecase,
		ucs.WithdrawalUsecase,
		ucs.SettlementUsecase,
	)
	grpcServer, healthServer := grpcapi.NewServer(adminHandler)
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.GRPCServer.Host, cfg.GRPCServer.Port))
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	go func() {
		slog.Info("gRPC server started", "address", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			slog.Error("gRPC server stopped", "error", err)
			stop()
		}
	}()

	// HTTP seller API
	settlementHandler := handlers.NewHTTPSettlementHandler(
		ucs.WalletUsecase,
		ucs.CommissionUsecase,
		ucs.WithdrawalUsecase,
		ucs.AdvertisementUsecase,
		ucs.SellerUsecase,
	)
	router := handlers.NewRouter(settlementHandler, handlers.RouterOptions{
		Idempotency:    deps.Idempotency,
		IdempotencyTTL: cfg.Idempotency.TTL,
		Gatherer:       prometheus.DefaultGatherer,
		Ready:          deps.Ready,
	})
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}
	go func() {
		slog.Info("HTTP server started", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server stopped", "error", err)
			stop()
		}
	}()

	tasks := background.NewBackgroundTasks(
		ucs.SettlementUsecase,
		ucs.OrderEventUsecase,
		deps.Subscriber,
		cfg.Settlement.SettleInterval,
		cfg.KafkaService.OrderTopic,
		cfg.KafkaService.GroupID,
	)
	tasks.StartAll(ctx)

	<-ctx.Done()
	slog.Info("shutting down")

	healthServer.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down HTTP server", "error", err)
	}
	grpcServer.GracefulStop()
	tasks.Wait()
}
