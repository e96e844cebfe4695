package grpcapi

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	slog.Debug("grpc call", "method", info.FullMethod, "duration", time.Since(start), "error", err)
	return resp, err
}

// NewServer registers the admin service and grpc health on a fresh server.
func NewServer(admin SettlementAdminServer) (*grpc.Server, *health.Server) {
	server := grpc.NewServer(grpc.UnaryInterceptor(loggingInterceptor))
	RegisterSettlementAdminServer(server, admin)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(SettlementAdminServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)
	return server, healthServer
}
