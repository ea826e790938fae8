package server

import (
	"context"
	"time"

	"github.com/fekuna/metalmarket-service/internal/auth"
	"github.com/fekuna/metalmarket-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// ServiceName is the name reported through grpc.health.v1.
const ServiceName = "metalmarket.catalog"

// NewGRPCServer builds the platform-facing gRPC server: health checks and reflection.
// The returned health server is used to flip serving status on shutdown.
func NewGRPCServer(log logger.ZapLogger) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(
		grpc.UnaryInterceptor(LoggingInterceptor(log)),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	reflection.Register(srv)
	return srv, hs
}

func LoggingInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		p := auth.FromContext(ctx)
		ctx = auth.WithPrincipal(ctx, p)

		resp, err := handler(ctx, req)

		log.Debug("grpc call",
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("latency", time.Since(start)),
			zap.String("user_id", p.UserID),
		)
		return resp, err
	}
}
