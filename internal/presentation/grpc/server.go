package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// ServerOptions tunes the gRPC server.
type ServerOptions struct {
	// Reflection exposes the reflection service for grpcurl and similar tools.
	Reflection bool
}

// Server wraps a gRPC server with the loan handler registered.
type Server struct {
	gs     *grpc.Server
	health *health.Server
	logger *zap.Logger
}

// NewServer creates and configures the gRPC server.
func NewServer(handler LoanServiceServer, logger *zap.Logger, opts ServerOptions) *Server {
	gs := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(logger)))

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(gs, healthSrv)
	healthSrv.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	if opts.Reflection {
		reflection.Register(gs)
	}

	RegisterLoanServiceServer(gs, handler)

	return &Server{gs: gs, health: healthSrv, logger: logger}
}

// Serve starts the gRPC server on the specified address.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.ServeListener(lis)
}

// ServeListener serves on an existing listener.
func (s *Server) ServeListener(lis net.Listener) error {
	s.logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
	return s.gs.Serve(lis)
}

// GracefulStop marks the service as not serving and waits for in-flight calls.
func (s *Server) GracefulStop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.gs.GracefulStop()
}

func loggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("duration", time.Since(start)),
		}
		switch code {
		case codes.OK:
			logger.Info("grpc call", fields...)
		case codes.Internal, codes.Unknown, codes.Unavailable, codes.DataLoss:
			logger.Error("grpc call failed", fields...)
		default:
			logger.Warn("grpc call rejected", fields...)
		}
		return resp, err
	}
}
