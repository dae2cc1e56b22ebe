package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_ratelimit "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/ratelimit"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/pokechain-api/internal/config"
	"github.com/KirkDiggler/pokechain-api/internal/handlers/pokechain/v1alpha1"
	"github.com/KirkDiggler/pokechain-api/internal/logging"
	"github.com/KirkDiggler/pokechain-api/internal/middleware"
)

const limiterSweepInterval = time.Minute

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the pokechain gRPC server with all configured services.`,
	RunE:  runServer,
}

func init() {
	config.RegisterFlags(serverCmd.Flags())
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	logger := logging.Init(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	deps, err := buildDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(serverOptions(ctx, cfg, logger)...)

	v1alpha1.RegisterPokechainServiceServer(srv, deps.Handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.Server.Port)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down gRPC server...")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

// serverOptions chains logging, recovery and, when enabled, per-peer rate
// limiting. Recovery sits inside logging so panics are logged as Internal.
func serverOptions(ctx context.Context, cfg *config.Config, logger *slog.Logger) []grpc.ServerOption {
	interceptorLogger := logging.InterceptorLogger(logger)
	logOpts := []grpc_logging.Option{
		grpc_logging.WithLogOnEvents(grpc_logging.FinishCall),
	}
	recoveryOpts := []grpc_recovery.Option{
		grpc_recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
			slog.ErrorContext(ctx, "Recovered from panic", "panic", p)
			return status.Error(codes.Internal, "internal error")
		}),
	}

	unary := []grpc.UnaryServerInterceptor{
		grpc_logging.UnaryServerInterceptor(interceptorLogger, logOpts...),
		grpc_recovery.UnaryServerInterceptor(recoveryOpts...),
	}
	stream := []grpc.StreamServerInterceptor{
		grpc_logging.StreamServerInterceptor(interceptorLogger, logOpts...),
		grpc_recovery.StreamServerInterceptor(recoveryOpts...),
	}

	if cfg.Server.RateLimit > 0 {
		limiter := middleware.NewPeerLimiter(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.Server.RateLimit,
			BurstSize:         cfg.Server.RateBurst,
		})
		go limiter.Run(ctx, limiterSweepInterval)

		unary = append(unary, grpc_ratelimit.UnaryServerInterceptor(limiter))
		stream = append(stream, grpc_ratelimit.StreamServerInterceptor(limiter))
	}

	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(unary...),
		grpc.ChainStreamInterceptor(stream...),
	}
}
