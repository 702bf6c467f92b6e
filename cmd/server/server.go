package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"

	"github.com/KirkDiggler/rpg-companion/internal/config"
	"github.com/KirkDiggler/rpg-companion/internal/handlers/api/v1alpha1"
	"github.com/KirkDiggler/rpg-companion/internal/handlers/rest"
	"github.com/KirkDiggler/rpg-companion/internal/handlers/shop"
	"github.com/KirkDiggler/rpg-companion/internal/telemetry"
)

const shutdownTimeout = 30 * time.Second

var (
	grpcPort int
	httpPort int
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC and HTTP servers",
	Long:  `Start the dice gRPC service and the JSON API with the embedded shop channel.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "grpc-port", 0, "gRPC server port (overrides GRPC_PORT)")
	serverCmd.Flags().IntVar(&httpPort, "http-port", 0, "HTTP server port (overrides HTTP_PORT)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("grpc-port") {
		cfg.GRPCPort = grpcPort
	}
	if cmd.Flags().Changed("http-port") {
		cfg.HTTPPort = httpPort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:    cfg.OTELEndpoint,
		ServiceName: cfg.OTELServiceName,
	})
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Warn("failed to flush traces", "error", err)
		}
	}()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	grpcServer, err := newGRPCServer(a)
	if err != nil {
		return err
	}
	httpServer, err := newHTTPServer(a, cfg)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("gRPC server starting", "port", cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("failed to serve gRPC: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve HTTP: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("HTTP shutdown incomplete", "error", err)
		}

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			grpcServer.Stop()
		case <-stopped:
			slog.Info("servers stopped gracefully")
		}
		return nil
	})

	return g.Wait()
}

func newGRPCServer(a *app) (*grpc.Server, error) {
	logger := interceptorLogger(slog.Default())
	recoveryOpt := grpc_recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		slog.ErrorContext(ctx, "panic in gRPC handler", "panic", p)
		return status.Error(codes.Internal, "internal error")
	})

	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(recoveryOpt),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logger),
			grpc_recovery.StreamServerInterceptor(recoveryOpt),
		),
	)

	diceHandler, err := v1alpha1.NewDiceHandler(&v1alpha1.DiceHandlerConfig{
		DiceService: a.diceService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create dice handler: %w", err)
	}
	apiv1alpha1.RegisterDiceServiceServer(srv, diceHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(apiv1alpha1.DiceService_ServiceDesc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	return srv, nil
}

func newHTTPServer(a *app, cfg *config.Config) (*http.Server, error) {
	shopHandler, err := shop.NewHandler(&shop.Config{
		InventoryService: a.inventoryService,
		CharacterRepo:    a.characterRepo,
		EventBus:         a.bus,
		AllowedOrigins:   cfg.ShopAllowedOrigins,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shop handler: %w", err)
	}

	api, err := rest.NewHandler(&rest.HandlerConfig{
		CharacterService: a.characterService,
		InventoryService: a.inventoryService,
		CatalogService:   a.catalogService,
		Roller:           a.roller,
		ShopHandler:      shopHandler,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP handler: %w", err)
	}

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// interceptorLogger adapts slog to the grpc middleware logger
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(level), msg, fields...)
	})
}
