package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/light-bringer/dealmarket-service/internal/config"
	"github.com/light-bringer/dealmarket-service/internal/pkg/clock"
	"github.com/light-bringer/dealmarket-service/internal/pkg/logx"
	"github.com/light-bringer/dealmarket-service/internal/services"
	"github.com/light-bringer/dealmarket-service/internal/transport/grpc/healthsrv"
	httpserver "github.com/light-bringer/dealmarket-service/internal/transport/http"
)

const serviceName = "dealmarket-service"

func main() {
	if err := run(); err != nil {
		logx.Fatal().Err(err).Msg("failed to run server")
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logx.Init(logx.Options{Environment: cfg.Environment()})

	logx.Info().
		Str("env", cfg.Env).
		Str("spanner_db", cfg.SpannerDatabase).
		Str("grpc_port", cfg.GRPCPort).
		Str("http_port", cfg.HTTPPort).
		Msg("starting marketplace service")

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg.SpannerDatabase)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. gRPC health and reflection
	grpcServer := healthsrv.New()
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}
	go func() {
		logx.Info().Str("addr", lis.Addr().String()).Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			logx.Error().Err(err).Msg("gRPC server error")
		}
	}()

	// 4. HTTP API
	e := httpserver.NewServer(serviceOpts.MarketplaceHandler, httpserver.ServerOptions{
		Service:   serviceName,
		Logger:    log.Logger,
		Clock:     clock.NewRealClock(),
		RateLimit: rate.Limit(cfg.RateLimit),
		RateBurst: cfg.RateBurst,
	})
	go func() {
		logx.Info().Str("port", cfg.HTTPPort).Msg("HTTP server listening")
		if err := e.Start(":" + cfg.HTTPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Error().Err(err).Msg("HTTP server error")
			stop()
		}
	}()

	grpcServer.SetServing(true)

	// 5. Graceful shutdown
	<-ctx.Done()
	logx.Info().Msg("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("HTTP server shutdown error")
	}
	grpcServer.Stop()

	return nil
}
