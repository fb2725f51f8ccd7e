package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/sync/errgroup"

	"github.com/socialchef/pantry/internal/api"
	"github.com/socialchef/pantry/internal/config"
	"github.com/socialchef/pantry/internal/logger"
	"github.com/socialchef/pantry/internal/metrics"
	"github.com/socialchef/pantry/internal/services/recipe"
	"github.com/socialchef/pantry/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Nothing is bound until the credential has been validated.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	shutdownTelemetry, err := telemetry.InitTelemetry(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.Env, cfg.OtelExporterOTLPEndpoint, cfg.OTLPHeaders())
	if err != nil {
		slog.Warn("Failed to init telemetry", "error", err)
	} else {
		defer shutdownTelemetry(context.Background())
	}

	if err := metrics.Init(); err != nil {
		slog.Warn("Failed to init business metrics", "error", err)
	}

	slog.SetDefault(logger.New(cfg.Env))
	slog.Info("HF access token loaded successfully", "model", cfg.Inference.Model)

	apiServer := api.NewServer(recipe.NewGenerator(cfg))
	handler := api.NewRouter(apiServer, cfg.ServiceName)

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		log.Fatalf("Failed to listen on port %s: %v", cfg.Port, err)
	}

	slog.Info("Server listening", "url", "http://localhost:"+cfg.Port)
	slog.Info("Ready to receive recipe requests")

	if err := serve(ctx, ln, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
	slog.Info("Server stopped")
}

// serve runs handler on ln until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
