package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/knuth/internal/knuth/handler"
	"github.com/msto63/knuth/internal/knuth/server"
	coreGrpc "github.com/msto63/knuth/pkg/core/grpc"
	"github.com/msto63/knuth/pkg/core/version"
)

type serveOptions struct {
	grpcPort int
	httpPort int
	noHTTP   bool
}

func newServeCommand(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the render service",
		Long: `Run the knuth render service.

Endpoints:
  gRPC  knuth.v1.RenderService (Render, Parse) and grpc.health.v1
  HTTP  POST /api/render, POST /api/parse, GET /api/symbols,
        GET /api/stats, GET /healthz, websocket /ws

Ports come from the [server] section of the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(root, opts)
		},
	}

	cmd.Flags().IntVar(&opts.grpcPort, "grpc-port", 0, "gRPC port (overrides config)")
	cmd.Flags().IntVar(&opts.httpPort, "http-port", 0, "HTTP port (overrides config)")
	cmd.Flags().BoolVar(&opts.noHTTP, "no-http", false, "serve gRPC only")
	return cmd
}

func runServe(root *rootOptions, opts *serveOptions) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if opts.grpcPort != 0 {
		cfg.Server.GRPCPort = opts.grpcPort
	}
	if opts.httpPort != 0 {
		cfg.Server.HTTPPort = opts.httpPort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := root.newLogger(cfg, "knuth", os.Stderr)
	coreGrpc.SetLogger(logger.With("component", "grpc"))

	svc, closer, err := newService(cfg, logger, true)
	if err != nil {
		return err
	}
	defer closer()

	srv := server.New(server.Config{
		Host:             cfg.Server.Host,
		Port:             cfg.Server.GRPCPort,
		EnableReflection: cfg.Server.EnableReflection,
		HealthInterval:   server.DefaultConfig().HealthInterval,
	}, svc)
	if err := srv.StartAsync(); err != nil {
		return err
	}

	var httpServer *http.Server
	httpErr := make(chan error, 1)
	if !opts.noHTTP {
		httpServer = &http.Server{
			Addr:         cfg.HTTPAddress(),
			Handler:      handler.NewHandler(version.Server, svc, srv.HealthRegistry()),
			ReadTimeout:  cfg.Server.ReadTimeout.Duration,
			WriteTimeout: cfg.Server.WriteTimeout.Duration,
		}
		go func() {
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				httpErr <- err
			}
		}()
	}

	fmt.Printf("knuth %s\n", version.Platform)
	fmt.Printf("  gRPC: %s\n", cfg.GRPCAddress())
	if httpServer != nil {
		fmt.Printf("  HTTP: http://%s (health: /healthz, preview: /ws)\n", cfg.HTTPAddress())
	}
	fmt.Println("Press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigCh:
		logger.Info("Shutting down", "signal", sig.String())
	case runErr = <-httpErr:
		logger.Error("HTTP server failed", "error", runErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if httpServer != nil {
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Warn("HTTP shutdown incomplete", "error", err)
		}
	}
	srv.Stop(ctx)
	return runErr
}
