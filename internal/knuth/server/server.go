// ============================================================================
// knuth - Math Typesetting Service
// ============================================================================
//
// Package:     server
// Description: gRPC server hosting the render service and standard health
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package server

import (
	"context"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthgrpc "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/msto63/knuth/internal/knuth/api"
	"github.com/msto63/knuth/internal/knuth/service"
	coreGrpc "github.com/msto63/knuth/pkg/core/grpc"
	"github.com/msto63/knuth/pkg/core/health"
	"github.com/msto63/knuth/pkg/core/logging"
	"github.com/msto63/knuth/pkg/core/version"
)

// Server is the knuth gRPC server
type Server struct {
	service   *service.Service
	grpc      *coreGrpc.Server
	health    *health.Registry
	healthSrv *grpchealth.Server
	logger    *logging.Logger
	config    Config
	startTime time.Time

	mu          sync.Mutex
	stopWatcher context.CancelFunc
}

// Config holds server configuration
type Config struct {
	Host             string
	Port             int
	EnableReflection bool
	HealthInterval   time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:             "0.0.0.0",
		Port:             9310,
		EnableReflection: true,
		HealthInterval:   15 * time.Second,
	}
}

// New creates a new knuth server around svc
func New(cfg Config, svc *service.Service) *Server {
	logger := logging.New("knuth-server")

	grpcCfg := coreGrpc.DefaultServerConfig()
	grpcCfg.Host = cfg.Host
	grpcCfg.Port = cfg.Port
	grpcCfg.EnableReflection = cfg.EnableReflection

	grpcServer := coreGrpc.NewServer(grpcCfg)

	healthRegistry := health.NewRegistry("knuth", version.Server)
	healthRegistry.Register(health.PingCheck("engine", svc.Ping))

	healthSrv := grpchealth.NewServer()
	healthgrpc.RegisterHealthServer(grpcServer.GRPCServer(), healthSrv)

	server := &Server{
		service:   svc,
		grpc:      grpcServer,
		health:    healthRegistry,
		healthSrv: healthSrv,
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}

	RegisterRenderServiceServer(grpcServer.GRPCServer(), server)

	return server
}

// Start publishes health and serves until the server stops
func (s *Server) Start() error {
	s.logger.Info("Starting knuth server", "host", s.config.Host, "port", s.config.Port)
	s.watchHealth()
	return s.grpc.Start()
}

// StartAsync starts the server asynchronously
func (s *Server) StartAsync() error {
	s.logger.Info("Starting knuth server (async)", "host", s.config.Host, "port", s.config.Port)
	s.watchHealth()
	return s.grpc.StartAsync()
}

// Serve serves on an existing listener
func (s *Server) Serve(listener net.Listener) error {
	s.watchHealth()
	return s.grpc.Serve(listener)
}

func (s *Server) watchHealth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopWatcher != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.stopWatcher = cancel

	report := s.health.Publish(ctx, s.healthSrv, api.ServiceName)
	s.logger.Info("Health published", "status", string(report.Status))

	if s.config.HealthInterval > 0 {
		go s.health.Watch(ctx, s.healthSrv, api.ServiceName, s.config.HealthInterval)
	}
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Stopping knuth server", "uptime", time.Since(s.startTime).String())

	s.mu.Lock()
	if s.stopWatcher != nil {
		s.stopWatcher()
	}
	s.mu.Unlock()

	s.healthSrv.Shutdown()
	s.grpc.StopWithTimeout(ctx)
}

// Address returns the listen address
func (s *Server) Address() string {
	return s.grpc.Address()
}

// GRPCServer returns the underlying gRPC server
func (s *Server) GRPCServer() *grpc.Server {
	return s.grpc.GRPCServer()
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}
