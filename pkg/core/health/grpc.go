// ============================================================================
// knuth - Math Typesetting Service
// ============================================================================
//
// Package:     health
// Description: Publishes registry results to the standard gRPC health service
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package health

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthgrpc "google.golang.org/grpc/health/grpc_health_v1"
)

// ServingStatus maps a registry status to the gRPC serving status.
// Degraded services keep serving.
func ServingStatus(s Status) healthgrpc.HealthCheckResponse_ServingStatus {
	switch s {
	case StatusHealthy, StatusDegraded:
		return healthgrpc.HealthCheckResponse_SERVING
	case StatusUnhealthy:
		return healthgrpc.HealthCheckResponse_NOT_SERVING
	default:
		return healthgrpc.HealthCheckResponse_UNKNOWN
	}
}

// Publish runs all checks once and sets the status of service and of the
// overall server ("") on hs
func (r *Registry) Publish(ctx context.Context, hs *health.Server, service string) *Report {
	report := r.Check(ctx)
	st := ServingStatus(report.Status)
	hs.SetServingStatus("", st)
	if service != "" {
		hs.SetServingStatus(service, st)
	}
	return report
}

// Watch publishes the registry state every interval until ctx is done.
// On return every service is reported as not serving.
func (r *Registry) Watch(ctx context.Context, hs *health.Server, service string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.Publish(ctx, hs, service)
	for {
		select {
		case <-ctx.Done():
			hs.Shutdown()
			return
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(ctx, interval)
			r.Publish(checkCtx, hs, service)
			cancel()
		}
	}
}
