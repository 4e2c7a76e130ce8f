package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"impactecho-backend/internal/api/grpc/interceptor"
	"impactecho-backend/internal/logger"
)

// ServiceName is the health service name reported for the store.
const ServiceName = "impactecho.Store"

// Pinger reports whether the backing store is usable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthServer answers Check by pinging the store, so the reported status is
// never older than the request.
type HealthServer struct {
	*health.Server
	store Pinger
}

func NewHealthServer(store Pinger) *HealthServer {
	return &HealthServer{Server: health.NewServer(), store: store}
}

func (h *HealthServer) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	h.refresh(ctx)
	return h.Server.Check(ctx, req)
}

func (h *HealthServer) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.store.Ping(ctx); err != nil {
		logger.Warn("Store ping failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.SetServingStatus("", status)
	h.SetServingStatus(ServiceName, status)
}

// NewServer builds the operational gRPC server: health and reflection only.
func NewServer(store Pinger) (*grpc.Server, *HealthServer) {
	s := grpc.NewServer(
		grpc.UnaryInterceptor(interceptor.Logging()),
	)
	hs := NewHealthServer(store)
	hs.refresh(context.Background())
	healthpb.RegisterHealthServer(s, hs)

	// Register reflection service for grpcurl
	reflection.Register(s)
	return s, hs
}
