// Package grpc runs the gRPC health endpoint used by orchestrators to
// probe the server.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/resumekeeper/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is reported next to the overall ("") status.
const ServiceName = "resumekeeper"

type HealthServer struct {
	address string
	logger  logging.Logger
	health  *health.Server
	ready   chan net.Addr
}

func NewHealthServer(address string, l logging.Logger) *HealthServer {
	return &HealthServer{
		address: address,
		logger:  l.With("module", "grpc_server"),
		health:  health.NewServer(),
		ready:   make(chan net.Addr, 1),
	}
}

// Addr blocks until the listener is bound and returns its address.
func (s *HealthServer) Addr() net.Addr {
	addr := <-s.ready
	s.ready <- addr
	return addr
}

// Run serves the health service until ctx is cancelled. Statuses switch to
// NOT_SERVING before the server drains.
func (s *HealthServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	s.ready <- listen.Addr()

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(s.logger)))
	healthpb.RegisterHealthServer(srv, s.health)

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
