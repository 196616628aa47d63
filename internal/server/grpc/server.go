package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/nutriscan/internal/logging"
	"github.com/dmitrijs2005/nutriscan/internal/server/services"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	address        string
	accounts       services.Accounts
	catalog        services.Catalog
	health         services.Health
	logger         logging.Logger
	jwtSecret      []byte
	requireBinding bool
}

var _ NutriScanServer = (*GRPCServer)(nil)

// NewGRPCServer builds the gRPC transport. When requireBinding is set, the
// owner-scoped methods demand a session token in the session_token metadata.
func NewGRPCServer(a string, l logging.Logger, as services.Accounts, cs services.Catalog, hs services.Health, secretKey string, requireBinding bool) *GRPCServer {
	return &GRPCServer{
		address:        a,
		logger:         l.With("module", "grpc_server"),
		accounts:       as,
		catalog:        cs,
		health:         hs,
		jwtSecret:      []byte(secretKey),
		requireBinding: requireBinding,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.sessionTokenInterceptor))
	srv.RegisterService(&ServiceDesc, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
