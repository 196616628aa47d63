package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/nutriscan/internal/common"
	"github.com/dmitrijs2005/nutriscan/internal/server/models"
	"github.com/dmitrijs2005/nutriscan/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Register(ctx context.Context, req *RegisterRequest) (*models.Profile, error) {

	profile, err := s.accounts.Register(ctx, services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Picture,
	})
	if err != nil {
		return nil, s.statusError(ctx, err)
	}

	return profile, nil
}

func (s *GRPCServer) Authenticate(ctx context.Context, req *AuthenticateRequest) (*models.Profile, error) {

	profile, err := s.accounts.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}

	return profile, nil
}

func (s *GRPCServer) ListProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error) {

	products, err := s.catalog.List(ctx, req.OwnerID)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}

	return &ListProductsResponse{Products: products}, nil
}

func (s *GRPCServer) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {

	product, err := s.catalog.Create(ctx, req.OwnerID, req.CatalogID, req.Attributes)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}

	return product, nil
}

func (s *GRPCServer) DeleteProduct(ctx context.Context, req *DeleteProductRequest) (*MessageResponse, error) {

	if err := s.catalog.Delete(ctx, req.CatalogID); err != nil {
		return nil, s.statusError(ctx, err)
	}

	return &MessageResponse{Message: "product deleted"}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *PingRequest) (*PingResponse, error) {

	if err := s.health.Ping(ctx); err != nil {
		s.logger.Error(ctx, "health check failed", "error", err)
		return nil, status.Error(codes.Unavailable, "service temporarily unavailable")
	}

	return &PingResponse{Status: "OK"}, nil
}

// statusError maps service errors to gRPC status codes. Storage and unknown
// failures are logged and reported without detail.
func (s *GRPCServer) statusError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, detail(err, common.ErrorValidation))
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, detail(err, common.ErrorAlreadyExists))
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, detail(err, common.ErrorNotFound))
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrorInvalidToken):
		return status.Error(codes.Unauthenticated, detail(err, common.ErrorUnauthorized))
	case errors.Is(err, common.ErrorUpstream):
		return status.Error(codes.Unavailable, "asset store unavailable")
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func detail(err, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return rest
	}
	return msg
}
