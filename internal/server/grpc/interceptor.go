package grpc

import (
	"context"
	"path"
	"time"

	"github.com/dmitrijs2005/nutriscan/internal/common"
	"github.com/dmitrijs2005/nutriscan/internal/server/auth"
	"github.com/dmitrijs2005/nutriscan/internal/server/metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// ownerScoped requests name the account they act on.
type ownerScoped interface {
	GetOwnerID() string
}

var tokenProtected = map[string]bool{
	fullMethod("ListProducts"):  true,
	fullMethod("CreateProduct"): true,
	fullMethod("DeleteProduct"): true,
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	code := status.Code(err)
	method := path.Base(info.FullMethod)
	metrics.ObserveGRPCRequest(method, code.String())
	s.logger.Info(ctx, "grpc request",
		"method", method,
		"code", code.String(),
		"duration", time.Since(start),
	)

	return resp, err
}

func (s *GRPCServer) sessionTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if !s.requireBinding || !tokenProtected[info.FullMethod] {
		return handler(ctx, req)
	}

	var token string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.SessionTokenHeaderName)
		if len(values) > 0 {
			token = values[0]
		}
	}
	if len(token) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing session token")
	}

	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid session token")
	}

	if scoped, ok := req.(ownerScoped); ok && scoped.GetOwnerID() != userID {
		return nil, status.Error(codes.PermissionDenied, "session token does not belong to this user")
	}

	ctx = context.WithValue(ctx, userIDKey, userID)

	return handler(ctx, req)
}
