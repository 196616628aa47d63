package grpc

import (
	"context"

	"github.com/dmitrijs2005/nutriscan/internal/server/models"
	"google.golang.org/grpc"
)

const serviceName = "nutriscan.v1.NutriScan"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Picture  []byte `json:"picture,omitempty"`
}

type AuthenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ListProductsRequest struct {
	OwnerID string `json:"owner_id"`
}

type ListProductsResponse struct {
	Products []*models.Product `json:"products"`
}

type CreateProductRequest struct {
	OwnerID    string                   `json:"owner_id"`
	CatalogID  string                   `json:"catalog_id"`
	Attributes models.ProductAttributes `json:"attributes"`
}

type DeleteProductRequest struct {
	CatalogID string `json:"catalog_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

func (r *ListProductsRequest) GetOwnerID() string  { return r.OwnerID }
func (r *CreateProductRequest) GetOwnerID() string { return r.OwnerID }

// NutriScanServer is the server API of the NutriScan service.
type NutriScanServer interface {
	Register(context.Context, *RegisterRequest) (*models.Profile, error)
	Authenticate(context.Context, *AuthenticateRequest) (*models.Profile, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	CreateProduct(context.Context, *CreateProductRequest) (*models.Product, error)
	DeleteProduct(context.Context, *DeleteProductRequest) (*MessageResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

func fullMethod(name string) string {
	return "/" + serviceName + "/" + name
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](name string, call func(NutriScanServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(NutriScanServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(NutriScanServer), ctx, req.(*Req))
		})
	}
}

// ServiceDesc describes the NutriScan service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*NutriScanServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler("Register", NutriScanServer.Register)},
		{MethodName: "Authenticate", Handler: unaryHandler("Authenticate", NutriScanServer.Authenticate)},
		{MethodName: "ListProducts", Handler: unaryHandler("ListProducts", NutriScanServer.ListProducts)},
		{MethodName: "CreateProduct", Handler: unaryHandler("CreateProduct", NutriScanServer.CreateProduct)},
		{MethodName: "DeleteProduct", Handler: unaryHandler("DeleteProduct", NutriScanServer.DeleteProduct)},
		{MethodName: "Ping", Handler: unaryHandler("Ping", NutriScanServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "nutriscan/v1",
}

// Client calls the NutriScan service over an existing connection using the
// JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, name string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*models.Profile, error) {
	return invoke[models.Profile](ctx, c.cc, "Register", in, opts...)
}

func (c *Client) Authenticate(ctx context.Context, in *AuthenticateRequest, opts ...grpc.CallOption) (*models.Profile, error) {
	return invoke[models.Profile](ctx, c.cc, "Authenticate", in, opts...)
}

func (c *Client) ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	return invoke[ListProductsResponse](ctx, c.cc, "ListProducts", in, opts...)
}

func (c *Client) CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*models.Product, error) {
	return invoke[models.Product](ctx, c.cc, "CreateProduct", in, opts...)
}

func (c *Client) DeleteProduct(ctx context.Context, in *DeleteProductRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, "DeleteProduct", in, opts...)
}

func (c *Client) Ping(ctx context.Context, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, "Ping", &PingRequest{}, opts...)
}
