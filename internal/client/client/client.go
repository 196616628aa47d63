package client

import (
	"context"

	"github.com/dmitrijs2005/nutriscan/internal/server/models"
)

type Client interface {
	Register(ctx context.Context, username, email string, password, picture []byte) (*models.Profile, error)
	Login(ctx context.Context, email string, password []byte) (*models.Profile, error)
	ListProducts(ctx context.Context, ownerID, token string) ([]*models.Product, error)
	CreateProduct(ctx context.Context, ownerID, token, catalogID string, attrs models.ProductAttributes) (*models.Product, error)
	DeleteProduct(ctx context.Context, token, catalogID string) error
	Ping(ctx context.Context) error
}
