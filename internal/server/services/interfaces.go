package services

import (
	"context"

	"github.com/dmitrijs2005/nutriscan/internal/server/models"
)

// Accounts is what the transports need from AccountService.
type Accounts interface {
	Register(ctx context.Context, in RegisterInput) (*models.Profile, error)
	Authenticate(ctx context.Context, email, password string) (*models.Profile, error)
}

// Catalog is what the transports need from CatalogService.
type Catalog interface {
	List(ctx context.Context, ownerID string) ([]*models.Product, error)
	Create(ctx context.Context, ownerID, catalogID string, attrs models.ProductAttributes) (*models.Product, error)
	Delete(ctx context.Context, catalogID string) error
}

// Health is what the transports need from HealthService.
type Health interface {
	Ping(ctx context.Context) error
}

var (
	_ Accounts = (*AccountService)(nil)
	_ Catalog  = (*CatalogService)(nil)
	_ Health   = (*HealthService)(nil)
)
