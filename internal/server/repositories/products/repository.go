// Package products persists scanned product records.
package products

import (
	"context"

	"github.com/dmitrijs2005/nutriscan/internal/server/models"
)

type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	DeleteFirstByCatalogID(ctx context.Context, catalogID string) (int64, error)
}
