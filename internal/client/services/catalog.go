package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/nutriscan/internal/client/client"
	"github.com/dmitrijs2005/nutriscan/internal/client/models"
	"github.com/dmitrijs2005/nutriscan/internal/client/repositories/session"
	srvmodels "github.com/dmitrijs2005/nutriscan/internal/server/models"
)

// CatalogService lists, adds and deletes products of the session's account.
type CatalogService interface {
	List(ctx context.Context, s *models.Session) ([]*srvmodels.Product, error)
	Add(ctx context.Context, s *models.Session, catalogID string, attrs srvmodels.ProductAttributes) (*srvmodels.Product, error)
	Delete(ctx context.Context, s *models.Session, catalogID string) error
}

type catalogService struct {
	client client.Client
	db     *sql.DB
}

func NewCatalogService(c client.Client, db *sql.DB) CatalogService {
	return &catalogService{client: c, db: db}
}

func (c *catalogService) List(ctx context.Context, s *models.Session) ([]*srvmodels.Product, error) {
	return c.client.ListProducts(ctx, s.AccountID, s.SessionToken)
}

// Add creates the product and bumps the locally cached submission counter,
// mirroring what the server did.
func (c *catalogService) Add(ctx context.Context, s *models.Session, catalogID string, attrs srvmodels.ProductAttributes) (*srvmodels.Product, error) {
	p, err := c.client.CreateProduct(ctx, s.AccountID, s.SessionToken, catalogID, attrs)
	if err != nil {
		return nil, err
	}

	s.SubmissionCounter++
	if err := session.NewSQLiteRepository(c.db).Save(ctx, s); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *catalogService) Delete(ctx context.Context, s *models.Session, catalogID string) error {
	return c.client.DeleteProduct(ctx, s.SessionToken, catalogID)
}
