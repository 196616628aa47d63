package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nutriscan/internal/common"
	"github.com/dmitrijs2005/nutriscan/internal/dbx"
	"github.com/dmitrijs2005/nutriscan/internal/logging"
	"github.com/dmitrijs2005/nutriscan/internal/server/metrics"
	"github.com/dmitrijs2005/nutriscan/internal/server/models"
	"github.com/dmitrijs2005/nutriscan/internal/server/repositories/repomanager"
	"github.com/oklog/ulid/v2"
)

// newProductID is a seam for tests.
var newProductID = func() string { return ulid.Make().String() }

// CatalogService manages product records. Owners are opaque account ids;
// no authorization happens here.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *CatalogService {
	return &CatalogService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "catalog"),
	}
}

// List returns the owner's records in storage order. An empty owner or an
// owner without records yields an empty, non-nil slice.
func (s *CatalogService) List(ctx context.Context, ownerID string) ([]*models.Product, error) {
	if ownerID == "" {
		return []*models.Product{}, nil
	}

	items, err := s.repomanager.Products(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStorage, err)
	}
	return items, nil
}

// Create registers a product for ownerID. The counter increment and the
// insert share one transaction, so a rejected insert leaves the counter
// untouched.
func (s *CatalogService) Create(ctx context.Context, ownerID, catalogID string, attrs models.ProductAttributes) (*models.Product, error) {
	if catalogID == "" {
		return nil, fmt.Errorf("%w: catalog_id is required", common.ErrorValidation)
	}

	existing, err := s.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if p.CatalogID == catalogID {
			metrics.IncDuplicateRejections()
			return nil, fmt.Errorf("%w: product already exists", common.ErrorAlreadyExists)
		}
	}

	product := &models.Product{
		ID:        newProductID(),
		CatalogID: catalogID,
		OwnerID:   ownerID,
		Attrs:     attrs,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Accounts(tx).IncrementSubmissionCounter(ctx, ownerID); err != nil {
			return err
		}
		return s.repomanager.Products(tx).Create(ctx, product)
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			metrics.IncDuplicateRejections()
			return nil, fmt.Errorf("%w: product already exists", common.ErrorAlreadyExists)
		case errors.Is(err, common.ErrorNotFound):
			return nil, fmt.Errorf("%w: account %s", common.ErrorNotFound, ownerID)
		default:
			return nil, fmt.Errorf("%w: %v", common.ErrorStorage, err)
		}
	}

	metrics.IncProductsCreated()
	s.logger.Info(ctx, "product created", "owner", ownerID, "catalog_id", catalogID, "product_id", product.ID)

	return product, nil
}

// Delete removes the oldest record with catalogID, whoever owns it. Nothing
// matching is not an error. Submission counters are left alone.
func (s *CatalogService) Delete(ctx context.Context, catalogID string) error {
	n, err := s.repomanager.Products(s.db).DeleteFirstByCatalogID(ctx, catalogID)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorStorage, err)
	}
	s.logger.Debug(ctx, "product delete", "catalog_id", catalogID, "deleted", n)
	return nil
}
