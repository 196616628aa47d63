package products

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nutriscan/internal/common"
	"github.com/dmitrijs2005/nutriscan/internal/dbx"
	"github.com/dmitrijs2005/nutriscan/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByOwner returns the owner's records in insertion order. The result is
// never nil.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Product, error) {
	query := `
		SELECT id, catalog_id, owner_id, name, brand, nutrition_grade, nutrition_score,
		       nova_group, eco_grade, submitted_on, image_url, created_at
		FROM products
		WHERE owner_id = $1
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.CatalogID, &p.OwnerID,
			&p.Attrs.Name, &p.Attrs.Brand, &p.Attrs.NutritionGrade, &p.Attrs.NutritionScore,
			&p.Attrs.NovaGroup, &p.Attrs.EcoGrade, &p.Attrs.SubmittedOn, &p.Attrs.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Create inserts the record. A second record with the same (owner, catalog id)
// yields common.ErrorAlreadyExists; an unknown owner yields common.ErrorNotFound.
func (r *PostgresRepository) Create(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (id, catalog_id, owner_id, name, brand, nutrition_grade, nutrition_score,
		                      nova_group, eco_grade, submitted_on, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.CatalogID, p.OwnerID,
		p.Attrs.Name, p.Attrs.Brand, p.Attrs.NutritionGrade, p.Attrs.NutritionScore,
		p.Attrs.NovaGroup, p.Attrs.EcoGrade, p.Attrs.SubmittedOn, p.Attrs.ImageURL,
	).Scan(&p.CreatedAt)

	if err != nil {
		if constraint, ok := dbx.UniqueViolation(err); ok {
			return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, constraint)
		}
		if dbx.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: owner %s", common.ErrorNotFound, p.OwnerID)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// DeleteFirstByCatalogID removes the oldest record carrying catalogID,
// whoever owns it, and reports how many rows went away (0 or 1).
func (r *PostgresRepository) DeleteFirstByCatalogID(ctx context.Context, catalogID string) (int64, error) {
	query := `
		DELETE FROM products
		WHERE id = (
			SELECT id FROM products
			WHERE catalog_id = $1
			ORDER BY created_at, id
			LIMIT 1
		)`

	res, err := r.db.ExecContext(ctx, query, catalogID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
