// Package accounts persists registered accounts.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/nutriscan/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	IncrementSubmissionCounter(ctx context.Context, id string) (int64, error)
}
