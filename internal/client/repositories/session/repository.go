// Package session persists the logged-in account of the CLI so a restart
// does not require logging in again.
package session

import (
	"context"

	"github.com/dmitrijs2005/nutriscan/internal/client/models"
)

// Repository stores at most one session.
type Repository interface {
	// Save replaces the stored session.
	Save(ctx context.Context, s *models.Session) error
	// Load returns the stored session or common.ErrorNotFound.
	Load(ctx context.Context) (*models.Session, error)
	// Clear removes the stored session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
