// Package services contains application services for the NutriScan client.
// AuthService owns the account session; CatalogService manages products on
// behalf of the logged-in account.
package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/nutriscan/internal/client/client"
	"github.com/dmitrijs2005/nutriscan/internal/client/models"
	"github.com/dmitrijs2005/nutriscan/internal/client/repositories/session"
	srvmodels "github.com/dmitrijs2005/nutriscan/internal/server/models"
)

// AuthService defines authentication operations for the CLI. Successful
// Register and Login calls persist the session locally; Restore reads it
// back and Logout forgets it.
type AuthService interface {
	Register(ctx context.Context, username, email string, password, picture []byte) (*models.Session, error)
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	Restore(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	now    func() time.Time
}

func NewAuthService(c client.Client, db *sql.DB) AuthService {
	return &authService{client: c, db: db, now: time.Now}
}

func (a *authService) sessions() session.Repository {
	return session.NewSQLiteRepository(a.db)
}

func (a *authService) Register(ctx context.Context, username, email string, password, picture []byte) (*models.Session, error) {
	p, err := a.client.Register(ctx, username, email, password, picture)
	if err != nil {
		return nil, err
	}
	return a.remember(ctx, p)
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	p, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return a.remember(ctx, p)
}

// Restore returns the stored session or common.ErrorNotFound.
func (a *authService) Restore(ctx context.Context) (*models.Session, error) {
	return a.sessions().Load(ctx)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sessions().Clear(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) remember(ctx context.Context, p *srvmodels.Profile) (*models.Session, error) {
	s := &models.Session{
		AccountID:         p.ID,
		Username:          p.Username,
		Email:             p.Email,
		SessionToken:      p.SessionToken,
		SubmissionCounter: p.SubmissionCounter,
		SavedAt:           a.now(),
	}
	if err := a.sessions().Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
