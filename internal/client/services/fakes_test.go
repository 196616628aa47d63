package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/nutriscan/internal/client/storage"
	"github.com/dmitrijs2005/nutriscan/internal/server/models"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	profile  *models.Profile
	products []*models.Product
	product  *models.Product
	err      error
	pingErr  error

	lastEmail     string
	lastPassword  []byte
	lastPicture   []byte
	lastOwner     string
	lastToken     string
	lastCatalogID string
	lastAttrs     models.ProductAttributes
}

func (f *fakeClient) Register(_ context.Context, username, email string, password, picture []byte) (*models.Profile, error) {
	f.lastEmail, f.lastPassword, f.lastPicture = email, append([]byte(nil), password...), picture
	return f.profile, f.err
}

func (f *fakeClient) Login(_ context.Context, email string, password []byte) (*models.Profile, error) {
	f.lastEmail, f.lastPassword = email, append([]byte(nil), password...)
	return f.profile, f.err
}

func (f *fakeClient) ListProducts(_ context.Context, ownerID, token string) ([]*models.Product, error) {
	f.lastOwner, f.lastToken = ownerID, token
	return f.products, f.err
}

func (f *fakeClient) CreateProduct(_ context.Context, ownerID, token, catalogID string, attrs models.ProductAttributes) (*models.Product, error) {
	f.lastOwner, f.lastToken, f.lastCatalogID, f.lastAttrs = ownerID, token, catalogID, attrs
	return f.product, f.err
}

func (f *fakeClient) DeleteProduct(_ context.Context, token, catalogID string) error {
	f.lastToken, f.lastCatalogID = token, catalogID
	return f.err
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }
