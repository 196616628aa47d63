package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/nutriscan/internal/common"
	"github.com/dmitrijs2005/nutriscan/internal/dbx"
	"github.com/dmitrijs2005/nutriscan/internal/logging"
	"github.com/dmitrijs2005/nutriscan/internal/server/config"
	"github.com/dmitrijs2005/nutriscan/internal/server/models"
	"github.com/dmitrijs2005/nutriscan/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/nutriscan/internal/server/repositories/products"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory stand-in for the two tables. The *Err fields
// inject failures into the matching repository call.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
	products []*models.Product

	existsErr        error
	createAccountErr error
	getByEmailErr    error
	incrementErr     error
	listErr          error
	createProductErr error
	deleteErr        error
}

func newMemStore() *memStore {
	return &memStore{accounts: map[string]*models.Account{}}
}

func (s *memStore) counter(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[id]; ok {
		return a.SubmissionCounter
	}
	return -1
}

func (s *memStore) productCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

type fakeManager struct{ st *memStore }

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeManager) Accounts(dbx.DBTX) accounts.Repository         { return &fakeAccounts{m.st} }
func (m *fakeManager) Products(dbx.DBTX) products.Repository         { return &fakeProducts{m.st} }

type fakeAccounts struct{ st *memStore }

func (r *fakeAccounts) Create(_ context.Context, a *models.Account) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.createAccountErr != nil {
		return r.st.createAccountErr
	}
	for _, x := range r.st.accounts {
		if x.Email == a.Email || x.Username == a.Username || x.SessionToken == a.SessionToken {
			return fmt.Errorf("%w: accounts_key", common.ErrorAlreadyExists)
		}
	}
	cp := *a
	cp.CreatedAt = time.Now()
	r.st.accounts[a.ID] = &cp
	a.CreatedAt = cp.CreatedAt
	return nil
}

func (r *fakeAccounts) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.getByEmailErr != nil {
		return nil, r.st.getByEmailErr
	}
	for _, x := range r.st.accounts {
		if x.Email == email {
			cp := *x
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeAccounts) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.existsErr != nil {
		return false, r.st.existsErr
	}
	for _, x := range r.st.accounts {
		if x.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAccounts) IncrementSubmissionCounter(_ context.Context, id string) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.incrementErr != nil {
		return 0, r.st.incrementErr
	}
	a, ok := r.st.accounts[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	a.SubmissionCounter++
	return a.SubmissionCounter, nil
}

type fakeProducts struct{ st *memStore }

func (r *fakeProducts) ListByOwner(_ context.Context, owner string) ([]*models.Product, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.listErr != nil {
		return nil, r.st.listErr
	}
	out := make([]*models.Product, 0)
	for _, p := range r.st.products {
		if p.OwnerID == owner {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProducts) Create(_ context.Context, p *models.Product) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.createProductErr != nil {
		return r.st.createProductErr
	}
	for _, x := range r.st.products {
		if x.OwnerID == p.OwnerID && x.CatalogID == p.CatalogID {
			return fmt.Errorf("%w: products_owner_catalog_key", common.ErrorAlreadyExists)
		}
	}
	cp := *p
	cp.CreatedAt = time.Now()
	r.st.products = append(r.st.products, &cp)
	p.CreatedAt = cp.CreatedAt
	return nil
}

func (r *fakeProducts) DeleteFirstByCatalogID(_ context.Context, catalogID string) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.deleteErr != nil {
		return 0, r.st.deleteErr
	}
	for i, p := range r.st.products {
		if p.CatalogID == catalogID {
			r.st.products = append(r.st.products[:i], r.st.products[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// fakeAssets records uploads; err makes every upload fail.
type fakeAssets struct {
	mu      sync.Mutex
	uploads map[string][]byte
	err     error
}

func (f *fakeAssets) Upload(_ context.Context, key string, body []byte) (*models.AvatarReference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[key] = body
	return &models.AvatarReference{URL: "https://cdn.test/" + key, Key: key}, nil
}

func (f *fakeAssets) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://signed.test/" + key, nil
}

type fixture struct {
	st       *memStore
	mock     sqlmock.Sqlmock
	assets   *fakeAssets
	accounts *AccountService
	catalog  *CatalogService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := newMemStore()
	m := &fakeManager{st: st}
	fa := &fakeAssets{}
	cfg := &config.Config{SecretKey: "test-secret"}

	return &fixture{
		st:       st,
		mock:     mock,
		assets:   fa,
		accounts: NewAccountService(db, m, fa, cfg, logging.Nop{}),
		catalog:  NewCatalogService(db, m, logging.Nop{}),
	}
}

// expectTx queues one committed transaction.
func (f *fixture) expectTx() {
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
}

// expectRollback queues one rolled-back transaction.
func (f *fixture) expectRollback() {
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
}

func (f *fixture) register(t *testing.T, username, email, password string) *models.Profile {
	t.Helper()
	p, err := f.accounts.Register(context.Background(), RegisterInput{Username: username, Email: email, Password: password})
	require.NoError(t, err)
	return p
}
