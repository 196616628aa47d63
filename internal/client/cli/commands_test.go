package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/nutriscan/internal/client/client"
	"github.com/dmitrijs2005/nutriscan/internal/client/models"
	"github.com/dmitrijs2005/nutriscan/internal/common"
	srvmodels "github.com/dmitrijs2005/nutriscan/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	session    *models.Session
	err        error
	restoreErr error

	regUser, regEmail string
	regPass, regPic   []byte
	loginEmail        string
	loggedOut         bool
}

func (f *fakeAuth) Register(_ context.Context, username, email string, password, picture []byte) (*models.Session, error) {
	f.regUser, f.regEmail = username, email
	f.regPass, f.regPic = append([]byte(nil), password...), picture
	return f.session, f.err
}

func (f *fakeAuth) Login(_ context.Context, email string, _ []byte) (*models.Session, error) {
	f.loginEmail = email
	return f.session, f.err
}

func (f *fakeAuth) Restore(context.Context) (*models.Session, error) {
	if f.restoreErr != nil {
		return nil, f.restoreErr
	}
	return f.session, nil
}

func (f *fakeAuth) Logout(context.Context) error { f.loggedOut = true; return f.err }
func (f *fakeAuth) Ping(context.Context) error   { return nil }

type fakeCatalog struct {
	products  []*srvmodels.Product
	err       error
	catalogID string
	attrs     srvmodels.ProductAttributes
}

func (f *fakeCatalog) List(context.Context, *models.Session) ([]*srvmodels.Product, error) {
	return f.products, f.err
}

func (f *fakeCatalog) Add(_ context.Context, s *models.Session, catalogID string, attrs srvmodels.ProductAttributes) (*srvmodels.Product, error) {
	f.catalogID, f.attrs = catalogID, attrs
	if f.err != nil {
		return nil, f.err
	}
	s.SubmissionCounter++
	return &srvmodels.Product{ID: "p1", CatalogID: catalogID, Attrs: attrs}, nil
}

func (f *fakeCatalog) Delete(_ context.Context, _ *models.Session, catalogID string) error {
	f.catalogID = catalogID
	return f.err
}

var alice = &models.Session{AccountID: "u1", Username: "alice", Email: "alice@example.com", SessionToken: "tok"}

// stubInputs feeds answers to getSimpleText in order and a fixed password.
func stubInputs(t *testing.T, password string, answers ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = origST, origGP })

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(io.Writer) ([]byte, error) { return []byte(password), nil }
}

func newTestApp(auth *fakeAuth, cat *fakeCatalog) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{authService: auth, catalogService: cat, out: out}, out
}

func TestRegister_WithPicture(t *testing.T) {
	pic := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(pic, []byte("png"), 0o600))
	stubInputs(t, "pw", "alice", "alice@example.com", pic)

	auth := &fakeAuth{session: alice}
	a, out := newTestApp(auth, &fakeCatalog{})

	require.NoError(t, a.Register(context.Background()))

	assert.Equal(t, "alice", auth.regUser)
	assert.Equal(t, []byte("pw"), auth.regPass)
	assert.Equal(t, []byte("png"), auth.regPic)
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "u1")
}

func TestRegister_MissingPictureFile(t *testing.T) {
	stubInputs(t, "pw", "alice", "alice@example.com", filepath.Join(t.TempDir(), "missing.png"))
	a, _ := newTestApp(&fakeAuth{session: alice}, &fakeCatalog{})

	require.Error(t, a.Register(context.Background()))
	assert.False(t, a.isLoggedIn())
}

func TestLogin_Failure_StaysLoggedOut(t *testing.T) {
	stubInputs(t, "bad", "alice@example.com")
	a, _ := newTestApp(&fakeAuth{err: &client.APIError{StatusCode: 401, Message: "wrong password"}}, &fakeCatalog{})

	err := a.Login(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, a.isLoggedIn())
}

func TestLoginThenLogout(t *testing.T) {
	stubInputs(t, "pw", "alice@example.com")
	auth := &fakeAuth{session: alice}
	a, _ := newTestApp(auth, &fakeCatalog{})

	require.NoError(t, a.Login(context.Background()))
	assert.True(t, a.isLoggedIn())

	require.NoError(t, a.Logout(context.Background()))
	assert.True(t, auth.loggedOut)
	assert.False(t, a.isLoggedIn())
}

func TestRestoreSession(t *testing.T) {
	a, out := newTestApp(&fakeAuth{session: alice}, &fakeCatalog{})
	a.restoreSession(context.Background())
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Welcome back, alice")

	a, out = newTestApp(&fakeAuth{restoreErr: common.ErrorNotFound}, &fakeCatalog{})
	a.restoreSession(context.Background())
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, out.String())
}

func TestAdd_CollectsAttributes(t *testing.T) {
	orig := now
	now = func() time.Time { return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = orig })
	stubInputs(t, "", "3017620422003", "Nutella", "Ferrero", "e", "d", "", "26", "4")

	cat := &fakeCatalog{}
	a, out := newTestApp(&fakeAuth{}, cat)
	a.session = &models.Session{AccountID: "u1"}

	require.NoError(t, a.Add(context.Background()))

	assert.Equal(t, "3017620422003", cat.catalogID)
	assert.Equal(t, srvmodels.ProductAttributes{
		Name: "Nutella", Brand: "Ferrero", NutritionGrade: "e", EcoGrade: "d",
		NutritionScore: 26, NovaGroup: 4, SubmittedOn: "2026-10-16",
	}, cat.attrs)
	assert.Contains(t, out.String(), "Added 3017620422003 (1 submissions)")
}

func TestAdd_EmptyBarcode(t *testing.T) {
	stubInputs(t, "", "")
	a, _ := newTestApp(&fakeAuth{}, &fakeCatalog{})
	a.session = alice

	assert.Error(t, a.Add(context.Background()))
}

func TestList_PrintsTable(t *testing.T) {
	cat := &fakeCatalog{products: []*srvmodels.Product{
		{CatalogID: "123", Attrs: srvmodels.ProductAttributes{Name: "Milk", NovaGroup: 1}},
	}}
	a, out := newTestApp(&fakeAuth{}, cat)
	a.session = alice

	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), "CATALOG ID")
	assert.Contains(t, out.String(), "Milk")

	out.Reset()
	cat.products = nil
	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), "No products yet")
}

func TestDelete(t *testing.T) {
	stubInputs(t, "", "123")
	cat := &fakeCatalog{}
	a, out := newTestApp(&fakeAuth{}, cat)
	a.session = alice

	require.NoError(t, a.Delete(context.Background()))
	assert.Equal(t, "123", cat.catalogID)
	assert.Contains(t, out.String(), "Product deleted")
}

func TestReport(t *testing.T) {
	a, out := newTestApp(&fakeAuth{}, &fakeCatalog{})

	a.report(&client.APIError{StatusCode: 409, Message: "product already exists"})
	a.report(client.ErrUnavailable)
	a.report(errors.New("boom"))

	assert.Contains(t, out.String(), "Error: product already exists")
	assert.Contains(t, out.String(), "Server unavailable")
	assert.Contains(t, out.String(), "Error: boom")
}
