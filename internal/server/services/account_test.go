package services

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/dmitrijs2005/nutriscan/internal/common"
	"github.com/dmitrijs2005/nutriscan/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestRegister_ReturnsProfileWithoutCredentials(t *testing.T) {
	f := newFixture(t)

	p := f.register(t, "alice", "alice@example.com", "pw1")

	assert.NotEmpty(t, p.ID)
	assert.NotEmpty(t, p.SessionToken)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "alice@example.com", p.Email)
	assert.Zero(t, p.SubmissionCounter)
	assert.Nil(t, p.Avatar)

	stored := f.st.accounts[p.ID]
	require.NotNil(t, stored)
	assert.Len(t, stored.Salt, 2*saltSize)
	assert.NotEmpty(t, stored.CredentialHash)
	assert.NotEqual(t, []byte("pw1"), stored.CredentialHash)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(b), stored.Salt)
	assert.NotContains(t, string(b), "pw1")

	uid, err := auth.GetUserIDFromToken(p.SessionToken, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, p.ID, uid)
}

func TestRegister_UsesGeneratedID(t *testing.T) {
	orig := newAccountID
	t.Cleanup(func() { newAccountID = orig })
	newAccountID = func() string { return "fixed-id" }

	f := newFixture(t)
	p := f.register(t, "alice", "alice@example.com", "pw1")
	assert.Equal(t, "fixed-id", p.ID)
}

func TestRegister_SaltIsPerAccount(t *testing.T) {
	f := newFixture(t)

	a := f.register(t, "alice", "alice@example.com", "same")
	b := f.register(t, "bob", "bob@example.com", "same")

	assert.NotEqual(t, f.st.accounts[a.ID].Salt, f.st.accounts[b.ID].Salt)
	assert.NotEqual(t, f.st.accounts[a.ID].CredentialHash, f.st.accounts[b.ID].CredentialHash)
	assert.NotEqual(t, a.SessionToken, b.SessionToken)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   RegisterInput
		msg  string
	}{
		{name: "bad email", in: RegisterInput{Username: "a", Email: "not-an-email", Password: "p"}, msg: "invalid email"},
		{name: "missing email", in: RegisterInput{Username: "a", Password: "p"}, msg: "email is required"},
		{name: "missing username", in: RegisterInput{Email: "a@example.com", Password: "p"}, msg: "username is required"},
		{name: "missing password", in: RegisterInput{Username: "a", Email: "a@example.com"}, msg: "password is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			p, err := f.accounts.Register(context.Background(), tt.in)
			require.ErrorIs(t, err, common.ErrorValidation)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Nil(t, p)
			assert.Empty(t, f.st.accounts)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "alice@example.com", "pw1")

	_, err := f.accounts.Register(context.Background(), RegisterInput{Username: "alice2", Email: "alice@example.com", Password: "x"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
	assert.Contains(t, err.Error(), "email already registered")
	assert.Len(t, f.st.accounts, 1)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "alice@example.com", "pw1")

	_, err := f.accounts.Register(context.Background(), RegisterInput{Username: "alice", Email: "other@example.com", Password: "x"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	assert.Len(t, f.st.accounts, 1)
}

func TestRegister_StorageErrors(t *testing.T) {
	t.Run("exists check", func(t *testing.T) {
		f := newFixture(t)
		f.st.existsErr = errors.New("db down")

		_, err := f.accounts.Register(context.Background(), RegisterInput{Username: "a", Email: "a@example.com", Password: "p"})
		assert.ErrorIs(t, err, common.ErrorStorage)
	})

	t.Run("insert", func(t *testing.T) {
		f := newFixture(t)
		f.st.createAccountErr = errors.New("disk full")

		_, err := f.accounts.Register(context.Background(), RegisterInput{Username: "a", Email: "a@example.com", Password: "p"})
		require.ErrorIs(t, err, common.ErrorStorage)
		assert.NotErrorIs(t, err, common.ErrorAlreadyExists)
	})
}

func TestRegister_UploadsAvatarBeforePersisting(t *testing.T) {
	f := newFixture(t)

	p, err := f.accounts.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "pw1", Avatar: pngBytes,
	})
	require.NoError(t, err)
	require.NotNil(t, p.Avatar)

	assert.Regexp(t, regexp.MustCompile(`^avatars/`+regexp.QuoteMeta(p.ID)+`/[0-9a-f]{16}\.png$`), p.Avatar.Key)
	assert.Equal(t, "https://cdn.test/"+p.Avatar.Key, p.Avatar.URL)
	assert.Equal(t, pngBytes, f.assets.uploads[p.Avatar.Key])
	assert.Equal(t, p.Avatar, f.st.accounts[p.ID].Avatar)
}

func TestRegister_AvatarUploadFailurePersistsNothing(t *testing.T) {
	f := newFixture(t)
	f.assets.err = errors.New("s3 unavailable")

	p, err := f.accounts.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "pw1", Avatar: pngBytes,
	})
	require.ErrorIs(t, err, common.ErrorUpstream)
	assert.Nil(t, p)
	assert.Empty(t, f.st.accounts)
}

func TestRegister_AvatarWithoutStore(t *testing.T) {
	f := newFixture(t)
	f.accounts.assets = nil

	_, err := f.accounts.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "pw1", Avatar: pngBytes,
	})
	require.ErrorIs(t, err, common.ErrorUpstream)
	assert.Empty(t, f.st.accounts)
}

func TestProfile_PresignsAvatarWhenTTLSet(t *testing.T) {
	f := newFixture(t)
	f.accounts.avatarTTL = time.Minute

	reg, err := f.accounts.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "pw1", Avatar: pngBytes,
	})
	require.NoError(t, err)
	require.NotNil(t, reg.Avatar)
	assert.Equal(t, "https://signed.test/"+reg.Avatar.Key, reg.Avatar.URL)

	got, err := f.accounts.Authenticate(context.Background(), "alice@example.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, reg.Avatar, got.Avatar)

	stored := f.st.accounts[reg.ID].Avatar
	assert.Equal(t, "https://cdn.test/"+stored.Key, stored.URL, "stored reference keeps the public URL")
}

func TestAuthenticate_ReturnsSameToken(t *testing.T) {
	f := newFixture(t)
	reg := f.register(t, "alice", "alice@example.com", "pw1")

	for i := 0; i < 2; i++ {
		got, err := f.accounts.Authenticate(context.Background(), "alice@example.com", "pw1")
		require.NoError(t, err)
		assert.Equal(t, reg.ID, got.ID)
		assert.Equal(t, reg.SessionToken, got.SessionToken)
		assert.Equal(t, "alice", got.Username)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "alice@example.com", "pw1")

	p, err := f.accounts.Authenticate(context.Background(), "alice@example.com", "pw2")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Nil(t, p)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	f := newFixture(t)

	p, err := f.accounts.Authenticate(context.Background(), "ghost@example.com", "pw")
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, err.Error(), "user does not exist")
	assert.Nil(t, p)
}

func TestAuthenticate_StorageError(t *testing.T) {
	f := newFixture(t)
	f.st.getByEmailErr = errors.New("db down")

	_, err := f.accounts.Authenticate(context.Background(), "alice@example.com", "pw")
	assert.ErrorIs(t, err, common.ErrorStorage)
}
