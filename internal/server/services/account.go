// Package services contains server-side business logic. AccountService
// registers and authenticates accounts; CatalogService manages the product
// records submitted by those accounts.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/nutriscan/internal/common"
	"github.com/dmitrijs2005/nutriscan/internal/cryptox"
	"github.com/dmitrijs2005/nutriscan/internal/logging"
	"github.com/dmitrijs2005/nutriscan/internal/server/assets"
	"github.com/dmitrijs2005/nutriscan/internal/server/auth"
	"github.com/dmitrijs2005/nutriscan/internal/server/config"
	"github.com/dmitrijs2005/nutriscan/internal/server/metrics"
	"github.com/dmitrijs2005/nutriscan/internal/server/models"
	"github.com/dmitrijs2005/nutriscan/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const saltSize = 16

// newAccountID is a seam for tests.
var newAccountID = uuid.NewString

// RegisterInput is a decoded signup request.
type RegisterInput struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Avatar   []byte
}

// AccountService issues and validates credentials.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	assets      assets.Store
	jwtSecret   []byte
	avatarTTL   time.Duration
	logger      logging.Logger
}

// NewAccountService constructs an AccountService. store may be nil, in which
// case registrations carrying an avatar fail with common.ErrorUpstream.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, store assets.Store, cfg *config.Config, logger logging.Logger) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		assets:      store,
		jwtSecret:   []byte(cfg.SecretKey),
		avatarTTL:   cfg.AvatarURLTTL,
		logger:      logger.With("module", "accounts"),
	}
}

// Register creates an account and returns its profile with a fresh session
// token. The avatar, if any, is uploaded before the account is stored.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.Profile, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	repo := s.repomanager.Accounts(s.db)

	exists, err := repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStorage, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: email already registered", common.ErrorAlreadyExists)
	}

	account := &models.Account{
		ID:       newAccountID(),
		Username: in.Username,
		Email:    in.Email,
	}

	account.Salt, err = common.MakeRandHexString(saltSize)
	if err != nil {
		return nil, fmt.Errorf("%w: salt: %v", common.ErrorInternal, err)
	}
	account.CredentialHash = cryptox.HashPassword(in.Password, account.Salt)

	account.SessionToken, err = auth.GenerateSessionToken(account.ID, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: session token: %v", common.ErrorInternal, err)
	}

	if len(in.Avatar) > 0 {
		account.Avatar, err = s.uploadAvatar(ctx, account.ID, in.Avatar)
		if err != nil {
			return nil, err
		}
	}

	if err := repo.Create(ctx, account); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("%w: username or email already registered", common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorStorage, err)
	}

	metrics.IncRegistrations()
	s.logger.Info(ctx, "account registered", "account_id", account.ID)

	return s.profile(ctx, account), nil
}

func (s *AccountService) uploadAvatar(ctx context.Context, accountID string, body []byte) (*models.AvatarReference, error) {
	if s.assets == nil {
		return nil, fmt.Errorf("%w: asset store not configured", common.ErrorUpstream)
	}

	suffix, err := common.MakeRandHexString(8)
	if err != nil {
		return nil, fmt.Errorf("%w: avatar key: %v", common.ErrorInternal, err)
	}
	key := fmt.Sprintf("avatars/%s/%s%s", accountID, suffix, assets.Extension(body))

	ref, err := s.assets.Upload(ctx, key, body)
	if err != nil {
		s.logger.Error(ctx, "avatar upload failed", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("%w: avatar upload: %v", common.ErrorUpstream, err)
	}
	return ref, nil
}

// Authenticate checks the password and returns the stored profile, including
// the session token issued at registration.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.Profile, error) {
	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			metrics.IncLogins(metrics.LoginUnknownEmail)
			return nil, fmt.Errorf("%w: user does not exist", common.ErrorNotFound)
		}
		metrics.IncLogins(metrics.LoginError)
		return nil, fmt.Errorf("%w: %v", common.ErrorStorage, err)
	}

	if !cryptox.VerifyPassword(password, account.Salt, account.CredentialHash) {
		metrics.IncLogins(metrics.LoginBadPassword)
		s.logger.Warn(ctx, "login rejected", "account_id", account.ID)
		return nil, fmt.Errorf("%w: wrong password", common.ErrorUnauthorized)
	}

	metrics.IncLogins(metrics.LoginSuccess)
	return s.profile(ctx, account), nil
}

// profile swaps the stored avatar URL for a presigned one when avatarTTL is
// set. A signing failure keeps the stored URL.
func (s *AccountService) profile(ctx context.Context, account *models.Account) *models.Profile {
	p := account.Profile()
	if s.avatarTTL <= 0 || s.assets == nil || p.Avatar == nil {
		return p
	}

	url, err := s.assets.PresignGet(ctx, p.Avatar.Key, s.avatarTTL)
	if err != nil {
		s.logger.Warn(ctx, "avatar presign failed", "account_id", account.ID, "error", err)
		return p
	}
	p.Avatar = &models.AvatarReference{URL: url, Key: p.Avatar.Key}
	return p
}
