package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nutriscan/internal/common"
	"github.com/dmitrijs2005/nutriscan/internal/dbx"
	"github.com/dmitrijs2005/nutriscan/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account with the caller-assigned ID. A clash on
// username, email or session token yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) error {
	query :=
		`INSERT INTO accounts (id, username, email, credential_salt, credential_hash, session_token, avatar_url, avatar_key, submission_counter)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`

	var avatarURL, avatarKey string
	if account.Avatar != nil {
		avatarURL, avatarKey = account.Avatar.URL, account.Avatar.Key
	}

	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.Username, account.Email, account.Salt, account.CredentialHash,
		account.SessionToken, avatarURL, avatarKey, account.SubmissionCounter,
	).Scan(&account.CreatedAt)

	if err != nil {
		if constraint, ok := dbx.UniqueViolation(err); ok {
			return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, constraint)
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT id, username, email, credential_salt, credential_hash, session_token, avatar_url, avatar_key, submission_counter, created_at
		 FROM accounts
		 WHERE email = $1`

	a := &models.Account{}
	var avatarURL, avatarKey string
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&a.ID, &a.Username, &a.Email, &a.Salt, &a.CredentialHash, &a.SessionToken,
		&avatarURL, &avatarKey, &a.SubmissionCounter, &a.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if avatarURL != "" || avatarKey != "" {
		a.Avatar = &models.AvatarReference{URL: avatarURL, Key: avatarKey}
	}

	return a, nil
}

func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// IncrementSubmissionCounter bumps the counter and returns the new value.
// An unknown id yields common.ErrorNotFound.
func (r *PostgresRepository) IncrementSubmissionCounter(ctx context.Context, id string) (int64, error) {
	query :=
		`UPDATE accounts SET submission_counter = submission_counter + 1
		 WHERE id = $1
		 RETURNING submission_counter`

	var counter int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&counter)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return counter, nil
}
