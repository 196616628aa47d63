package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nutriscan/internal/client/models"
	"github.com/dmitrijs2005/nutriscan/internal/common"
	"github.com/dmitrijs2005/nutriscan/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, s *models.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (id, account_id, username, email, session_token, submission_counter, saved_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			account_id = excluded.account_id,
			username = excluded.username,
			email = excluded.email,
			session_token = excluded.session_token,
			submission_counter = excluded.submission_counter,
			saved_at = excluded.saved_at
	`, s.AccountID, s.Username, s.Email, s.SessionToken, s.SubmissionCounter, s.SavedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context) (*models.Session, error) {
	var s models.Session
	err := r.db.QueryRowContext(ctx, `
		SELECT account_id, username, email, session_token, submission_counter, saved_at
		FROM session WHERE id = 1
	`).Scan(&s.AccountID, &s.Username, &s.Email, &s.SessionToken, &s.SubmissionCounter, &s.SavedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &s, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
