package models

import "time"

// Account is a registered user. Salt and CredentialHash never leave the
// server; use Profile for anything returned to a caller.
type Account struct {
	ID                string
	Username          string
	Email             string
	Salt              string
	CredentialHash    []byte
	SessionToken      string
	Avatar            *AvatarReference
	SubmissionCounter int64
	CreatedAt         time.Time
}

// AvatarReference points at a profile image held by the asset store.
type AvatarReference struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Profile is the caller-facing view of an Account.
type Profile struct {
	ID                string           `json:"id"`
	SessionToken      string           `json:"session_token"`
	Username          string           `json:"username"`
	Email             string           `json:"email"`
	Avatar            *AvatarReference `json:"avatar,omitempty"`
	SubmissionCounter int64            `json:"submission_counter"`
}

// Profile strips credential material from the account.
func (a *Account) Profile() *Profile {
	return &Profile{
		ID:                a.ID,
		SessionToken:      a.SessionToken,
		Username:          a.Username,
		Email:             a.Email,
		Avatar:            a.Avatar,
		SubmissionCounter: a.SubmissionCounter,
	}
}
