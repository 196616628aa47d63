// Package models holds the client-side data types.
package models

import "time"

// Session is the locally remembered login: enough to call owner-scoped
// endpoints without asking for the password again.
type Session struct {
	AccountID         string
	Username          string
	Email             string
	SessionToken      string
	SubmissionCounter int64
	SavedAt           time.Time
}
