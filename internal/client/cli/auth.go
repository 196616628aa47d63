package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nutriscan/internal/common"
	"github.com/dmitrijs2005/nutriscan/internal/filex"
)

// maxPictureBytes keeps the base64 signup body under the server limit.
const maxPictureBytes = 5 << 20

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for username, email, password and an optional picture
// file, creates the account and keeps the returned session.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	picturePath, err := getSimpleText(a.reader, "Picture file (empty to skip)", a.out)
	if err != nil {
		return err
	}
	var picture []byte
	if picturePath != "" {
		picture, err = filex.ReadFileLimited(picturePath, maxPictureBytes)
		if err != nil {
			return err
		}
	}

	s, err := a.authService.Register(ctx, username, email, password, picture)
	if err != nil {
		return err
	}

	a.session = s
	fmt.Fprintf(a.out, "Registered, your id is %s\n", s.AccountID)
	return nil
}

// Login prompts for email and password and keeps the returned session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.session = s
	fmt.Fprintf(a.out, "Logged in as %s\n", s.Username)
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	s := a.session
	fmt.Fprintf(a.out, "id:          %s\nusername:    %s\nemail:       %s\nsubmissions: %d\n",
		s.AccountID, s.Username, s.Email, s.SubmissionCounter)
	return nil
}

// Logout forgets the saved session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.session = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
