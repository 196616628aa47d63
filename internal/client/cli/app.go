// Package cli implements the interactive NutriScan shell: account commands
// (register, login, whoami, logout) and catalog commands (list, add, delete)
// on top of the client services.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/nutriscan/internal/client/client"
	"github.com/dmitrijs2005/nutriscan/internal/client/config"
	"github.com/dmitrijs2005/nutriscan/internal/client/models"
	"github.com/dmitrijs2005/nutriscan/internal/client/services"
	"github.com/dmitrijs2005/nutriscan/internal/client/storage"
	"github.com/dmitrijs2005/nutriscan/internal/common"
)

type App struct {
	config         *config.Config
	authService    services.AuthService
	catalogService services.CatalogService
	session        *models.Session
	reader         *bufio.Reader
	out            io.Writer
	db             *sql.DB
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	db, err := storage.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)

	return &App{
		config:         c,
		authService:    services.NewAuthService(apiClient, db),
		catalogService: services.NewCatalogService(apiClient, db),
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
		db:             db,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

// restoreSession picks up the session saved by a previous run, if any.
func (a *App) restoreSession(ctx context.Context) {
	s, err := a.authService.Restore(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintln(a.out, "Could not read saved session:", err)
		}
		return
	}
	a.session = s
	fmt.Fprintf(a.out, "Welcome back, %s\n", s.Username)
}

func (a *App) status() string {
	if a.session == nil {
		return ""
	}
	return "(" + a.session.Username + ") "
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	fmt.Fprintln(a.out, "NutriScan CLI (type 'help' for commands)")
	a.restoreSession(ctx)

	if err := a.authService.Ping(ctx); err != nil {
		fmt.Fprintln(a.out, "Server is not reachable:", err)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}

// report prints a command failure in a user-facing form.
func (a *App) report(err error) {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintln(a.out, "Error:", apiErr.Error())
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
}
