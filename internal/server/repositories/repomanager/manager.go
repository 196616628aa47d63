package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/nutriscan/internal/dbx"
	"github.com/dmitrijs2005/nutriscan/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/nutriscan/internal/server/repositories/products"
)

// RepositoryManager vends repositories bound to a *sql.DB or an open *sql.Tx,
// so services can run several repositories inside one dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Products(db dbx.DBTX) products.Repository
}
