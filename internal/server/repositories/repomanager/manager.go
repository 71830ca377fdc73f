package repomanager

import (
	"context"
	"database/sql"

	"github.com/hardbank/hardbank/internal/dbx"
	"github.com/hardbank/hardbank/internal/server/repositories/accounts"
	"github.com/hardbank/hardbank/internal/server/repositories/transfers"
	"github.com/hardbank/hardbank/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a concrete handle, so
// services can run several repositories inside one transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Accounts(db dbx.DBTX) accounts.Repository
	Transfers(db dbx.DBTX) transfers.Repository
}
