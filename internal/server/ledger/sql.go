package ledger

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hardbank/hardbank/internal/common"
	"github.com/hardbank/hardbank/internal/dbx"
	"github.com/hardbank/hardbank/internal/logging"
	"github.com/hardbank/hardbank/internal/server/models"
	"github.com/hardbank/hardbank/internal/server/repositories/repomanager"
)

// SQL is the durable ledger over postgres. Transfers run in one transaction
// with both rows locked FOR UPDATE in canonical id order; commit is the
// atomicity point, and a context cancelled before commit rolls everything
// back.
type SQL struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	limit  int64
	logger logging.Logger
}

func NewSQL(db *sql.DB, rm repomanager.RepositoryManager, limit int64, l logging.Logger) *SQL {
	return &SQL{db: db, rm: rm, limit: limit, logger: l.With("module", "ledger")}
}

func (s *SQL) Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferRecord, error) {
	if err := checkStatic(req, s.limit); err != nil {
		return nil, err
	}

	var rec *models.TransferRecord

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		pair, err := s.rm.Accounts(tx).GetPairForUpdate(ctx, req.SourceAccountID, req.DestinationAccountID)
		if err != nil {
			return err
		}

		source, okSrc := pair[req.SourceAccountID]
		destination, okDst := pair[req.DestinationAccountID]
		if !okSrc || !okDst {
			return common.ErrorAccountNotFound
		}

		// Checked under the row locks; a concurrent transfer out of the
		// same source cannot slip between check and decrement.
		if source.Balance < req.Amount {
			return common.ErrorInsufficientFunds
		}

		if err := s.rm.Accounts(tx).SetBalance(ctx, source.ID, source.Balance-req.Amount); err != nil {
			return err
		}
		if err := s.rm.Accounts(tx).SetBalance(ctx, destination.ID, destination.Balance+req.Amount); err != nil {
			return err
		}

		rec, err = s.rm.Transfers(tx).Create(ctx, &models.TransferRecord{
			SourceAccountID:      source.ID,
			DestinationAccountID: destination.ID,
			Amount:               req.Amount,
			SourceBalance:        source.Balance - req.Amount,
			DestinationBalance:   destination.Balance + req.Amount,
		})
		return err
	})

	if err != nil {
		s.logger.Warn(ctx, "transfer rejected", "reason", err.Error())
		return nil, err
	}

	return rec, nil
}

func (s *SQL) Get(ctx context.Context, accountID string) (*models.Account, error) {
	account, err := s.rm.Accounts(s.db).GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *SQL) ListTransfers(ctx context.Context, accountID string) ([]models.TransferRecord, error) {
	return s.rm.Transfers(s.db).ListByAccount(ctx, accountID)
}
