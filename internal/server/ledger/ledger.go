// Package ledger holds account balances and performs atomic transfers.
//
// A transfer is all-or-nothing: balance checks, both balance mutations and
// the transfer record land in one atomic unit, so no reader observes funds
// in flight and no pair of concurrent transfers can overdraw a source.
// Serialization is per account, never global.
package ledger

import (
	"context"

	"github.com/hardbank/hardbank/internal/common"
	"github.com/hardbank/hardbank/internal/server/models"
)

type Ledger interface {
	// Transfer moves req.Amount from source to destination. Preconditions
	// (positive amount, distinct existing accounts, sufficient funds) are
	// checked inside the atomic unit. On success the committed record is
	// returned; on failure one of the common.Error* ledger sentinels.
	Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferRecord, error)

	// Get returns the current snapshot of one account.
	Get(ctx context.Context, accountID string) (*models.Account, error)

	// ListTransfers returns the account's committed records, newest first.
	ListTransfers(ctx context.Context, accountID string) ([]models.TransferRecord, error)
}

// checkStatic validates the parts of a transfer that cannot race: amount
// bounds and the same-account rule. limit == 0 disables the cap.
func checkStatic(req models.TransferRequest, limit int64) error {
	if req.Amount <= 0 {
		return common.ErrorInvalidAmount
	}
	if limit > 0 && req.Amount > limit {
		return common.ErrorLimitExceeded
	}
	if req.SourceAccountID == req.DestinationAccountID {
		return common.ErrorSameAccount
	}
	return nil
}
